// @title         Paporium API
// @version       0.1.0
// @description   Read only item and recipe catalog
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paporium/internal/modkit/repokit"
	"paporium/internal/platform/config"
	"paporium/internal/platform/logger"
	phttp "paporium/internal/platform/net/http"
	"paporium/internal/platform/store"

	"paporium/internal/services/api"

	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	opts := logger.FromEnv()
	opts.Service = api.ServiceName
	logger.Init(opts)
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("PAPORIUM_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		AppName: api.ServiceName,
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustPing(ctx, "pg", st)

	srv := phttp.NewServer(apiCfg)
	a := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})

	// the api answers 503 on catalog routes until the dataset is in
	go func() {
		loadCtx, cancel := context.WithTimeout(ctx, apiCfg.MayDuration("LOAD_TIMEOUT", 2*time.Minute))
		defer cancel()
		_ = a.Catalog.Load(loadCtx)
	}()

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
