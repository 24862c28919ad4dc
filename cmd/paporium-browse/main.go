package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"paporium/internal/browse"
	"paporium/internal/modkit/repokit"
	"paporium/internal/platform/config"
	"paporium/internal/platform/logger"
	"paporium/internal/platform/store"
	"paporium/internal/services/catalog/dataset"
	catalogrepo "paporium/internal/services/catalog/repo"
	catalogsvc "paporium/internal/services/catalog/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	fLog := flag.String("log", "", "write logs to this file; logs are dropped when empty")
	flag.Parse()

	if err := run(*fLog, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startParams accepts a shared link or a bare query string
func startParams(arg string) (url.Values, error) {
	if arg == "" {
		return nil, nil
	}
	if i := strings.IndexByte(arg, '?'); i >= 0 {
		arg = arg[i+1:]
	}
	return url.ParseQuery(arg)
}

func run(logFile, link string) error {
	// the terminal belongs to the ui, logs go elsewhere
	opts := logger.FromEnv()
	opts.Service = "paporium-browse"
	opts.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		opts.Writer, opts.Format = f, "json"
	}
	logger.Init(opts)
	l := logger.Get()

	start, err := startParams(link)
	if err != nil {
		return fmt.Errorf("bad query string: %w", err)
	}

	root := config.New()
	cfg := root.Prefix("PAPORIUM_BROWSE_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "paporium-browse",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()
	if err := repokit.Ping(ctx, st, 5*time.Second); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	svc := catalogsvc.New(st.PG, catalogrepo.NewPG(), dataset.NewHolder(),
		catalogsvc.WithStatementTimeout(cfg.MayDuration("STATEMENT_TIMEOUT", 10*time.Second)))

	app := browse.New(svc, browse.Options{
		Start: start,
		Quiet: time.Duration(cfg.MayInt("DEBOUNCE_MS", 500)) * time.Millisecond,
	})
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		l.Error().Err(err).Msg("browser stopped")
		return err
	}
	return nil
}
