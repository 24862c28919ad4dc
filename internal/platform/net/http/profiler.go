package http

import (
	stdhttp "net/http"

	"paporium/internal/platform/logger"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix, outside the versioned API and its
// middleware stack. Reports whether anything was mounted.
func MountProfiler(r Router, prefix string, enabled bool) bool {
	if !enabled {
		return false
	}
	pprof := stdhttp.StripPrefix(prefix, mw.Profiler())
	serve := func(w stdhttp.ResponseWriter, req *stdhttp.Request) { pprof.ServeHTTP(w, req) }
	r.Get(prefix, serve)
	r.Get(prefix+"/*", serve)

	logger.Named("http").Warn().Str("prefix", prefix).Msg("pprof exposed; keep PAPORIUM_API_PROFILER off in production")
	return true
}
