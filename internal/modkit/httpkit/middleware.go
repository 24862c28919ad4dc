package httpkit

import (
	"net/http"
	"time"

	"paporium/internal/platform/config"
	"paporium/internal/platform/net/middleware"
)

// CommonStack returns the middleware every versioned api scope runs:
// the platform defaults, the access log and CORS from CORS_ORIGINS
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	stack := middleware.Defaults()
	return append(stack,
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Second}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: cfg.MayCSV("CORS_ORIGINS", []string{"*"})}),
		middleware.StripSlashes(),
	)
}
