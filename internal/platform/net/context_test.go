package net_test

import (
	"context"
	"testing"

	"paporium/internal/platform/logger"
	pnet "paporium/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	t.Run("sets chi and logger ids", func(t *testing.T) {
		ctx := pnet.WithRequest(base, "req-123")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID got %q", got)
		}
		if got := chimw.GetReqID(ctx); got != "req-123" {
			t.Fatalf("chi id got %q", got)
		}
		if got := logger.RequestID(ctx); got != "req-123" {
			t.Fatalf("logger id got %q", got)
		}
	})

	t.Run("empty id leaves ctx unchanged", func(t *testing.T) {
		if ctx := pnet.WithRequest(base, ""); ctx != base {
			t.Fatalf("expected ctx to be unchanged")
		}
		if got := pnet.RequestID(base); got != "" {
			t.Fatalf("RequestID got %q want empty", got)
		}
	})

	t.Run("falls back to logger id", func(t *testing.T) {
		ctx := logger.WithRequest(base, "only-logger")
		if got := pnet.RequestID(ctx); got != "only-logger" {
			t.Fatalf("RequestID got %q", got)
		}
	})
}
