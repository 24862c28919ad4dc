package http_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"paporium/internal/platform/config"
	phttp "paporium/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServer_RunUntilContextDone(t *testing.T) {
	port := freePort(t)
	t.Setenv("TEST_API_PORT", fmt.Sprint(port))

	optCalled := false
	srv := phttp.NewServer(config.New().Prefix("TEST_API_"), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("expected NewServer option to be called")
	}
	if srv.Addr() != fmt.Sprintf(":%d", port) {
		t.Fatalf("addr = %q", srv.Addr())
	}

	r := srv.Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-MW", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", port)
	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		var err error
		resp, err = http.Get(url)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" || resp.Header.Get("X-MW") != "yes" {
		t.Fatalf("unexpected response %q %v", body, resp.Header)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(12 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestNewServer_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("TEST_API_PORT", "abc")
	if got := phttp.NewServer(config.New().Prefix("TEST_API_")).Addr(); got != ":4000" {
		t.Fatalf("expected default addr, got %q", got)
	}
}
