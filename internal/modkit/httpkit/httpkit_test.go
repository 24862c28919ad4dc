package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paporium/internal/platform/config"
	perr "paporium/internal/platform/errors"
	phttp "paporium/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return env
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCall(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)

	Get(r, "/plain", func(*http.Request) (any, error) { return map[string]int{"n": 1}, nil })
	Get(r, "/resp", func(*http.Request) (any, error) { return NoContent(), nil })
	Get(r, "/list", func(*http.Request) (any, error) {
		return List([]int{1, 2}, Page{Total: 2, Page: 1, PageSize: 100, Pages: 1}), nil
	})
	Get(r, "/missing", func(*http.Request) (any, error) { return nil, perr.NotFoundf("item %d", 9) })
	Get(r, "/foreign", func(*http.Request) (any, error) { return nil, errors.New("raw") })

	rec := serve(mux, http.MethodGet, "/plain", "")
	if rec.Code != http.StatusOK || decode(t, rec).Status != "OK" {
		t.Fatalf("plain: %d %s", rec.Code, rec.Body.String())
	}

	if rec := serve(mux, http.MethodGet, "/resp", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("resp passthrough: %d", rec.Code)
	}

	env := decode(t, serve(mux, http.MethodGet, "/list", ""))
	if env.Page == nil || env.Page.Total != 2 {
		t.Fatalf("list page not lifted: %+v", env)
	}

	rec = serve(mux, http.MethodGet, "/missing", "")
	env = decode(t, rec)
	if rec.Code != http.StatusNotFound || env.Code != perr.ErrorCodeNotFound || env.Error != "item 9" {
		t.Fatalf("missing: %d %+v", rec.Code, env)
	}

	if rec := serve(mux, http.MethodGet, "/foreign", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("foreign: %d", rec.Code)
	}
}

type event struct {
	Kind string `json:"kind" validate:"required,oneof=toggle text"`
}

func TestPostJSON_ValidatesBody(t *testing.T) {
	t.Parallel()
	mux := chi.NewRouter()
	PostJSON(phttp.AdaptChi(mux), "/events", func(_ *http.Request, in event) (any, error) {
		return in.Kind, nil
	})

	rec := serve(mux, http.MethodPost, "/events", `{"kind":"toggle"}`)
	if rec.Code != http.StatusOK || decode(t, rec).Data != "toggle" {
		t.Fatalf("valid: %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(mux, http.MethodPost, "/events", `{"kind":"explode"}`)
	env := decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Field != "kind" {
		t.Fatalf("invalid: %d %+v", rec.Code, env)
	}
}

func TestMountAPIV1_CommonStack(t *testing.T) {
	t.Setenv("HTTPKIT_TEST_CORS_ORIGINS", "http://localhost:5173")
	cfg := config.New().Prefix("HTTPKIT_TEST_")

	mux := chi.NewRouter()
	MountAPIV1(phttp.AdaptChi(mux), CommonStack(cfg), func(api Router) {
		Get(api, "/meta/health", func(*http.Request) (any, error) { return "ok", nil })
	})

	rec := serve(mux, http.MethodGet, "/api/v1/meta/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
	if env := decode(t, rec); env.RequestID == "" {
		t.Fatalf("request id missing from envelope")
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/meta/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	pre := httptest.NewRecorder()
	mux.ServeHTTP(pre, req)
	if pre.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
		t.Fatalf("cors origin header = %q", pre.Header().Get("Access-Control-Allow-Origin"))
	}

	if rec := serve(mux, http.MethodGet, "/api/v2/meta/health", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unversioned scope should 404, got %d", rec.Code)
	}
}
