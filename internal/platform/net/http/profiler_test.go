package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"paporium/internal/platform/config"
	phttp "paporium/internal/platform/net/http"
)

func get(r phttp.Router, path string) int {
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code
}

func TestMountProfiler(t *testing.T) {
	cases := []struct {
		name    string
		enabled bool
		want    int
	}{
		{"on", true, http.StatusOK},
		{"off", false, http.StatusNotFound},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := phttp.NewServer(config.New()).Router()
			if got := phttp.MountProfiler(r, "/debug", c.enabled); got != c.enabled {
				t.Fatalf("mounted = %v", got)
			}
			for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
				if code := get(r, path); code != c.want {
					t.Fatalf("%s: got %d want %d", path, code, c.want)
				}
			}
		})
	}
}

func TestMountProfiler_StaysOffCatalogRoutes(t *testing.T) {
	r := phttp.NewServer(config.New()).Router()
	phttp.MountProfiler(r, "/debug", true)
	r.Get("/api/v1/catalog/items", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	if code := get(r, "/api/v1/catalog/items"); code != http.StatusTeapot {
		t.Fatalf("catalog route shadowed: %d", code)
	}
	if code := get(r, "/api/v1/debug/pprof/"); code != http.StatusNotFound {
		t.Fatalf("pprof leaked under the api prefix: %d", code)
	}
}
