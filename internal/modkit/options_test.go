package modkit

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	phttp "paporium/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || b.SwaggerOn || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults %+v", b)
	}
	// default Register is a no-op
	b.Register(nil)
}

func TestBuild_OptionsAndCopySemantics(t *testing.T) {
	t.Parallel()

	fnPtr := func(f func(http.Handler) http.Handler) uintptr { return reflect.ValueOf(f).Pointer() }
	mwA := func(next http.Handler) http.Handler { return next }
	mwB := func(next http.Handler) http.Handler { return next }
	mid := []func(http.Handler) http.Handler{mwA, mwB}

	type ports struct{ Ready bool }
	b := Build(
		WithName("catalog"),
		WithPrefix("/catalog"),
		WithMiddlewares(mid...),
		WithPorts(ports{Ready: true}),
		WithSwagger(true),
	)

	if b.Name != "catalog" || b.Prefix != "/catalog" || !b.SwaggerOn {
		t.Fatalf("unexpected build %+v", b)
	}
	if got, ok := b.Ports.(ports); !ok || !got.Ready {
		t.Fatalf("ports not carried")
	}

	mid[0] = func(next http.Handler) http.Handler { return next }
	if fnPtr(b.Mw[0]) != fnPtr(mwA) || fnPtr(b.Mw[1]) != fnPtr(mwB) {
		t.Fatalf("Built.Mw must be a copy in order")
	}
}

func TestMount_PrefixMiddlewareAndRegister(t *testing.T) {
	t.Parallel()

	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "meta")
			next.ServeHTTP(w, r)
		})
	}
	extra := 0
	b := Build(
		WithPrefix("/meta"),
		WithMiddlewares(tag),
		WithRegister(func(r phttp.Router) {
			extra++
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
		}),
	)

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), b, func(r phttp.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	if extra != 1 {
		t.Fatalf("register ran %d times", extra)
	}

	for path, want := range map[string]int{"/meta/ping": http.StatusOK, "/meta/extra": http.StatusAccepted} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want || rec.Header().Get("X-Module") != "meta" {
			t.Fatalf("%s: code=%d header=%q", path, rec.Code, rec.Header().Get("X-Module"))
		}
	}
}

func TestDeps_Named(t *testing.T) {
	t.Parallel()
	var d Deps
	_ = d.Named("catalog") // zero logger is a no-op
}
