package module

import (
	"testing"

	phttp "paporium/internal/platform/net/http"
	"paporium/internal/platform/testkit"
)

type readiness interface{ Ready() bool }

type readyPort struct{ ok bool }

func (p readyPort) Ready() bool { return p.ok }

type bundle struct {
	Readiness readiness
	hidden    readiness
}

type stub struct {
	name    string
	ports   any
	mounted int
}

func (s *stub) MountRoutes(phttp.Router) { s.mounted++ }
func (s *stub) Ports() any                { return s.ports }
func (s *stub) Name() string              { return s.name }

var _ Module = (*stub)(nil)

func TestPortsOf(t *testing.T) {
	direct := &stub{name: "a", ports: readyPort{ok: true}}
	if p, ok := PortsOf[readiness](direct); !ok || !p.Ready() {
		t.Fatalf("direct implementation not found")
	}

	field := &stub{name: "b", ports: bundle{Readiness: readyPort{ok: true}}}
	if _, ok := PortsOf[readiness](field); !ok {
		t.Fatalf("exported field not found")
	}

	ptr := &stub{name: "c", ports: &bundle{Readiness: readyPort{}}}
	if _, ok := PortsOf[readiness](ptr); !ok {
		t.Fatalf("pointer bundle not walked")
	}

	unexported := &stub{name: "d", ports: bundle{hidden: readyPort{}}}
	if _, ok := PortsOf[readiness](unexported); ok {
		t.Fatalf("unexported fields must be skipped")
	}

	if _, ok := PortsOf[readiness](&stub{name: "e"}); ok {
		t.Fatalf("nil ports must not match")
	}
	if _, ok := PortsOf[readiness](&stub{name: "f", ports: (*bundle)(nil)}); ok {
		t.Fatalf("nil pointer ports must not match")
	}

	testkit.MustPanic(t, func() { MustPortsOf[readiness](&stub{name: "g", ports: 42}) })
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	meta := &stub{name: "meta"}
	cat := &stub{name: "catalog", ports: bundle{Readiness: readyPort{ok: true}}}
	r.Add(meta, cat)

	all := r.All()
	if len(all) != 2 || all[0] != meta || all[1] != cat {
		t.Fatalf("registration order lost")
	}
	if m, ok := r.Get("catalog"); !ok || m != cat {
		t.Fatalf("Get(catalog) failed")
	}
	if p, ok := PortsAs[readiness](r, "catalog"); !ok || !p.Ready() {
		t.Fatalf("PortsAs(catalog) failed")
	}
	if _, ok := PortsAs[readiness](r, "missing"); ok {
		t.Fatalf("missing module must not resolve")
	}

	testkit.MustPanic(t, func() { r.Add(&stub{name: "meta"}) })
}
