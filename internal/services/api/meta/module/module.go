// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "paporium/internal/modkit"
	"paporium/internal/modkit/repokit"
	phttp "paporium/internal/platform/net/http"
	str "paporium/internal/platform/strings"
	"paporium/internal/services/catalog/domain"

	metahttp "paporium/internal/services/api/meta/http"
)

// Ports are what meta consumes from other modules, injected with modkit.WithPorts
type Ports struct {
	Catalog domain.ReadinessPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	built     modkit.Built
	service   string
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		deps:      deps,
		built:     b,
		service:   service,
		startedAt: time.Now(),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r phttp.Router) {
	d := metahttp.Deps{ServiceName: m.service, StartedAt: m.startedAt}
	if p, ok := m.deps.PG.(repokit.Pinger); ok {
		d.PG = p
	}
	if p, ok := m.built.Ports.(Ports); ok {
		d.Catalog = p.Catalog
	}
	modkit.Mount(r, m.built, func(rr phttp.Router) { metahttp.Register(rr, d) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
