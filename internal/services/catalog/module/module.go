// Package module wires the catalog into the API using modkit
package module

import (
	"context"
	"time"

	modkit "paporium/internal/modkit"
	"paporium/internal/modkit/swaggerkit"
	phttp "paporium/internal/platform/net/http"
	str "paporium/internal/platform/strings"
	"paporium/internal/services/catalog/dataset"
	cataloghttp "paporium/internal/services/catalog/http"
	catalogrepo "paporium/internal/services/catalog/repo"
	catalogsvc "paporium/internal/services/catalog/service"
)

// DefaultStatementTimeout bounds each statement of a catalog snapshot
const DefaultStatementTimeout = 10 * time.Second

// Module implements the catalog module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *catalogsvc.Svc
	ports Ports
}

// New constructs the catalog module. The dataset is not loaded here; call
// Load once the process is up.
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("catalog"), modkit.WithPrefix("/catalog")}, opts...)...)

	timeout := deps.Cfg.MayDuration("STATEMENT_TIMEOUT", DefaultStatementTimeout)
	svc := catalogsvc.New(deps.PG, catalogrepo.NewPG(), dataset.NewHolder(), catalogsvc.WithStatementTimeout(timeout))

	m := &Module{deps: deps, built: b, svc: svc}
	m.ports = Ports{Catalog: svc, Readiness: svc}

	if b.SwaggerOn {
		swaggerkit.Register(docPaths)
	}
	return m
}

// Load reads the dataset; see catalogsvc.Svc.Load
func (m *Module) Load(ctx context.Context) error {
	log := m.deps.Named(m.Name())
	err := m.svc.Load(ctx)
	if err == nil {
		log.Info().Str("state", m.svc.Status().State).Msg("catalog ready")
	}
	return err
}

// Service returns the catalog service
func (m *Module) Service() *catalogsvc.Svc { return m.svc }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r phttp.Router) {
	modkit.Mount(r, m.built, func(rr phttp.Router) { cataloghttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }
