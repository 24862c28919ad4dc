// Package api provides the HTTP API for the application
package api

import (
	"paporium/internal/platform/config"
	phttp "paporium/internal/platform/net/http"
	"paporium/internal/platform/store"

	"paporium/internal/modkit"
	"paporium/internal/modkit/httpkit"
	"paporium/internal/modkit/module"
	"paporium/internal/modkit/swaggerkit"

	metamod "paporium/internal/services/api/meta/module"
	catalogmod "paporium/internal/services/catalog/module"
)

// ServiceName names the API in logs and meta endpoints
const ServiceName = "paporium-api"

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
}

// API is what Mount leaves behind for the caller
type API struct {
	Modules *module.Registry
	Catalog *catalogmod.Module
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *API {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.Log = opt.Store.Log
		deps.PG = opt.Store.PG
	}

	catalog := catalogmod.New(deps, modkit.WithSwagger(opt.EnableSwagger))
	ready := module.MustPortsOf[catalogmod.Ports](catalog).Readiness

	reg := module.NewRegistry()
	reg.Add(
		metamod.New(deps, ServiceName, modkit.WithPorts(metamod.Ports{Catalog: ready})),
		catalog,
	)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		for _, m := range reg.All() {
			m.MountRoutes(api)
		}
	})
	return &API{Modules: reg, Catalog: catalog}
}
