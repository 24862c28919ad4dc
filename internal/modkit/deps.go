// Package modkit provides module wiring and core deps
package modkit

import (
	"paporium/internal/modkit/repokit"
	"paporium/internal/platform/config"
	"paporium/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// PG is the read-only postgres seam, nil when no database is configured
	PG repokit.Reader
}

// Named returns the root logger tagged with a module name
func (d Deps) Named(module string) logger.Logger {
	return d.Log.With().Str("module", module).Logger()
}
