// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "paporium/internal/platform/net/http"
)

// Module defines the minimal contract used by modkit
// kept apart from modkit so a module's ports package can import it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
