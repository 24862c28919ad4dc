package module

import "paporium/internal/services/catalog/domain"

// Ports is what the catalog exposes to other modules
type Ports struct {
	Catalog   domain.ServicePort
	Readiness domain.ReadinessPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
