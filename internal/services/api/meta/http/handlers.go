// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"paporium/internal/core/version"
	"paporium/internal/modkit/httpkit"
	"paporium/internal/modkit/repokit"
	perr "paporium/internal/platform/errors"
	ptime "paporium/internal/platform/time"
	"paporium/internal/services/catalog/domain"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// PG is pinged by the readiness probe; nil skips the check
	PG repokit.Pinger
	// Catalog reports dataset state; nil skips the check
	Catalog domain.ReadinessPort
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"paporium-api"`
	Started string `json:"started"  example:"2026-10-19T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-19T13:05:00Z"`
	Uptime  int64  `json:"uptime"   example:"300"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail loading skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-19T13:05:00Z"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := time.Now().UTC()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     now.Format(time.RFC3339),
		Uptime:  int64(ptime.Since(h.deps.StartedAt, now) / time.Second),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness: store ping and dataset state
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Failure 503 {object} httpkit.Envelope "not ready"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	pg := ReadyCheck{Name: "pg", Status: "skipped"}
	if h.deps.PG != nil {
		pg.Status = "ok"
		if err := repokit.Ping(ctx, h.deps.PG, 0); err != nil {
			pg.Status, pg.Error = "fail", err.Error()
		}
	}

	ds := ReadyCheck{Name: "dataset", Status: "skipped"}
	if h.deps.Catalog != nil {
		switch st := h.deps.Catalog.Status(); st.State {
		case "ready":
			ds.Status = "ok"
		case "failed":
			ds.Status, ds.Error = "fail", "dataset failed to load"
		default:
			ds.Status = st.State
		}
	}

	out := ReadyResponse{
		Status: "ok",
		Checks: []ReadyCheck{pg, ds},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}
	for _, c := range out.Checks {
		if c.Status != "ok" && c.Status != "skipped" {
			out.Status = "fail"
		}
	}
	if out.Status != "ok" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	if h.deps.ServiceName == "" {
		return nil, perr.Internalf("service name not configured")
	}
	return version.Info(h.deps.ServiceName), nil
}
