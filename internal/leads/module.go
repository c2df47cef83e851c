// Package leads provides the lead intake module.
package leads

import (
	apphttp "funnel_backend/internal/http"
	"funnel_backend/internal/leads/handler"
	"funnel_backend/internal/leads/service"
	"funnel_backend/platform/validator"
)

// Module represents the leads domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new leads module with all dependencies wired
func NewModule(deps service.Deps, val *validator.Validator) *Module {
	svc := service.New(deps)
	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes registers the module's routes under /api/leads and,
// when enabled, /api/admin/leads.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.API.Group("/leads"), ctx.PublicRateLimiter.RateLimit())
	if ctx.Admin != nil {
		m.handler.RegisterAdminRoutes(ctx.Admin.Group("/leads"))
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
