// Package appointments provides the booking calendar module.
package appointments

import (
	"funnel_backend/internal/appointments/handler"
	"funnel_backend/internal/appointments/service"
	"funnel_backend/internal/calendar"
	"funnel_backend/internal/events"
	apphttp "funnel_backend/internal/http"
	"funnel_backend/platform/config"
	"funnel_backend/platform/logger"
	"funnel_backend/platform/validator"
)

// Module represents the appointments domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new appointments module with all dependencies wired
func NewModule(provider calendar.Provider, ledger service.LedgerWriter, bus events.Bus, cfg config.MeetingConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(provider, ledger, bus, cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "appointments"
}

// RegisterRoutes registers the module's routes under /api/calendar
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/calendar"), ctx.PublicRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
