package googleauth

import (
	apphttp "funnel_backend/internal/http"
	"funnel_backend/platform/logger"
)

// Module exposes the consent flow under /api/auth.
type Module struct {
	handler *Handler
}

// NewModule creates the module. client may be nil when Google is not
// configured; the routes then answer 503.
func NewModule(client *Client, log *logger.Logger) *Module {
	return &Module{handler: NewHandler(client, log)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "googleauth"
}

// RegisterRoutes registers the module's routes under /api/auth
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/auth"))
}

var _ apphttp.Module = (*Module)(nil)
