// Package dashboard provides the dashboard statistics module.
package dashboard

import (
	"recruit_portal_backend/internal/dashboard/handler"
	"recruit_portal_backend/internal/dashboard/repository"
	"recruit_portal_backend/internal/dashboard/service"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/platform/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the dashboard module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the dashboard module.
func NewModule(pool *pgxpool.Pool, provider config.ProviderConfig) *Module {
	svc := service.New(repository.New(pool))
	return &Module{handler: handler.New(svc, provider)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts the dashboard and connector routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterDashboardRoutes(ctx.Protected.Group("/dashboard"))
	m.handler.RegisterConnectorRoutes(ctx.Protected.Group("/connectors"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
