// Package calls provides the call log bounded context module.
package calls

import (
	"recruit_portal_backend/internal/calls/handler"
	"recruit_portal_backend/internal/calls/repository"
	"recruit_portal_backend/internal/calls/service"
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the calls bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repo
}

// NewModule creates and initializes the calls module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus)
	return &Module{handler: handler.New(svc, validate), repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "calls"
}

// Repository exposes the calls repository for the webhook feedback path.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts call routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/calls"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
