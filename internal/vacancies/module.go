// Package vacancies provides the vacancy bounded context module.
package vacancies

import (
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/internal/vacancies/handler"
	"recruit_portal_backend/internal/vacancies/repository"
	"recruit_portal_backend/internal/vacancies/service"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the vacancies bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the vacancies module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus)
	return &Module{handler: handler.New(svc, validate)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vacancies"
}

// RegisterRoutes mounts vacancy routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/vacancies"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
