// Package dnc provides the do-not-call compliance bounded context module.
package dnc

import (
	"recruit_portal_backend/internal/dnc/handler"
	"recruit_portal_backend/internal/dnc/repository"
	"recruit_portal_backend/internal/dnc/service"
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the DNC bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the DNC module.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, validate *validator.Validator, phoneRegion string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, phoneRegion)
	return &Module{handler: handler.New(svc, validate), service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dnc"
}

// Service exposes the gate for the campaign executor.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts DNC routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/dnc"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
