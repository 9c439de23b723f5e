// Package candidates provides the candidate bounded context module.
package candidates

import (
	"recruit_portal_backend/internal/candidates/handler"
	"recruit_portal_backend/internal/candidates/repository"
	"recruit_portal_backend/internal/candidates/service"
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/internal/storage"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the candidates bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the candidates module.
// cvStore may be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, cvStore storage.CVStore, eventBus events.Bus, validate *validator.Validator, phoneRegion string) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cvStore, eventBus, phoneRegion)
	return &Module{handler: handler.New(svc, validate)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "candidates"
}

// RegisterRoutes mounts candidate routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/candidates"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
