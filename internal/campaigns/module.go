// Package campaigns provides the campaign bounded context module: CRUD,
// lifecycle management and mock/live launch orchestration.
package campaigns

import (
	"recruit_portal_backend/internal/campaigns/executor"
	"recruit_portal_backend/internal/campaigns/handler"
	"recruit_portal_backend/internal/campaigns/repository"
	"recruit_portal_backend/internal/campaigns/service"
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/platform/logger"
	"recruit_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the campaigns bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    repository.Repository
}

// NewModule creates and initializes the campaigns module. The executor
// collaborators come from sibling modules: call persistence, candidate
// lookup, the DNC/consent gate, the mock-mode switch, the async dispatcher
// and the provider configuration.
func NewModule(
	pool *pgxpool.Pool,
	calls executor.CallWriter,
	candidates executor.CandidateReader,
	gate executor.EligibilityGate,
	mockMode executor.MockModeReader,
	dispatcher executor.Dispatcher,
	provider executor.ProviderCheck,
	eventBus events.Bus,
	log *logger.Logger,
	validate *validator.Validator,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus)
	exec := executor.New(repo, calls, candidates, gate, mockMode, dispatcher, provider, eventBus, log)
	return &Module{
		handler: handler.New(svc, exec, validate),
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "campaigns"
}

// RegisterRoutes mounts campaign routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/campaigns"))
}

// Repository exposes campaign persistence for the webhook processor and the
// dispatch worker.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
