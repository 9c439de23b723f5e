// Package webhooks provides the webhook ingestion module: the idempotency
// ledger plus the live-call feedback path.
package webhooks

import (
	"recruit_portal_backend/internal/events"
	apphttp "recruit_portal_backend/internal/http"
	"recruit_portal_backend/internal/webhooks/handler"
	"recruit_portal_backend/internal/webhooks/repository"
	"recruit_portal_backend/internal/webhooks/service"
	"recruit_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the webhooks module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the webhooks module.
func NewModule(pool *pgxpool.Pool, calls service.CallStore, campaigns service.CampaignCounters,
	sharedToken string, eventBus events.Bus, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), calls, campaigns, eventBus, log)
	return &Module{handler: handler.New(svc, sharedToken)}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "webhooks"
}

// RegisterRoutes mounts the webhook routes on the public API group. Provider
// deliveries cannot carry a session, so these stay outside the auth guard.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API.Group("/webhooks"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
