// Package audit records an append-only trail of domain activity. The module
// subscribes to events and inverts the dependency: domain modules never talk
// to the audit store directly.
package audit

import (
	"context"

	"recruit_portal_backend/internal/audit/repository"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit event subscriber.
type Module struct {
	repo repository.Repository
	log  *logger.Logger
}

// NewModule creates and initializes the audit module.
func NewModule(pool *pgxpool.Pool, log *logger.Logger) *Module {
	return &Module{repo: repository.New(pool), log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// RegisterHandlers subscribes to all audited domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.UserLoggedIn{}.EventName(), m)
	bus.Subscribe(events.UserLoggedOut{}.EventName(), m)
	bus.Subscribe(events.EntityCreated{}.EventName(), m)
	bus.Subscribe(events.EntityDeleted{}.EventName(), m)
	bus.Subscribe(events.CampaignLaunched{}.EventName(), m)
	bus.Subscribe(events.CampaignCompleted{}.EventName(), m)
	bus.Subscribe(events.CallRecorded{}.EventName(), m)
	bus.Subscribe(events.DncEntryAdded{}.EventName(), m)

	m.log.Info("audit module registered event handlers")
}

// Handle routes events to the matching audit entry.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserLoggedIn:
		return m.repo.Create(ctx, repository.CreateParams{
			UserID:     optionalID(e.UserID),
			Action:     "login",
			EntityType: "user",
			EntityID:   optionalID(e.UserID),
			Details:    map[string]any{"email": e.Email},
			IPAddress:  optionalString(e.IPAddress),
			UserAgent:  optionalString(e.UserAgent),
		})
	case events.UserLoggedOut:
		return m.repo.Create(ctx, repository.CreateParams{
			UserID:     optionalID(e.UserID),
			Action:     "logout",
			EntityType: "user",
			EntityID:   optionalID(e.UserID),
		})
	case events.EntityCreated:
		return m.repo.Create(ctx, repository.CreateParams{
			UserID:     optionalID(e.UserID),
			Action:     "create",
			EntityType: e.EntityType,
			EntityID:   optionalID(e.EntityID),
		})
	case events.EntityDeleted:
		return m.repo.Create(ctx, repository.CreateParams{
			UserID:     optionalID(e.UserID),
			Action:     "delete",
			EntityType: e.EntityType,
			EntityID:   optionalID(e.EntityID),
		})
	case events.CampaignLaunched:
		return m.repo.Create(ctx, repository.CreateParams{
			Action:     "call",
			EntityType: "campaign",
			EntityID:   optionalID(e.CampaignID),
			Details:    map[string]any{"mockMode": e.MockMode, "callsCreated": e.CallsCreated},
		})
	case events.CampaignCompleted:
		return m.repo.Create(ctx, repository.CreateParams{
			UserID:     optionalID(e.CreatedBy),
			Action:     "update",
			EntityType: "campaign",
			EntityID:   optionalID(e.CampaignID),
			Details: map[string]any{
				"completedCalls":  e.CompletedCalls,
				"successfulCalls": e.SuccessfulCalls,
				"failedCalls":     e.FailedCalls,
			},
		})
	case events.CallRecorded:
		return m.repo.Create(ctx, repository.CreateParams{
			Action:     "call",
			EntityType: "call",
			EntityID:   optionalID(e.CallID),
			Details:    map[string]any{"outcome": e.Outcome},
		})
	case events.DncEntryAdded:
		return m.repo.Create(ctx, repository.CreateParams{
			Action:     "create",
			EntityType: "dnc_entry",
			EntityID:   optionalID(e.EntryID),
			Details:    map[string]any{"phone": e.Phone, "source": e.Source},
		})
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// Compile-time check that Module implements events.Handler.
var _ events.Handler = (*Module)(nil)

func optionalID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
