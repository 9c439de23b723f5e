// Package notification sends emails in response to domain events. The module
// subscribes to the event bus so domain modules never depend on delivery.
package notification

import (
	"context"

	authrepo "recruit_portal_backend/internal/auth/repository"
	"recruit_portal_backend/internal/email"
	"recruit_portal_backend/internal/events"
	"recruit_portal_backend/platform/logger"

	"github.com/google/uuid"
)

// UserReader resolves the recipient of a notification.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (authrepo.User, error)
}

// Module is the notification event subscriber.
type Module struct {
	sender email.Sender
	users  UserReader
	log    *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(sender email.Sender, users UserReader, log *logger.Logger) *Module {
	return &Module{sender: sender, users: users, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterHandlers subscribes to the notified domain events on the event bus.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.CampaignCompleted{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.CampaignCompleted:
		return m.handleCampaignCompleted(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// handleCampaignCompleted mails the campaign creator a completion summary.
// Campaigns without a known creator are skipped.
func (m *Module) handleCampaignCompleted(ctx context.Context, e events.CampaignCompleted) error {
	if e.CreatedBy == uuid.Nil {
		return nil
	}

	user, err := m.users.GetByID(ctx, e.CreatedBy)
	if err != nil {
		return err
	}

	return m.sender.SendCampaignCompletedEmail(ctx, user.Email, e.CampaignName,
		e.CompletedCalls, e.SuccessfulCalls, e.FailedCalls)
}

// Compile-time check that Module implements events.Handler.
var _ events.Handler = (*Module)(nil)
