// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"recruit_portal_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Auth Domain Events
// =============================================================================

// UserLoggedIn is published on successful login or demo login.
type UserLoggedIn struct {
	BaseEvent
	UserID    uuid.UUID `json:"userId"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}

func (e UserLoggedIn) EventName() string { return "auth.user.logged_in" }

// UserLoggedOut is published when a session is destroyed.
type UserLoggedOut struct {
	BaseEvent
	UserID uuid.UUID `json:"userId"`
}

func (e UserLoggedOut) EventName() string { return "auth.user.logged_out" }

// =============================================================================
// Entity Lifecycle Events
// =============================================================================

// EntityCreated is published when a vacancy, candidate, or campaign is created.
type EntityCreated struct {
	BaseEvent
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	UserID     uuid.UUID `json:"userId,omitempty"`
}

func (e EntityCreated) EventName() string { return "entity.created" }

// EntityDeleted is published when a vacancy, candidate, or campaign is removed.
type EntityDeleted struct {
	BaseEvent
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	UserID     uuid.UUID `json:"userId,omitempty"`
}

func (e EntityDeleted) EventName() string { return "entity.deleted" }

// =============================================================================
// Campaign Domain Events
// =============================================================================

// CampaignLaunched is published when a campaign launch succeeds.
type CampaignLaunched struct {
	BaseEvent
	CampaignID   uuid.UUID `json:"campaignId"`
	MockMode     bool      `json:"mockMode"`
	CallsCreated int       `json:"callsCreated"`
}

func (e CampaignLaunched) EventName() string { return "campaigns.launched" }

// CampaignCompleted is published when a campaign finishes all its calls.
type CampaignCompleted struct {
	BaseEvent
	CampaignID      uuid.UUID `json:"campaignId"`
	CampaignName    string    `json:"campaignName"`
	CreatedBy       uuid.UUID `json:"createdBy"`
	CompletedCalls  int       `json:"completedCalls"`
	SuccessfulCalls int       `json:"successfulCalls"`
	FailedCalls     int       `json:"failedCalls"`
}

func (e CampaignCompleted) EventName() string { return "campaigns.completed" }

// CallRecorded is published when a call row is written with an outcome.
type CallRecorded struct {
	BaseEvent
	CallID     uuid.UUID  `json:"callId"`
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	Outcome    string     `json:"outcome"`
}

func (e CallRecorded) EventName() string { return "calls.recorded" }

// =============================================================================
// Compliance Events
// =============================================================================

// DncEntryAdded is published when a phone number is added to the DNC list.
type DncEntryAdded struct {
	BaseEvent
	EntryID uuid.UUID `json:"entryId"`
	Phone   string    `json:"phone"`
	Source  string    `json:"source,omitempty"`
}

func (e DncEntryAdded) EventName() string { return "dnc.entry.added" }
