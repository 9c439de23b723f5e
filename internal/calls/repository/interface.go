package repository

import (
	"context"

	"github.com/google/uuid"
)

// Call is one outreach call attempt and its analysis payload.
type Call struct {
	ID                   uuid.UUID
	CampaignID           *uuid.UUID
	CandidateID          *uuid.UUID
	VapiCallID           *string
	TwilioCallSid        *string
	Outcome              *string
	Duration             *int
	AudioURL             *string
	Transcript           *string
	Summary              *string
	Sentiment            *string
	Confidence           *int
	ExtractedData        map[string]any
	RecommendedAction    *string
	ScheduledInterviewAt *string
	GhlSynced            bool
	GhlSyncedAt          *string
	ErrorMessage         *string
	CreatedAt            string
	UpdatedAt            string
}

// CreateParams contains parameters for recording a call.
type CreateParams struct {
	CampaignID        *uuid.UUID
	CandidateID       *uuid.UUID
	VapiCallID        *string
	TwilioCallSid     *string
	Outcome           *string
	Duration          *int
	AudioURL          *string
	Transcript        *string
	Summary           *string
	Sentiment         *string
	Confidence        *int
	ExtractedData     map[string]any
	RecommendedAction *string
	ErrorMessage      *string
}

// UpdateParams contains parameters for a partial call update.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID                   uuid.UUID
	Outcome              *string
	Duration             *int
	AudioURL             *string
	Transcript           *string
	Summary              *string
	Sentiment            *string
	Confidence           *int
	ExtractedData        map[string]any
	RecommendedAction    *string
	ScheduledInterviewAt *string
	GhlSynced            *bool
	ErrorMessage         *string
}

// ListFilter narrows List results.
type ListFilter struct {
	CampaignID  *uuid.UUID
	CandidateID *uuid.UUID
	Limit       int
}

// Repository provides call persistence.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Call, error)
	GetByID(ctx context.Context, id uuid.UUID) (Call, error)
	GetByVapiCallID(ctx context.Context, vapiCallID string) (Call, error)
	Create(ctx context.Context, params CreateParams) (Call, error)
	Update(ctx context.Context, params UpdateParams) (Call, error)
}
