package repository

import (
	"context"

	"github.com/google/uuid"
)

// Campaign is an outreach campaign and its aggregate call counters.
type Campaign struct {
	ID                 uuid.UUID
	Name               string
	Description        *string
	Status             string
	VacancyID          *uuid.UUID
	ScriptTemplate     *string
	CallWindowStart    string
	CallWindowEnd      string
	CallWindowDays     []string
	MaxConcurrentCalls int
	RetryLimit         int
	RetryDelayMinutes  int
	TotalCandidates    int
	CompletedCalls     int
	SuccessfulCalls    int
	FailedCalls        int
	CreatedBy          *uuid.UUID
	ScheduledAt        *string
	StartedAt          *string
	CompletedAt        *string
	CreatedAt          string
	UpdatedAt          string
}

// CandidateLink is a row of the campaign/candidate junction.
type CandidateLink struct {
	ID            uuid.UUID
	CampaignID    uuid.UUID
	CandidateID   uuid.UUID
	Status        string
	Attempts      int
	LastAttemptAt *string
	NextAttemptAt *string
}

// CreateParams contains parameters for creating a campaign.
type CreateParams struct {
	Name               string
	Description        *string
	Status             string
	VacancyID          *uuid.UUID
	ScriptTemplate     *string
	CallWindowStart    string
	CallWindowEnd      string
	CallWindowDays     []string
	MaxConcurrentCalls int
	RetryLimit         int
	RetryDelayMinutes  int
	TotalCandidates    int
	CreatedBy          *uuid.UUID
	ScheduledAt        *string
}

// UpdateParams contains parameters for a partial campaign update.
// Nil fields are left unchanged. Status legality is checked by the service.
type UpdateParams struct {
	ID                 uuid.UUID
	Name               *string
	Description        *string
	Status             *string
	VacancyID          *uuid.UUID
	ScriptTemplate     *string
	CallWindowStart    *string
	CallWindowEnd      *string
	CallWindowDays     []string
	MaxConcurrentCalls *int
	RetryLimit         *int
	RetryDelayMinutes  *int
	TotalCandidates    *int
	ScheduledAt        *string
}

// CompletedCallParams records one finished live call inside a single
// transaction: the call row, the counter increments, and the junction update.
type CompletedCallParams struct {
	CampaignID   uuid.UUID
	CandidateID  *uuid.UUID
	VapiCallID   *string
	Outcome      string
	Duration     *int
	Transcript   *string
	Summary      *string
	Sentiment    *string
	Confidence   *int
	ErrorMessage *string
}

// Repository provides campaign persistence including the candidate junction
// and the aggregate counters.
type Repository interface {
	List(ctx context.Context) ([]Campaign, error)
	GetByID(ctx context.Context, id uuid.UUID) (Campaign, error)
	Create(ctx context.Context, params CreateParams) (Campaign, error)
	Update(ctx context.Context, params UpdateParams) (Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AttachCandidates(ctx context.Context, campaignID uuid.UUID, candidateIDs []uuid.UUID) error
	ListCandidateLinks(ctx context.Context, campaignID uuid.UUID) ([]CandidateLink, error)
	ListDuePending(ctx context.Context, campaignID uuid.UUID) ([]CandidateLink, error)
	ScheduleRetry(ctx context.Context, linkID uuid.UUID, delayMinutes int) error

	SetRunning(ctx context.Context, id uuid.UUID, totalCandidates int) error
	RecordCompletedCall(ctx context.Context, params CompletedCallParams) (Campaign, error)
	IncrementCallCounters(ctx context.Context, id uuid.UUID, successful bool) (Campaign, error)
	FinishMockExecution(ctx context.Context, id uuid.UUID, completed, successful, failed int) (Campaign, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (Campaign, error)
}
