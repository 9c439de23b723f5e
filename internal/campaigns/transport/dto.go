// Package transport defines request/response DTOs for the campaigns module.
package transport

import (
	"recruit_portal_backend/internal/campaigns/repository"

	"github.com/google/uuid"
)

// CreateCampaignRequest is the payload for POST /api/campaigns.
type CreateCampaignRequest struct {
	Name               string     `json:"name" validate:"required"`
	Description        *string    `json:"description"`
	Status             string     `json:"status" validate:"omitempty,oneof=draft scheduled running paused completed cancelled"`
	VacancyID          *uuid.UUID `json:"vacancyId"`
	ScriptTemplate     *string    `json:"scriptTemplate"`
	CallWindowStart    string     `json:"callWindowStart" validate:"omitempty,len=5"`
	CallWindowEnd      string     `json:"callWindowEnd" validate:"omitempty,len=5"`
	CallWindowDays     []string   `json:"callWindowDays" validate:"dive,oneof=mon tue wed thu fri sat sun"`
	MaxConcurrentCalls int        `json:"maxConcurrentCalls" validate:"omitempty,gte=1,lte=50"`
	RetryLimit         int        `json:"retryLimit" validate:"omitempty,gte=0,lte=10"`
	RetryDelayMinutes  int        `json:"retryDelayMinutes" validate:"omitempty,gte=1"`
	TotalCandidates    int        `json:"totalCandidates" validate:"omitempty,gte=0"`
	ScheduledAt        *string    `json:"scheduledAt"`
}

// UpdateCampaignRequest is the payload for PATCH /api/campaigns/:id.
type UpdateCampaignRequest struct {
	Name               *string    `json:"name"`
	Description        *string    `json:"description"`
	Status             *string    `json:"status" validate:"omitempty,oneof=draft scheduled running paused completed cancelled"`
	VacancyID          *uuid.UUID `json:"vacancyId"`
	ScriptTemplate     *string    `json:"scriptTemplate"`
	CallWindowStart    *string    `json:"callWindowStart" validate:"omitempty,len=5"`
	CallWindowEnd      *string    `json:"callWindowEnd" validate:"omitempty,len=5"`
	CallWindowDays     []string   `json:"callWindowDays" validate:"dive,oneof=mon tue wed thu fri sat sun"`
	MaxConcurrentCalls *int       `json:"maxConcurrentCalls" validate:"omitempty,gte=1,lte=50"`
	RetryLimit         *int       `json:"retryLimit" validate:"omitempty,gte=0,lte=10"`
	RetryDelayMinutes  *int       `json:"retryDelayMinutes" validate:"omitempty,gte=1"`
	TotalCandidates    *int       `json:"totalCandidates" validate:"omitempty,gte=0"`
	ScheduledAt        *string    `json:"scheduledAt"`
}

// AttachCandidatesRequest is the payload for POST /api/campaigns/:id/candidates.
type AttachCandidatesRequest struct {
	CandidateIDs []uuid.UUID `json:"candidateIds" validate:"required,min=1"`
}

// CampaignResponse is the campaign shape returned to clients.
type CampaignResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Description        *string    `json:"description"`
	Status             string     `json:"status"`
	VacancyID          *uuid.UUID `json:"vacancyId"`
	ScriptTemplate     *string    `json:"scriptTemplate"`
	CallWindowStart    string     `json:"callWindowStart"`
	CallWindowEnd      string     `json:"callWindowEnd"`
	CallWindowDays     []string   `json:"callWindowDays"`
	MaxConcurrentCalls int        `json:"maxConcurrentCalls"`
	RetryLimit         int        `json:"retryLimit"`
	RetryDelayMinutes  int        `json:"retryDelayMinutes"`
	TotalCandidates    int        `json:"totalCandidates"`
	CompletedCalls     int        `json:"completedCalls"`
	SuccessfulCalls    int        `json:"successfulCalls"`
	FailedCalls        int        `json:"failedCalls"`
	CreatedBy          *uuid.UUID `json:"createdBy"`
	ScheduledAt        *string    `json:"scheduledAt"`
	StartedAt          *string    `json:"startedAt"`
	CompletedAt        *string    `json:"completedAt"`
	CreatedAt          string     `json:"createdAt"`
	UpdatedAt          string     `json:"updatedAt"`
}

// CandidateLinkResponse is one campaign/candidate junction row.
type CandidateLinkResponse struct {
	ID            uuid.UUID `json:"id"`
	CampaignID    uuid.UUID `json:"campaignId"`
	CandidateID   uuid.UUID `json:"candidateId"`
	Status        string    `json:"status"`
	Attempts      int       `json:"attempts"`
	LastAttemptAt *string   `json:"lastAttemptAt"`
	NextAttemptAt *string   `json:"nextAttemptAt"`
}

// FromCampaign maps a repository campaign to its response shape.
func FromCampaign(c repository.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		Status:             c.Status,
		VacancyID:          c.VacancyID,
		ScriptTemplate:     c.ScriptTemplate,
		CallWindowStart:    c.CallWindowStart,
		CallWindowEnd:      c.CallWindowEnd,
		CallWindowDays:     c.CallWindowDays,
		MaxConcurrentCalls: c.MaxConcurrentCalls,
		RetryLimit:         c.RetryLimit,
		RetryDelayMinutes:  c.RetryDelayMinutes,
		TotalCandidates:    c.TotalCandidates,
		CompletedCalls:     c.CompletedCalls,
		SuccessfulCalls:    c.SuccessfulCalls,
		FailedCalls:        c.FailedCalls,
		CreatedBy:          c.CreatedBy,
		ScheduledAt:        c.ScheduledAt,
		StartedAt:          c.StartedAt,
		CompletedAt:        c.CompletedAt,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// FromCampaigns maps a slice of repository campaigns.
func FromCampaigns(campaigns []repository.Campaign) []CampaignResponse {
	out := make([]CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, FromCampaign(c))
	}
	return out
}

// FromCandidateLinks maps junction rows.
func FromCandidateLinks(links []repository.CandidateLink) []CandidateLinkResponse {
	out := make([]CandidateLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, CandidateLinkResponse{
			ID:            l.ID,
			CampaignID:    l.CampaignID,
			CandidateID:   l.CandidateID,
			Status:        l.Status,
			Attempts:      l.Attempts,
			LastAttemptAt: l.LastAttemptAt,
			NextAttemptAt: l.NextAttemptAt,
		})
	}
	return out
}
