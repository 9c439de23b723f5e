// Package transport defines request/response DTOs for the calls module.
package transport

import (
	"recruit_portal_backend/internal/calls/repository"

	"github.com/google/uuid"
)

// CreateCallRequest is the payload for POST /api/calls.
type CreateCallRequest struct {
	CampaignID        *uuid.UUID     `json:"campaignId"`
	CandidateID       *uuid.UUID     `json:"candidateId"`
	VapiCallID        *string        `json:"vapiCallId"`
	TwilioCallSid     *string        `json:"twilioCallSid"`
	Outcome           *string        `json:"outcome" validate:"omitempty,oneof=interested not_interested no_answer busy voicemail opt_out callback error"`
	Duration          *int           `json:"duration" validate:"omitempty,gte=0"`
	AudioURL          *string        `json:"audioUrl"`
	Transcript        *string        `json:"transcript"`
	Summary           *string        `json:"summary"`
	Sentiment         *string        `json:"sentiment"`
	Confidence        *int           `json:"confidence" validate:"omitempty,gte=0,lte=100"`
	ExtractedData     map[string]any `json:"extractedData"`
	RecommendedAction *string        `json:"recommendedAction"`
	ErrorMessage      *string        `json:"errorMessage"`
}

// UpdateCallRequest is the payload for PATCH /api/calls/:id.
type UpdateCallRequest struct {
	Outcome              *string        `json:"outcome" validate:"omitempty,oneof=interested not_interested no_answer busy voicemail opt_out callback error"`
	Duration             *int           `json:"duration" validate:"omitempty,gte=0"`
	AudioURL             *string        `json:"audioUrl"`
	Transcript           *string        `json:"transcript"`
	Summary              *string        `json:"summary"`
	Sentiment            *string        `json:"sentiment"`
	Confidence           *int           `json:"confidence" validate:"omitempty,gte=0,lte=100"`
	ExtractedData        map[string]any `json:"extractedData"`
	RecommendedAction    *string        `json:"recommendedAction"`
	ScheduledInterviewAt *string        `json:"scheduledInterviewAt"`
	GhlSynced            *bool          `json:"ghlSynced"`
	ErrorMessage         *string        `json:"errorMessage"`
}

// CallResponse is the call shape returned to clients.
type CallResponse struct {
	ID                   uuid.UUID      `json:"id"`
	CampaignID           *uuid.UUID     `json:"campaignId"`
	CandidateID          *uuid.UUID     `json:"candidateId"`
	VapiCallID           *string        `json:"vapiCallId"`
	TwilioCallSid        *string        `json:"twilioCallSid"`
	Outcome              *string        `json:"outcome"`
	Duration             *int           `json:"duration"`
	AudioURL             *string        `json:"audioUrl"`
	Transcript           *string        `json:"transcript"`
	Summary              *string        `json:"summary"`
	Sentiment            *string        `json:"sentiment"`
	Confidence           *int           `json:"confidence"`
	ExtractedData        map[string]any `json:"extractedData"`
	RecommendedAction    *string        `json:"recommendedAction"`
	ScheduledInterviewAt *string        `json:"scheduledInterviewAt"`
	GhlSynced            bool           `json:"ghlSynced"`
	GhlSyncedAt          *string        `json:"ghlSyncedAt"`
	ErrorMessage         *string        `json:"errorMessage"`
	CreatedAt            string         `json:"createdAt"`
	UpdatedAt            string         `json:"updatedAt"`
}

// FromCall maps a repository call to its response shape.
func FromCall(c repository.Call) CallResponse {
	return CallResponse{
		ID:                   c.ID,
		CampaignID:           c.CampaignID,
		CandidateID:          c.CandidateID,
		VapiCallID:           c.VapiCallID,
		TwilioCallSid:        c.TwilioCallSid,
		Outcome:              c.Outcome,
		Duration:             c.Duration,
		AudioURL:             c.AudioURL,
		Transcript:           c.Transcript,
		Summary:              c.Summary,
		Sentiment:            c.Sentiment,
		Confidence:           c.Confidence,
		ExtractedData:        c.ExtractedData,
		RecommendedAction:    c.RecommendedAction,
		ScheduledInterviewAt: c.ScheduledInterviewAt,
		GhlSynced:            c.GhlSynced,
		GhlSyncedAt:          c.GhlSyncedAt,
		ErrorMessage:         c.ErrorMessage,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

// FromCalls maps a slice of repository calls.
func FromCalls(calls []repository.Call) []CallResponse {
	out := make([]CallResponse, 0, len(calls))
	for _, c := range calls {
		out = append(out, FromCall(c))
	}
	return out
}
