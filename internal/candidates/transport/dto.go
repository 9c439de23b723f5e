// Package transport defines request/response DTOs for the candidates module.
package transport

import (
	"recruit_portal_backend/internal/candidates/repository"

	"github.com/google/uuid"
)

// CreateCandidateRequest is the payload for POST /api/candidates.
type CreateCandidateRequest struct {
	Name          string         `json:"name" validate:"required"`
	Email         *string        `json:"email" validate:"omitempty,email"`
	Phone         string         `json:"phone" validate:"required"`
	CVUrl         *string        `json:"cvUrl"`
	LinkedinURL   *string        `json:"linkedinUrl"`
	Tags          []string       `json:"tags"`
	CustomFields  map[string]any `json:"customFields"`
	Status        string         `json:"status" validate:"omitempty,oneof=new screening interview offer hired rejected pool"`
	VacancyID     *uuid.UUID     `json:"vacancyId"`
	ConsentStatus string         `json:"consentStatus" validate:"omitempty,oneof=pending granted revoked"`
	ConsentSource *string        `json:"consentSource"`
	Notes         *string        `json:"notes"`
}

// UpdateCandidateRequest is the payload for PATCH /api/candidates/:id.
type UpdateCandidateRequest struct {
	Name          *string        `json:"name"`
	Email         *string        `json:"email" validate:"omitempty,email"`
	Phone         *string        `json:"phone"`
	CVUrl         *string        `json:"cvUrl"`
	LinkedinURL   *string        `json:"linkedinUrl"`
	Tags          []string       `json:"tags"`
	CustomFields  map[string]any `json:"customFields"`
	Status        *string        `json:"status" validate:"omitempty,oneof=new screening interview offer hired rejected pool"`
	VacancyID     *uuid.UUID     `json:"vacancyId"`
	ConsentStatus *string        `json:"consentStatus" validate:"omitempty,oneof=pending granted revoked"`
	ConsentSource *string        `json:"consentSource"`
	IsDnc         *bool          `json:"isDnc"`
	Notes         *string        `json:"notes"`
}

// CVUploadURLRequest asks for a presigned CV upload URL.
type CVUploadURLRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	SizeBytes   int64  `json:"sizeBytes" validate:"required,gt=0"`
}

// CandidateResponse is the candidate shape returned to clients.
type CandidateResponse struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Email            *string        `json:"email"`
	Phone            string         `json:"phone"`
	CVUrl            *string        `json:"cvUrl"`
	LinkedinURL      *string        `json:"linkedinUrl"`
	Tags             []string       `json:"tags"`
	CustomFields     map[string]any `json:"customFields"`
	Status           string         `json:"status"`
	VacancyID        *uuid.UUID     `json:"vacancyId"`
	ConsentStatus    string         `json:"consentStatus"`
	ConsentTimestamp *string        `json:"consentTimestamp"`
	ConsentSource    *string        `json:"consentSource"`
	IsDnc            bool           `json:"isDnc"`
	DncTimestamp     *string        `json:"dncTimestamp"`
	Notes            *string        `json:"notes"`
	CreatedAt        string         `json:"createdAt"`
	UpdatedAt        string         `json:"updatedAt"`
}

// FromCandidate maps a repository candidate to its response shape.
func FromCandidate(c repository.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		CVUrl:            c.CVUrl,
		LinkedinURL:      c.LinkedinURL,
		Tags:             c.Tags,
		CustomFields:     c.CustomFields,
		Status:           c.Status,
		VacancyID:        c.VacancyID,
		ConsentStatus:    c.ConsentStatus,
		ConsentTimestamp: c.ConsentTimestamp,
		ConsentSource:    c.ConsentSource,
		IsDnc:            c.IsDnc,
		DncTimestamp:     c.DncTimestamp,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// FromCandidates maps a slice of repository candidates.
func FromCandidates(candidates []repository.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, FromCandidate(c))
	}
	return out
}
