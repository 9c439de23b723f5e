// Package transport defines request/response DTOs for the vacancies module.
package transport

import (
	"recruit_portal_backend/internal/vacancies/repository"

	"github.com/google/uuid"
)

// CreateVacancyRequest is the payload for POST /api/vacancies.
type CreateVacancyRequest struct {
	Title        string  `json:"title" validate:"required"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Salary       *string `json:"salary"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft active paused closed filled"`
}

// UpdateVacancyRequest is the payload for PATCH /api/vacancies/:id.
type UpdateVacancyRequest struct {
	Title        *string `json:"title"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Salary       *string `json:"salary"`
	Status       *string `json:"status" validate:"omitempty,oneof=draft active paused closed filled"`
}

// VacancyResponse is the vacancy shape returned to clients.
type VacancyResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Department   *string    `json:"department"`
	Location     *string    `json:"location"`
	Description  *string    `json:"description"`
	Requirements *string    `json:"requirements"`
	Salary       *string    `json:"salary"`
	Status       string     `json:"status"`
	CreatedBy    *uuid.UUID `json:"createdBy"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// FromVacancy maps a repository vacancy to its response shape.
func FromVacancy(v repository.Vacancy) VacancyResponse {
	return VacancyResponse{
		ID:           v.ID,
		Title:        v.Title,
		Department:   v.Department,
		Location:     v.Location,
		Description:  v.Description,
		Requirements: v.Requirements,
		Salary:       v.Salary,
		Status:       v.Status,
		CreatedBy:    v.CreatedBy,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// FromVacancies maps a slice of repository vacancies.
func FromVacancies(vacancies []repository.Vacancy) []VacancyResponse {
	out := make([]VacancyResponse, 0, len(vacancies))
	for _, v := range vacancies {
		out = append(out, FromVacancy(v))
	}
	return out
}
