package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recruit_portal_backend/platform/apperr"
)

const candidateNotFoundMessage = "candidate not found"

const candidateColumns = `id, name, email, phone, cv_url, linkedin_url, tags, custom_fields, status,
	vacancy_id, consent_status, consent_timestamp, consent_source, is_dnc, dnc_timestamp, notes,
	created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new candidates repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all candidates, newest first.
func (r *Repo) List(ctx context.Context) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// ListByVacancy retrieves candidates attached to one vacancy.
func (r *Repo) ListByVacancy(ctx context.Context, vacancyID uuid.UUID) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE vacancy_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, vacancyID)
	if err != nil {
		return nil, fmt.Errorf("list candidates by vacancy: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows)
}

// GetByID retrieves a candidate by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// Create inserts a new candidate.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Candidate, error) {
	query := `
		INSERT INTO candidates (id, name, email, phone, cv_url, linkedin_url, tags, custom_fields,
			status, vacancy_id, consent_status, consent_source, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + candidateColumns

	if params.Tags == nil {
		params.Tags = []string{}
	}
	if params.CustomFields == nil {
		params.CustomFields = map[string]any{}
	}

	return r.scanOne(ctx, query,
		uuid.New(), params.Name, params.Email, params.Phone, params.CVUrl, params.LinkedinURL,
		params.Tags, params.CustomFields, params.Status, params.VacancyID,
		params.ConsentStatus, params.ConsentSource, params.Notes)
}

// Update applies a partial update; nil params keep the current value.
// Changing consent_status stamps consent_timestamp; toggling is_dnc stamps
// or clears dnc_timestamp.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Candidate, error) {
	query := `
		UPDATE candidates SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			cv_url = COALESCE($5, cv_url),
			linkedin_url = COALESCE($6, linkedin_url),
			tags = COALESCE($7, tags),
			custom_fields = COALESCE($8, custom_fields),
			status = COALESCE($9, status),
			vacancy_id = COALESCE($10, vacancy_id),
			consent_status = COALESCE($11, consent_status),
			consent_timestamp = CASE WHEN $11::text IS NULL THEN consent_timestamp ELSE now() END,
			consent_source = COALESCE($12, consent_source),
			is_dnc = COALESCE($13, is_dnc),
			dnc_timestamp = CASE
				WHEN $13::boolean IS NULL THEN dnc_timestamp
				WHEN $13::boolean THEN now()
				ELSE NULL
			END,
			notes = COALESCE($14, notes),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + candidateColumns

	var customFields any
	if params.CustomFields != nil {
		customFields = params.CustomFields
	}

	return r.scanOne(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.CVUrl, params.LinkedinURL,
		params.Tags, customFields, params.Status, params.VacancyID,
		params.ConsentStatus, params.ConsentSource, params.IsDnc, params.Notes)
}

// Delete removes a candidate.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(candidateNotFoundMessage)
	}
	return nil
}

func (r *Repo) scanOne(ctx context.Context, query string, args ...any) (Candidate, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	candidate, err := scanCandidate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Candidate{}, apperr.NotFound(candidateNotFoundMessage)
		}
		return Candidate{}, fmt.Errorf("query candidate: %w", err)
	}
	return candidate, nil
}

func scanCandidate(row pgx.Row) (Candidate, error) {
	var c Candidate
	var createdAt, updatedAt time.Time
	var consentTimestamp, dncTimestamp *time.Time

	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CVUrl, &c.LinkedinURL, &c.Tags, &c.CustomFields,
		&c.Status, &c.VacancyID, &c.ConsentStatus, &consentTimestamp, &c.ConsentSource,
		&c.IsDnc, &dncTimestamp, &c.Notes, &createdAt, &updatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}

	c.ConsentTimestamp = formatTime(consentTimestamp)
	c.DncTimestamp = formatTime(dncTimestamp)
	c.CreatedAt = createdAt.Format(time.RFC3339)
	c.UpdatedAt = updatedAt.Format(time.RFC3339)
	return c, nil
}

func scanCandidates(rows pgx.Rows) ([]Candidate, error) {
	candidates := make([]Candidate, 0)
	for rows.Next() {
		candidate, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, candidate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}
	return candidates, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
