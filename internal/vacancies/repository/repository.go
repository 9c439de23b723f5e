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

const vacancyNotFoundMessage = "vacancy not found"

const vacancyColumns = `id, title, department, location, description, requirements, salary, status, created_by, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vacancies repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// List retrieves all vacancies, newest first.
func (r *Repo) List(ctx context.Context) ([]Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vacancies: %w", err)
	}
	defer rows.Close()

	return scanVacancies(rows)
}

// GetByID retrieves a vacancy by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Vacancy, error) {
	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// Create inserts a new vacancy.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Vacancy, error) {
	query := `
		INSERT INTO vacancies (id, title, department, location, description, requirements, salary, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + vacancyColumns

	return r.scanOne(ctx, query,
		uuid.New(), params.Title, params.Department, params.Location, params.Description,
		params.Requirements, params.Salary, params.Status, params.CreatedBy)
}

// Update applies a partial update; nil params keep the current value.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Vacancy, error) {
	query := `
		UPDATE vacancies SET
			title = COALESCE($2, title),
			department = COALESCE($3, department),
			location = COALESCE($4, location),
			description = COALESCE($5, description),
			requirements = COALESCE($6, requirements),
			salary = COALESCE($7, salary),
			status = COALESCE($8, status),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + vacancyColumns

	return r.scanOne(ctx, query,
		params.ID, params.Title, params.Department, params.Location, params.Description,
		params.Requirements, params.Salary, params.Status)
}

// Delete removes a vacancy. Dependent candidates and campaigns keep their
// rows; their vacancy_id FK is set null by the schema.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vacancies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vacancy: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(vacancyNotFoundMessage)
	}
	return nil
}

func (r *Repo) scanOne(ctx context.Context, query string, args ...any) (Vacancy, error) {
	var v Vacancy
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&v.ID, &v.Title, &v.Department, &v.Location, &v.Description,
		&v.Requirements, &v.Salary, &v.Status, &v.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Vacancy{}, apperr.NotFound(vacancyNotFoundMessage)
		}
		return Vacancy{}, fmt.Errorf("query vacancy: %w", err)
	}

	v.CreatedAt = createdAt.Format(time.RFC3339)
	v.UpdatedAt = updatedAt.Format(time.RFC3339)
	return v, nil
}

func scanVacancies(rows pgx.Rows) ([]Vacancy, error) {
	vacancies := make([]Vacancy, 0)
	for rows.Next() {
		var v Vacancy
		var createdAt, updatedAt time.Time
		if err := rows.Scan(
			&v.ID, &v.Title, &v.Department, &v.Location, &v.Description,
			&v.Requirements, &v.Salary, &v.Status, &v.CreatedBy, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vacancy: %w", err)
		}
		v.CreatedAt = createdAt.Format(time.RFC3339)
		v.UpdatedAt = updatedAt.Format(time.RFC3339)
		vacancies = append(vacancies, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vacancies: %w", err)
	}
	return vacancies, nil
}
