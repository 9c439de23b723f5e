// Package repository runs the dashboard aggregate queries.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Counts holds the raw aggregates the stats endpoint is built from.
type Counts struct {
	Candidates      int
	Interviews      int
	Hired           int
	ActiveCampaigns int
	CallsToday      int
	TotalCalls      int
	SuccessfulCalls int
}

// Repository provides the dashboard aggregates.
type Repository interface {
	Counts(ctx context.Context) (Counts, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Counts gathers all aggregates in one round trip.
func (r *Repo) Counts(ctx context.Context) (Counts, error) {
	query := `
		SELECT
			(SELECT count(*) FROM candidates),
			(SELECT count(*) FROM candidates WHERE status = 'interview'),
			(SELECT count(*) FROM candidates WHERE status = 'hired'),
			(SELECT count(*) FROM campaigns WHERE status = 'running'),
			(SELECT count(*) FROM calls WHERE created_at >= date_trunc('day', now())),
			(SELECT count(*) FROM calls),
			(SELECT count(*) FROM calls WHERE outcome = 'interested')`

	var c Counts
	err := r.pool.QueryRow(ctx, query).Scan(
		&c.Candidates, &c.Interviews, &c.Hired, &c.ActiveCampaigns,
		&c.CallsToday, &c.TotalCalls, &c.SuccessfulCalls)
	if err != nil {
		return Counts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return c, nil
}
