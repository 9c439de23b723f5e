package service

import (
	"context"
	"testing"

	"recruit_portal_backend/internal/dashboard/repository"
)

type fakeRepo struct {
	counts repository.Counts
}

func (f *fakeRepo) Counts(ctx context.Context) (repository.Counts, error) {
	return f.counts, nil
}

func TestStatsSuccessRateZeroWithoutCalls(t *testing.T) {
	svc := New(&fakeRepo{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.SuccessRate != 0 {
		t.Fatalf("successRate = %d, want 0", stats.SuccessRate)
	}
}

func TestStatsSuccessRateRounds(t *testing.T) {
	svc := New(&fakeRepo{counts: repository.Counts{
		TotalCalls:      3,
		SuccessfulCalls: 1,
	}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.SuccessRate != 33 {
		t.Fatalf("successRate = %d, want 33", stats.SuccessRate)
	}
}

func TestStatsMapsCounts(t *testing.T) {
	svc := New(&fakeRepo{counts: repository.Counts{
		Candidates:      12,
		Interviews:      4,
		Hired:           2,
		ActiveCampaigns: 1,
		CallsToday:      7,
		TotalCalls:      10,
		SuccessfulCalls: 5,
	}})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error: %v", err)
	}
	if stats.TotalApplications != 12 || stats.InterviewsScheduled != 4 || stats.Placements != 2 {
		t.Fatalf("stats = %+v, want candidate counts mapped", stats)
	}
	if stats.ActiveCampaigns != 1 || stats.CallsToday != 7 || stats.SuccessRate != 50 {
		t.Fatalf("stats = %+v, want campaign/call counts mapped", stats)
	}
}
