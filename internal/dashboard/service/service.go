// Package service assembles the dashboard statistics.
package service

import (
	"context"
	"math"

	"recruit_portal_backend/internal/dashboard/repository"
)

// Stats is the dashboard payload.
type Stats struct {
	TotalApplications   int `json:"totalApplications"`
	InterviewsScheduled int `json:"interviewsScheduled"`
	Placements          int `json:"placements"`
	ActiveCampaigns     int `json:"activeCampaigns"`
	CallsToday          int `json:"callsToday"`
	SuccessRate         int `json:"successRate"`
}

// Service implements the dashboard use case.
type Service struct {
	repo repository.Repository
}

// New creates the dashboard service.
func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// Stats returns the aggregate recruitment picture. The success rate is the
// share of calls with an interested outcome; zero calls yield a zero rate.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		TotalApplications:   counts.Candidates,
		InterviewsScheduled: counts.Interviews,
		Placements:          counts.Hired,
		ActiveCampaigns:     counts.ActiveCampaigns,
		CallsToday:          counts.CallsToday,
		SuccessRate:         successRate(counts.SuccessfulCalls, counts.TotalCalls),
	}, nil
}

func successRate(successful, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(successful) / float64(total) * 100))
}
