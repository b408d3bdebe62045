package services

import (
	"context"

	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

// StatsService derives dashboard aggregates. Reads only, no side effects.
type StatsService struct {
	repo ports.Repository
}

func NewStatsService(repo ports.Repository) *StatsService {
	return &StatsService{repo: repo}
}

func (s *StatsService) OwnerStats(ctx context.Context, ownerID string) (*domain.OwnerStats, error) {
	totalClicks, err := s.repo.GetTotalClicks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	links, err := s.repo.GetLinkAnalytics(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.OwnerStats{
		TotalClicks: totalClicks,
		TotalUsers:  totalUsers,
		Links:       links,
	}, nil
}

var _ ports.StatsService = (*StatsService)(nil)
