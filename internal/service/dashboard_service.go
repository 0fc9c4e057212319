package service

import (
	"context"
	"time"

	"admindesk/internal/models"
	"admindesk/internal/repository"
)

// DashboardService produces the dashboard aggregates. The stored singleton
// and the live recompute are both exposed; they can diverge between
// refreshes.
type DashboardService struct {
	posts repository.PostRepository
	users repository.UserRepository
	stats repository.StatsRepository
}

// NewDashboardService returns a new DashboardService.
func NewDashboardService(
	posts repository.PostRepository,
	users repository.UserRepository,
	stats repository.StatsRepository,
) *DashboardService {
	return &DashboardService{posts: posts, users: users, stats: stats}
}

// Overview recomputes the aggregates from the live collections: total member
// count, published post count, and the sum of views across published posts.
func (s *DashboardService) Overview(ctx context.Context) (*models.DashboardStats, error) {
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	var totalViews int64
	for _, p := range posts {
		totalViews += p.Views
	}

	return &models.DashboardStats{
		ID:         models.StatsDocID,
		TotalUsers: userCount,
		TotalPosts: int64(len(posts)),
		TotalViews: totalViews,
		UpdatedAt:  time.Now(),
	}, nil
}

// Stored returns the persisted stats singleton, or nil when it has never
// been written.
func (s *DashboardService) Stored(ctx context.Context) (*models.DashboardStats, error) {
	return s.stats.Get(ctx)
}

// Refresh recomputes the aggregates and persists them to the singleton.
func (s *DashboardService) Refresh(ctx context.Context) (*models.DashboardStats, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	in := models.UpdateStatsInput{
		TotalUsers: &overview.TotalUsers,
		TotalPosts: &overview.TotalPosts,
		TotalViews: &overview.TotalViews,
	}
	if err := s.stats.Upsert(ctx, in); err != nil {
		return nil, err
	}
	return overview, nil
}

// UpdateStored applies a partial merge to the persisted singleton without
// recomputing. Used by the admin stats endpoint.
func (s *DashboardService) UpdateStored(ctx context.Context, in models.UpdateStatsInput) (*models.DashboardStats, error) {
	if err := s.stats.Upsert(ctx, in); err != nil {
		return nil, err
	}
	return s.stats.Get(ctx)
}
