package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/bloodconnect/internal/config"
	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

// Dashboard summarises the registry for the landing page.
type Dashboard struct {
	TotalDonors     int
	PendingRequests int
	RecentRequests  []domain.BloodRequest
}

// DashboardService builds the landing page summary.
type DashboardService struct {
	donors   repository.DonorProfileRepository
	requests repository.BloodRequestRepository
	listing  config.ListingConfig
}

// NewDashboardService constructs the service.
func NewDashboardService(donors repository.DonorProfileRepository, requests repository.BloodRequestRepository, listing config.ListingConfig) *DashboardService {
	return &DashboardService{donors: donors, requests: requests, listing: listing}
}

// Summary returns donor and pending counts plus the most recent pending requests.
func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	limit := s.listing.RecentLimit
	if limit <= 0 {
		limit = 6
	}

	var summary Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		count, err := s.donors.Count(gctx)
		summary.TotalDonors = count
		return err
	})
	g.Go(func() error {
		count, err := s.requests.CountPending(gctx)
		summary.PendingRequests = count
		return err
	})
	g.Go(func() error {
		recent, err := s.requests.ListPending(gctx, repository.BloodRequestFilter{Limit: limit})
		summary.RecentRequests = recent
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &summary, nil
}
