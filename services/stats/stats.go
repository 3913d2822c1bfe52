package stats

import (
	"context"

	"tourhub/database/repository"
	"tourhub/models"
	"tourhub/utils"
)

// Aggregator computes the admin dashboard figures. It never writes.
type Aggregator interface {
	Compute(ctx context.Context) (*models.AdminStats, error)
}

type StoreAggregator struct {
	Repos *repository.Repositories
}

func NewAggregator(repos *repository.Repositories) *StoreAggregator {
	return &StoreAggregator{Repos: repos}
}

func (a *StoreAggregator) Compute(ctx context.Context) (*models.AdminStats, error) {
	var (
		out models.AdminStats
		err error
	)
	if out.TotalPayment, err = a.Repos.Bookings.SumTotalPrice(ctx); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	if out.TotalGuides, err = a.Repos.Users.CountByRole(ctx, models.RoleGuide); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	if out.TotalClients, err = a.Repos.Users.CountByRole(ctx, models.RoleTourist); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	if out.TotalUsers, err = a.Repos.Users.CountByRole(ctx, models.RoleUser); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	if out.TotalPackages, err = a.Repos.Packages.Count(ctx); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	if out.TotalStories, err = a.Repos.Stories.Count(ctx); err != nil {
		return nil, utils.Internal("failed to compute stats", err)
	}
	return &out, nil
}
