package usecase

import (
	"context"

	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"
)

type dashboardUsecase struct {
	dashRepo domain.DashboardRepository
}

func NewDashboardUsecase(dashRepo domain.DashboardRepository) domain.DashboardUsecase {
	return &dashboardUsecase{dashRepo: dashRepo}
}

func (u *dashboardUsecase) RecruiterDashboard(ctx context.Context, actor *domain.User) (*domain.RecruiterStats, error) {
	if !actor.IsRecruiter() {
		return nil, apperror.Forbidden("Only recruiters can access the dashboard")
	}
	stats, err := u.dashRepo.RecruiterStats(ctx, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}
