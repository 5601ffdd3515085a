package postgres

import (
	"context"

	"jobsite-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type dashboardRepo struct {
	db *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) domain.DashboardRepository {
	return &dashboardRepo{db: db}
}

// RecruiterStats aggregates the recruiter's activity in a single query.
// Only ACTIVE rows count towards the totals.
func (r *dashboardRepo) RecruiterStats(ctx context.Context, recruiterID int64) (*domain.RecruiterStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM jobs
				WHERE recruiter_id = $1 AND job_status = $2 AND status = $5),
			(SELECT COUNT(*) FROM jobs
				WHERE recruiter_id = $1 AND job_status = $3 AND status = $5),
			(SELECT COUNT(*) FROM job_applications a JOIN jobs j ON a.job_id = j.id
				WHERE j.recruiter_id = $1 AND a.status = $5),
			(SELECT COUNT(*) FROM job_applications a JOIN jobs j ON a.job_id = j.id
				WHERE j.recruiter_id = $1 AND a.application_status = $4 AND a.status = $5),
			(SELECT COUNT(*) FROM job_applications a JOIN jobs j ON a.job_id = j.id
				WHERE j.recruiter_id = $1 AND a.application_status = $6 AND a.status = $5)`

	var stats domain.RecruiterStats
	err := r.db.QueryRow(ctx, query,
		recruiterID,
		domain.JobStatusPublished,
		domain.JobStatusClosed,
		domain.ApplicationStatusAccepted,
		domain.RecordStatusActive,
		domain.ApplicationStatusRejected,
	).Scan(
		&stats.TotalPublishedJobs,
		&stats.TotalClosedJobs,
		&stats.TotalCandidateApplications,
		&stats.TotalCandidatesHired,
		&stats.TotalCandidatesRejected,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
