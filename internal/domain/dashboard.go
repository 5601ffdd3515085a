package domain

import "context"

// RecruiterStats aggregates a recruiter's activity for the dashboard.
// Counts cover ACTIVE rows only.
type RecruiterStats struct {
	TotalPublishedJobs         int64 `json:"total_published_jobs"`
	TotalClosedJobs            int64 `json:"total_closed_jobs"`
	TotalCandidateApplications int64 `json:"total_candidate_applications"`
	TotalCandidatesHired       int64 `json:"total_candidates_hired"`
	TotalCandidatesRejected    int64 `json:"total_candidates_rejected"`
}

type DashboardRepository interface {
	RecruiterStats(ctx context.Context, recruiterID int64) (*RecruiterStats, error)
}

type DashboardUsecase interface {
	RecruiterDashboard(ctx context.Context, actor *User) (*RecruiterStats, error)
}
