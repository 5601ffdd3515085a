package usecase

import (
	"context"
	"errors"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"
	"jobsite-backend/pkg/logger"

	"github.com/google/uuid"
)

// jobCodeRetries bounds the collision retry loop on job creation. With a
// six digit code space collisions are rare until the table is very large.
const jobCodeRetries = 5

type jobUsecase struct {
	jobRepo domain.JobRepository
	appRepo domain.ApplicationRepository
	mailer  domain.Mailer
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	appRepo domain.ApplicationRepository,
	mailer domain.Mailer,
) domain.JobUsecase {
	return &jobUsecase{
		jobRepo: jobRepo,
		appRepo: appRepo,
		mailer:  mailer,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, actor *domain.User, in domain.JobCreateInput) (*domain.Job, error) {
	if !actor.IsRecruiter() {
		return nil, apperror.Forbidden("Only recruiters can create jobs")
	}
	if !in.JobType.Valid() {
		return nil, apperror.BadRequest("Invalid job type")
	}
	if !in.ExperienceLevel.Valid() {
		return nil, apperror.BadRequest("Invalid experience level")
	}
	if !in.Deadline.After(time.Now()) {
		return nil, apperror.BadRequest("Deadline must be in the future")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return nil, apperror.BadRequest("Minimum salary cannot exceed maximum salary")
	}

	status := in.JobStatus
	if status == "" {
		status = domain.JobStatusPublished
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid job status")
	}

	now := time.Now()
	job := &domain.Job{
		UID:             uuid.New(),
		Title:           in.Title,
		Description:     in.Description,
		Requirements:    in.Requirements,
		Location:        in.Location,
		SalaryMin:       in.SalaryMin,
		SalaryMax:       in.SalaryMax,
		JobType:         in.JobType,
		ExperienceLevel: in.ExperienceLevel,
		SkillsRequired:  in.SkillsRequired,
		Deadline:        in.Deadline,
		JobStatus:       status,
		RecruiterID:     actor.ID,
		RecordStatus:    domain.RecordStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Regenerate the code on collision; the unique constraint decides.
	var err error
	for i := 0; i < jobCodeRetries; i++ {
		job.JobCode = domain.NewJobCode()
		err = u.jobRepo.Create(ctx, job)
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Could not allocate a unique job code, please retry")
		}
		return nil, apperror.Internal(err)
	}

	job.RecruiterName = actor.FullName()
	job.RecruiterEmail = actor.Email
	return job, nil
}

func (u *jobUsecase) GetJob(ctx context.Context, actor *domain.User, code string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !u.canView(actor, job, time.Now()) {
		return nil, apperror.NotFound("Job not found")
	}
	return job, nil
}

// canView enforces detail visibility: soft-deleted postings are hidden
// from everyone, and non-owners only see postings that currently accept
// applications. Mirrors the list filter.
func (u *jobUsecase) canView(actor *domain.User, job *domain.Job, now time.Time) bool {
	if job.RecordStatus != domain.RecordStatusActive {
		return false
	}
	return job.IsActive(now) || u.isOwner(actor, job)
}

func (u *jobUsecase) ListJobs(ctx context.Context, actor *domain.User, filter domain.JobListFilter, page, pageSize int) ([]domain.Job, int64, error) {
	repoFilter := domain.JobFilter{
		Location:        filter.Location,
		JobType:         filter.JobType,
		ExperienceLevel: filter.ExperienceLevel,
	}

	if actor != nil && actor.IsRecruiter() {
		// Recruiters see their own postings in every lifecycle state.
		id := actor.ID
		repoFilter.RecruiterID = &id
		repoFilter.JobStatus = filter.JobStatus
	} else {
		repoFilter.OnlyActive = true
	}

	limit, offset := pageWindow(page, pageSize)
	jobs, total, err := u.jobRepo.Fetch(ctx, repoFilter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return jobs, total, nil
}

func (u *jobUsecase) UpdateJob(ctx context.Context, actor *domain.User, code string, in domain.JobUpdateInput) (*domain.Job, error) {
	job, err := u.jobRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !u.isOwner(actor, job) {
		return nil, apperror.Forbidden("You can only modify your own jobs")
	}

	if in.Title != nil {
		job.Title = *in.Title
	}
	if in.Description != nil {
		job.Description = *in.Description
	}
	if in.Requirements != nil {
		job.Requirements = *in.Requirements
	}
	if in.Location != nil {
		job.Location = *in.Location
	}
	if in.SalaryMin != nil {
		job.SalaryMin = in.SalaryMin
	}
	if in.SalaryMax != nil {
		job.SalaryMax = in.SalaryMax
	}
	if in.JobType != nil {
		if !in.JobType.Valid() {
			return nil, apperror.BadRequest("Invalid job type")
		}
		job.JobType = *in.JobType
	}
	if in.ExperienceLevel != nil {
		if !in.ExperienceLevel.Valid() {
			return nil, apperror.BadRequest("Invalid experience level")
		}
		job.ExperienceLevel = *in.ExperienceLevel
	}
	if in.SkillsRequired != nil {
		job.SkillsRequired = *in.SkillsRequired
	}
	if in.Deadline != nil {
		if !in.Deadline.After(time.Now()) {
			return nil, apperror.BadRequest("Deadline must be in the future")
		}
		job.Deadline = *in.Deadline
	}
	if in.JobStatus != nil {
		if !in.JobStatus.Valid() {
			return nil, apperror.BadRequest("Invalid job status")
		}
		job.JobStatus = *in.JobStatus
	}
	if job.SalaryMin != nil && job.SalaryMax != nil && *job.SalaryMin > *job.SalaryMax {
		return nil, apperror.BadRequest("Minimum salary cannot exceed maximum salary")
	}
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, actor *domain.User, code string) error {
	job, err := u.jobRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if !u.isOwner(actor, job) {
		return apperror.Forbidden("You can only delete your own jobs")
	}
	if err := u.jobRepo.SoftDelete(ctx, job.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) Apply(ctx context.Context, actor *domain.User, code string, coverLetter, resumeURL string) (*domain.Application, error) {
	if !actor.IsCandidate() {
		return nil, apperror.Forbidden("Only candidates can apply to jobs")
	}

	job, err := u.jobRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if !job.IsActive(time.Now()) {
		return nil, apperror.Conflict("This job is no longer accepting applications")
	}

	// Fast path check; the unique constraint on (job_id, candidate_id)
	// still catches concurrent duplicates.
	exists, err := u.appRepo.Exists(ctx, job.ID, actor.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	now := time.Now()
	app := &domain.Application{
		UID:               uuid.New(),
		JobID:             job.ID,
		CandidateID:       actor.ID,
		CoverLetter:       coverLetter,
		ResumeURL:         resumeURL,
		ApplicationStatus: domain.ApplicationStatusPending,
		RecordStatus:      domain.RecordStatusActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, apperror.Internal(err)
	}

	app.JobCode = job.JobCode
	app.JobTitle = job.Title
	app.JobRecruiterID = job.RecruiterID
	app.CandidateName = actor.FullName()

	// Fire-and-forget notifications for both parties.
	if job.RecruiterEmail != "" {
		if err := u.mailer.SendNewApplication(job.RecruiterEmail, job.Title, actor.FullName()); err != nil {
			logger.Log.Warn("failed to notify recruiter of new application", "job_code", job.JobCode, "error", err)
		}
	}
	if err := u.mailer.SendApplicationReceived(actor.Email, actor.FullName(), job.Title); err != nil {
		logger.Log.Warn("failed to send application confirmation", "job_code", job.JobCode, "error", err)
	}

	return app, nil
}

func (u *jobUsecase) isOwner(actor *domain.User, job *domain.Job) bool {
	return actor != nil && actor.IsRecruiter() && job.RecruiterID == actor.ID
}
