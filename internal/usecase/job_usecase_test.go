package usecase_test

import (
	"context"
	"testing"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/internal/usecase"
	"jobsite-backend/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func recruiter(id int64) *domain.User {
	return &domain.User{
		ID:           id,
		UID:          uuid.New(),
		Email:        "recruiter@example.com",
		FirstName:    "Rita",
		LastName:     "Recruiter",
		Role:         domain.RoleRecruiter,
		RecordStatus: domain.RecordStatusActive,
	}
}

func candidate(id int64) *domain.User {
	return &domain.User{
		ID:           id,
		UID:          uuid.New(),
		Email:        "candidate@example.com",
		FirstName:    "Carl",
		LastName:     "Candidate",
		Role:         domain.RoleCandidate,
		RecordStatus: domain.RecordStatusActive,
	}
}

func validJobInput() domain.JobCreateInput {
	return domain.JobCreateInput{
		Title:           "Backend Engineer",
		Description:     "Build APIs",
		Location:        "Jakarta",
		JobType:         domain.JobTypeFullTime,
		ExperienceLevel: domain.ExperienceMid,
		Deadline:        time.Now().Add(30 * 24 * time.Hour),
	}
}

func activeJob(recruiterID int64) *domain.Job {
	return &domain.Job{
		ID:              42,
		UID:             uuid.New(),
		JobCode:         "JOB123456",
		Title:           "Backend Engineer",
		Description:     "Build APIs",
		Location:        "Jakarta",
		JobType:         domain.JobTypeFullTime,
		ExperienceLevel: domain.ExperienceMid,
		Deadline:        time.Now().Add(30 * 24 * time.Hour),
		JobStatus:       domain.JobStatusPublished,
		RecruiterID:     recruiterID,
		RecordStatus:    domain.RecordStatusActive,
		RecruiterEmail:  "recruiter@example.com",
	}
}

func TestCreateJob(t *testing.T) {
	t.Run("Should fail for candidates", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockApplicationRepo), new(MockMailer))
		_, err := uc.CreateJob(context.Background(), candidate(1), validJobInput())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only recruiters")
	})

	t.Run("Should fail on past deadline", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockApplicationRepo), new(MockMailer))
		in := validJobInput()
		in.Deadline = time.Now().Add(-time.Hour)
		_, err := uc.CreateJob(context.Background(), recruiter(1), in)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "future")
	})

	t.Run("Should fail when salary bounds are inverted", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockApplicationRepo), new(MockMailer))
		in := validJobInput()
		lo, hi := 90000.0, 50000.0
		in.SalaryMin = &lo
		in.SalaryMax = &hi
		_, err := uc.CreateJob(context.Background(), recruiter(1), in)
		assert.Error(t, err)
	})

	t.Run("Should default status to PUBLISHED and assign a code", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		jobRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(context.Background(), recruiter(1), validJobInput())
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusPublished, job.JobStatus)
		assert.Regexp(t, `^JOB\d{6}$`, job.JobCode)
	})

	t.Run("Should retry the code on collision", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		jobRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate).Once()
		jobRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := uc.CreateJob(context.Background(), recruiter(1), validJobInput())
		assert.NoError(t, err)
		jobRepo.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("Exhausted code retries map to conflict", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		jobRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.CreateJob(context.Background(), recruiter(1), validJobInput())
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 409, appErr.Code)
		jobRepo.AssertNumberOfCalls(t, "Create", 5)
	})
}

func TestJobOwnership(t *testing.T) {
	t.Run("Update by non-owner is forbidden", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(activeJob(1), nil)

		title := "Hijacked"
		_, err := uc.UpdateJob(context.Background(), recruiter(2), "JOB123456", domain.JobUpdateInput{Title: &title})
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Delete by owner soft-deletes", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(activeJob(1), nil)
		jobRepo.On("SoftDelete", mock.Anything, int64(42)).Return(nil)

		assert.NoError(t, uc.DeleteJob(context.Background(), recruiter(1), "JOB123456"))
		jobRepo.AssertCalled(t, "SoftDelete", mock.Anything, int64(42))
	})

	t.Run("Draft job is hidden from other users", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		draft := activeJob(1)
		draft.JobStatus = domain.JobStatusDraft
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(draft, nil)

		_, err := uc.GetJob(context.Background(), candidate(5), "JOB123456")
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestGetJobVisibility(t *testing.T) {
	assertNotFound := func(t *testing.T, err error) {
		t.Helper()
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 404, appErr.Code)
	}

	t.Run("Soft-deleted job reads as not found for everyone", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		deleted := activeJob(1)
		deleted.RecordStatus = domain.RecordStatusInactive
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(deleted, nil)

		_, err := uc.GetJob(context.Background(), candidate(5), "JOB123456")
		assertNotFound(t, err)

		// Even the owner cannot read a posting they deleted.
		_, err = uc.GetJob(context.Background(), recruiter(1), "JOB123456")
		assertNotFound(t, err)
	})

	t.Run("Expired posting is hidden from candidates", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		expired := activeJob(1)
		expired.Deadline = time.Now().Add(-24 * time.Hour)
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(expired, nil)

		_, err := uc.GetJob(context.Background(), candidate(5), "JOB123456")
		assertNotFound(t, err)
	})

	t.Run("Owner still sees an expired posting", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		expired := activeJob(1)
		expired.Deadline = time.Now().Add(-24 * time.Hour)
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(expired, nil)

		job, err := uc.GetJob(context.Background(), recruiter(1), "JOB123456")
		assert.NoError(t, err)
		assert.Equal(t, "JOB123456", job.JobCode)
	})
}

func TestListJobsScoping(t *testing.T) {
	t.Run("Recruiters list their own jobs in all states", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))

		jobRepo.On("Fetch", mock.Anything, mock.MatchedBy(func(f domain.JobFilter) bool {
			return f.RecruiterID != nil && *f.RecruiterID == int64(1) && !f.OnlyActive
		}), 10, 0).Return([]domain.Job{}, int64(0), nil)

		_, _, err := uc.ListJobs(context.Background(), recruiter(1), domain.JobListFilter{}, 1, 10)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})

	t.Run("Candidates only see active postings", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))

		jobRepo.On("Fetch", mock.Anything, mock.MatchedBy(func(f domain.JobFilter) bool {
			return f.RecruiterID == nil && f.OnlyActive
		}), 10, 0).Return([]domain.Job{}, int64(0), nil)

		_, _, err := uc.ListJobs(context.Background(), candidate(5), domain.JobListFilter{}, 1, 10)
		assert.NoError(t, err)
		jobRepo.AssertExpectations(t)
	})
}

func TestApply(t *testing.T) {
	t.Run("Should fail for recruiters", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), new(MockApplicationRepo), new(MockMailer))
		_, err := uc.Apply(context.Background(), recruiter(1), "JOB123456", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only candidates")
	})

	t.Run("Should fail on an expired posting", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(jobRepo, new(MockApplicationRepo), new(MockMailer))
		expired := activeJob(1)
		expired.Deadline = time.Now().Add(-time.Hour)
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(expired, nil)

		_, err := uc.Apply(context.Background(), candidate(5), "JOB123456", "", "")
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should reject a second application", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockMailer))
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(activeJob(1), nil)
		appRepo.On("Exists", mock.Anything, int64(42), int64(5)).Return(true, nil)

		_, err := uc.Apply(context.Background(), candidate(5), "JOB123456", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should map a concurrent duplicate insert to conflict", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, new(MockMailer))
		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(activeJob(1), nil)
		appRepo.On("Exists", mock.Anything, int64(42), int64(5)).Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		_, err := uc.Apply(context.Background(), candidate(5), "JOB123456", "", "")
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should create pending application and notify both parties", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		mailer := new(MockMailer)
		uc := usecase.NewJobUsecase(jobRepo, appRepo, mailer)

		jobRepo.On("GetByCode", mock.Anything, "JOB123456").Return(activeJob(1), nil)
		appRepo.On("Exists", mock.Anything, int64(42), int64(5)).Return(false, nil)
		appRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)
		mailer.On("SendNewApplication", "recruiter@example.com", "Backend Engineer", "Carl Candidate").Return(nil)
		mailer.On("SendApplicationReceived", "candidate@example.com", "Carl Candidate", "Backend Engineer").Return(nil)

		app, err := uc.Apply(context.Background(), candidate(5), "JOB123456", "I am keen", "https://cv.example.com/carl.pdf")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.ApplicationStatus)
		mailer.AssertExpectations(t)
	})
}
