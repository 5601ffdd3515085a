package usecase

import (
	"context"
	"errors"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository) domain.ApplicationUsecase {
	return &applicationUsecase{appRepo: appRepo}
}

func (u *applicationUsecase) ListApplications(ctx context.Context, actor *domain.User, filter domain.ApplicationFilter, page, pageSize int) ([]domain.Application, int64, error) {
	// Role scoping overrides whatever the caller put in the filter:
	// candidates see their own applications, recruiters see applications
	// to their own jobs.
	switch {
	case actor.IsCandidate():
		id := actor.ID
		filter.CandidateID = &id
		filter.JobRecruiterID = nil
	case actor.IsRecruiter():
		id := actor.ID
		filter.JobRecruiterID = &id
		filter.CandidateID = nil
	default:
		return nil, 0, apperror.Forbidden("Access denied")
	}

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, apperror.BadRequest("Invalid application status")
	}

	limit, offset := pageWindow(page, pageSize)
	apps, total, err := u.appRepo.Fetch(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return apps, total, nil
}

func (u *applicationUsecase) GetApplication(ctx context.Context, actor *domain.User, uid uuid.UUID) (*domain.Application, error) {
	app, err := u.getVisible(ctx, actor, uid)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (u *applicationUsecase) UpdateStatus(ctx context.Context, actor *domain.User, uid uuid.UUID, in domain.ApplicationStatusInput) (*domain.Application, error) {
	if !actor.IsRecruiter() {
		return nil, apperror.Forbidden("Only recruiters can update application status")
	}

	app, err := u.getVisible(ctx, actor, uid)
	if err != nil {
		return nil, err
	}

	if !in.Status.RecruiterAssignable() {
		return nil, apperror.BadRequest("Invalid application status")
	}
	if !app.CanTransitionTo(in.Status) {
		return nil, apperror.Conflict("Application is in a final state and cannot be updated")
	}
	if in.Status == domain.ApplicationStatusInterviewScheduled && in.InterviewAt == nil {
		return nil, apperror.BadRequest("Interview date is required when scheduling an interview")
	}

	prev := app.ApplicationStatus
	app.ApplicationStatus = in.Status
	if in.RecruiterNotes != nil {
		app.RecruiterNotes = *in.RecruiterNotes
	}
	if in.InterviewAt != nil {
		app.InterviewScheduledAt = in.InterviewAt
	}
	app.UpdatedAt = time.Now()

	if err := u.appRepo.UpdateStatus(ctx, app, prev); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("Application was modified concurrently, please retry")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

func (u *applicationUsecase) Withdraw(ctx context.Context, actor *domain.User, uid uuid.UUID) error {
	if !actor.IsCandidate() {
		return apperror.Forbidden("Only candidates can withdraw applications")
	}

	app, err := u.getVisible(ctx, actor, uid)
	if err != nil {
		return err
	}
	if app.ApplicationStatus.Terminal() {
		return apperror.Conflict("Application is in a final state and cannot be withdrawn")
	}

	prev := app.ApplicationStatus
	app.ApplicationStatus = domain.ApplicationStatusWithdrawn
	app.UpdatedAt = time.Now()
	if err := u.appRepo.UpdateStatus(ctx, app, prev); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return apperror.Conflict("Application was modified concurrently, please retry")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// getVisible loads the application and enforces visibility. A hidden
// application reads as not found rather than forbidden.
func (u *applicationUsecase) getVisible(ctx context.Context, actor *domain.User, uid uuid.UUID) (*domain.Application, error) {
	app, err := u.appRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	visible := (actor.IsCandidate() && app.CandidateID == actor.ID) ||
		(actor.IsRecruiter() && app.JobRecruiterID == actor.ID)
	if !visible {
		return nil, apperror.NotFound("Application not found")
	}
	return app, nil
}
