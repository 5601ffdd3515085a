package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the workflow state of a job application.
type ApplicationStatus string

const (
	ApplicationStatusPending            ApplicationStatus = "PENDING"
	ApplicationStatusReviewing          ApplicationStatus = "REVIEWING"
	ApplicationStatusShortlisted        ApplicationStatus = "SHORTLISTED"
	ApplicationStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationStatusAccepted           ApplicationStatus = "ACCEPTED"
	ApplicationStatusRejected           ApplicationStatus = "REJECTED"
	ApplicationStatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewing, ApplicationStatusShortlisted,
		ApplicationStatusInterviewScheduled, ApplicationStatusAccepted, ApplicationStatusRejected,
		ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case ApplicationStatusAccepted, ApplicationStatusRejected, ApplicationStatusWithdrawn:
		return true
	}
	return false
}

// RecruiterAssignable reports whether a recruiter may set this status.
// WITHDRAWN is reserved to the candidate; PENDING only occurs on creation.
func (s ApplicationStatus) RecruiterAssignable() bool {
	switch s {
	case ApplicationStatusReviewing, ApplicationStatusShortlisted,
		ApplicationStatusInterviewScheduled, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

type Application struct {
	ID                  int64             `json:"-"`
	UID                 uuid.UUID         `json:"uid"`
	JobID               int64             `json:"-"`
	CandidateID         int64             `json:"-"`
	CoverLetter         string            `json:"cover_letter,omitempty"`
	ResumeURL           string            `json:"resume,omitempty"`
	ApplicationStatus   ApplicationStatus `json:"application_status"`
	RecruiterNotes      string            `json:"recruiter_notes,omitempty"`
	InterviewScheduledAt *time.Time       `json:"interview_scheduled_at,omitempty"`
	RecordStatus        RecordStatus      `json:"-"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`

	// Joined data for responses
	JobCode        string `json:"job_code,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	JobRecruiterID int64  `json:"-"`
	CandidateName  string `json:"candidate_name,omitempty"`
	CandidateEmail string `json:"-"`
	RecruiterName  string `json:"recruiter_name,omitempty"`
}

// CanTransitionTo checks the status workflow: any non-terminal state may
// advance to a recruiter-assignable state or be withdrawn; terminal
// states accept nothing.
func (a *Application) CanTransitionTo(next ApplicationStatus) bool {
	if a.ApplicationStatus.Terminal() {
		return false
	}
	if next == ApplicationStatusWithdrawn {
		return true
	}
	return next.RecruiterAssignable()
}

func (a *Application) IsPending() bool {
	return a.ApplicationStatus == ApplicationStatusPending
}

// ApplicationFilter narrows Fetch results. Role-scoping fields are set by
// the usecase layer, the optional ones by the caller.
type ApplicationFilter struct {
	CandidateID    *int64
	JobRecruiterID *int64
	JobID          *int64
	Status         *ApplicationStatus
}

type ApplicationRepository interface {
	// Create inserts the application and atomically increments the parent
	// job's total_applications counter in one transaction. Returns
	// ErrDuplicate when the candidate already applied to the job.
	Create(ctx context.Context, app *Application) error
	GetByUID(ctx context.Context, uid uuid.UUID) (*Application, error)
	Fetch(ctx context.Context, filter ApplicationFilter, limit, offset int) ([]Application, int64, error)
	Exists(ctx context.Context, jobID, candidateID int64) (bool, error)
	// UpdateStatus persists app's workflow fields only if the stored row
	// is still in the expected status. Returns ErrConflict when another
	// update won the race.
	UpdateStatus(ctx context.Context, app *Application, expected ApplicationStatus) error
}

type ApplicationStatusInput struct {
	Status         ApplicationStatus
	RecruiterNotes *string
	InterviewAt    *time.Time
}

type ApplicationUsecase interface {
	ListApplications(ctx context.Context, actor *User, filter ApplicationFilter, page, pageSize int) ([]Application, int64, error)
	GetApplication(ctx context.Context, actor *User, uid uuid.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, actor *User, uid uuid.UUID, in ApplicationStatusInput) (*Application, error)
	Withdraw(ctx context.Context, actor *User, uid uuid.UUID) error
}
