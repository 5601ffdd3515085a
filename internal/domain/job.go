package domain

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// JobStatus is the posting lifecycle state.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusClosed, JobStatusCancelled:
		return true
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "FULL_TIME"
	JobTypePartTime   JobType = "PART_TIME"
	JobTypeContract   JobType = "CONTRACT"
	JobTypeTemporary  JobType = "TEMPORARY"
	JobTypeInternship JobType = "INTERNSHIP"
	JobTypeFreelance  JobType = "FREELANCE"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeTemporary, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "ENTRY"
	ExperienceJunior    ExperienceLevel = "JUNIOR"
	ExperienceMid       ExperienceLevel = "MID"
	ExperienceSenior    ExperienceLevel = "SENIOR"
	ExperienceLead      ExperienceLevel = "LEAD"
	ExperienceExecutive ExperienceLevel = "EXECUTIVE"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead, ExperienceExecutive:
		return true
	}
	return false
}

const jobCodePrefix = "JOB"

// NewJobCode samples a candidate job code under the fixed prefix. Callers
// retry on collision; the unique constraint on the column is the final
// arbiter under concurrent creation.
func NewJobCode() string {
	return fmt.Sprintf("%s%06d", jobCodePrefix, rand.Intn(1000000))
}

type Job struct {
	ID              int64           `json:"-"`
	UID             uuid.UUID       `json:"uid"`
	JobCode         string          `json:"job_code"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Requirements    string          `json:"requirements,omitempty"`
	Location        string          `json:"location"`
	SalaryMin       *float64        `json:"salary_min,omitempty"`
	SalaryMax       *float64        `json:"salary_max,omitempty"`
	JobType         JobType         `json:"job_type"`
	ExperienceLevel ExperienceLevel `json:"experience_level"`
	SkillsRequired  string          `json:"skills_required,omitempty"`
	Deadline        time.Time       `json:"deadline"`
	JobStatus       JobStatus       `json:"job_status"`
	RecruiterID     int64           `json:"-"`
	TotalApplications int           `json:"total_applications"`
	RecordStatus    RecordStatus    `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Joined data for responses
	RecruiterName  string `json:"recruiter_name,omitempty"`
	RecruiterEmail string `json:"recruiter_email,omitempty"`
}

// IsActive reports whether the posting accepts applications at the given
// instant: published, deadline still ahead, not soft-deleted.
func (j *Job) IsActive(now time.Time) bool {
	return j.JobStatus == JobStatusPublished &&
		j.Deadline.After(now) &&
		j.RecordStatus == RecordStatusActive
}

// IsExpired reports whether the deadline has passed.
func (j *Job) IsExpired(now time.Time) bool {
	return !j.Deadline.After(now)
}

// SkillsList parses the comma-separated required skills.
func (j *Job) SkillsList() []string {
	return SplitSkills(j.SkillsRequired)
}

// SalaryRange renders the salary bounds for display, e.g.
// "$50,000 - $80,000".
func (j *Job) SalaryRange() string {
	switch {
	case j.SalaryMin != nil && j.SalaryMax != nil:
		return fmt.Sprintf("$%s - $%s", formatThousands(*j.SalaryMin), formatThousands(*j.SalaryMax))
	case j.SalaryMin != nil:
		return fmt.Sprintf("From $%s", formatThousands(*j.SalaryMin))
	case j.SalaryMax != nil:
		return fmt.Sprintf("Up to $%s", formatThousands(*j.SalaryMax))
	}
	return "Salary not specified"
}

// formatThousands renders a non-negative amount with comma grouping and
// no decimals.
func formatThousands(v float64) string {
	n := int64(v + 0.5)
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	var parts []string
	for n >= 1000 {
		parts = append([]string{fmt.Sprintf("%03d", n%1000)}, parts...)
		n /= 1000
	}
	out := fmt.Sprintf("%d", n)
	for _, p := range parts {
		out += "," + p
	}
	return out
}

// JobFilter narrows Fetch results. The usecase layer fills the
// role-scoping fields; the optional fields come from the caller.
type JobFilter struct {
	RecruiterID     *int64
	OnlyActive      bool
	JobStatus       *JobStatus
	Location        *string
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
}

type JobRepository interface {
	// Create persists the job. Returns ErrDuplicate when the job code is
	// already taken.
	Create(ctx context.Context, job *Job) error
	GetByCode(ctx context.Context, code string) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	SoftDelete(ctx context.Context, id int64) error
}

type JobCreateInput struct {
	Title           string
	Description     string
	Requirements    string
	Location        string
	SalaryMin       *float64
	SalaryMax       *float64
	JobType         JobType
	ExperienceLevel ExperienceLevel
	SkillsRequired  string
	Deadline        time.Time
	JobStatus       JobStatus
}

type JobUpdateInput struct {
	Title           *string
	Description     *string
	Requirements    *string
	Location        *string
	SalaryMin       *float64
	SalaryMax       *float64
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
	SkillsRequired  *string
	Deadline        *time.Time
	JobStatus       *JobStatus
}

type JobListFilter struct {
	JobStatus       *JobStatus
	Location        *string
	JobType         *JobType
	ExperienceLevel *ExperienceLevel
}

type JobUsecase interface {
	CreateJob(ctx context.Context, actor *User, in JobCreateInput) (*Job, error)
	GetJob(ctx context.Context, actor *User, code string) (*Job, error)
	ListJobs(ctx context.Context, actor *User, filter JobListFilter, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, actor *User, code string, in JobUpdateInput) (*Job, error)
	DeleteJob(ctx context.Context, actor *User, code string) error
	Apply(ctx context.Context, actor *User, code string, coverLetter, resumeURL string) (*Application, error)
}
