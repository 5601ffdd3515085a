package postgres

import (
	"context"
	"errors"
	"fmt"

	"jobsite-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

const jobSelect = `
	SELECT
		j.id, j.uid, j.job_code, j.title, j.description, j.requirements,
		j.location, j.salary_min, j.salary_max, j.job_type, j.experience_level,
		j.skills_required, j.deadline, j.job_status, j.recruiter_id,
		j.total_applications, j.status, j.created_at, j.updated_at,
		TRIM(u.first_name || ' ' || u.last_name) AS recruiter_name,
		u.email AS recruiter_email
	FROM jobs j
	JOIN users u ON j.recruiter_id = u.id`

func scanJob(row pgx.Row) (*domain.Job, error) {
	var j domain.Job
	err := row.Scan(
		&j.ID, &j.UID, &j.JobCode, &j.Title, &j.Description, &j.Requirements,
		&j.Location, &j.SalaryMin, &j.SalaryMax, &j.JobType, &j.ExperienceLevel,
		&j.SkillsRequired, &j.Deadline, &j.JobStatus, &j.RecruiterID,
		&j.TotalApplications, &j.RecordStatus, &j.CreatedAt, &j.UpdatedAt,
		&j.RecruiterName, &j.RecruiterEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (uid, job_code, title, description, requirements, location, salary_min, salary_max, job_type, experience_level, skills_required, deadline, job_status, recruiter_id, total_applications, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.UID, job.JobCode, job.Title, job.Description, job.Requirements,
		job.Location, job.SalaryMin, job.SalaryMax, job.JobType,
		job.ExperienceLevel, job.SkillsRequired, job.Deadline, job.JobStatus,
		job.RecruiterID, job.TotalApplications, job.RecordStatus,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByCode never returns soft-deleted rows; a deleted job reads as
// absent everywhere downstream.
func (r *jobRepo) GetByCode(ctx context.Context, code string) (*domain.Job, error) {
	query := jobSelect + ` WHERE j.job_code = $1 AND j.status = $2`
	return scanJob(r.db.QueryRow(ctx, query, code, domain.RecordStatusActive))
}

// jobFilterClause renders the WHERE conditions for a filter, appending
// bind args to args.
func jobFilterClause(filter domain.JobFilter, args []any) (string, []any) {
	where := " WHERE 1=1"
	if filter.RecruiterID != nil {
		args = append(args, *filter.RecruiterID)
		where += fmt.Sprintf(" AND j.recruiter_id = $%d", len(args))
	}
	if filter.OnlyActive {
		where += fmt.Sprintf(" AND j.job_status = '%s' AND j.deadline > NOW() AND j.status = '%s'",
			domain.JobStatusPublished, domain.RecordStatusActive)
	} else {
		where += fmt.Sprintf(" AND j.status = '%s'", domain.RecordStatusActive)
	}
	if filter.JobStatus != nil {
		args = append(args, *filter.JobStatus)
		where += fmt.Sprintf(" AND j.job_status = $%d", len(args))
	}
	if filter.Location != nil {
		args = append(args, *filter.Location)
		where += fmt.Sprintf(" AND j.location ILIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.JobType != nil {
		args = append(args, *filter.JobType)
		where += fmt.Sprintf(" AND j.job_type = $%d", len(args))
	}
	if filter.ExperienceLevel != nil {
		args = append(args, *filter.ExperienceLevel)
		where += fmt.Sprintf(" AND j.experience_level = $%d", len(args))
	}
	return where, args
}

func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	where, args := jobFilterClause(filter, nil)

	countQuery := `SELECT COUNT(*) FROM jobs j` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	limitClause := fmt.Sprintf(" ORDER BY j.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	limitClause += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, jobSelect+where+limitClause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		if err := rows.Scan(
			&j.ID, &j.UID, &j.JobCode, &j.Title, &j.Description, &j.Requirements,
			&j.Location, &j.SalaryMin, &j.SalaryMax, &j.JobType, &j.ExperienceLevel,
			&j.SkillsRequired, &j.Deadline, &j.JobStatus, &j.RecruiterID,
			&j.TotalApplications, &j.RecordStatus, &j.CreatedAt, &j.UpdatedAt,
			&j.RecruiterName, &j.RecruiterEmail,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, j)
	}

	return jobs, total, rows.Err()
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		requirements = $4,
		location = $5,
		salary_min = $6,
		salary_max = $7,
		job_type = $8,
		experience_level = $9,
		skills_required = $10,
		deadline = $11,
		job_status = $12,
		updated_at = $13
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements, job.Location,
		job.SalaryMin, job.SalaryMax, job.JobType, job.ExperienceLevel,
		job.SkillsRequired, job.Deadline, job.JobStatus, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marks the job inactive; the row is kept.
func (r *jobRepo) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, domain.RecordStatusInactive)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
