package postgres

import (
	"context"
	"errors"
	"fmt"

	"jobsite-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationSelect = `
	SELECT
		a.id, a.uid, a.job_id, a.candidate_id, a.cover_letter, a.resume_url,
		a.application_status, a.recruiter_notes, a.interview_scheduled_at,
		a.status, a.created_at, a.updated_at,
		j.job_code, j.title AS job_title, j.recruiter_id,
		TRIM(c.first_name || ' ' || c.last_name) AS candidate_name,
		c.email AS candidate_email,
		TRIM(r.first_name || ' ' || r.last_name) AS recruiter_name
	FROM job_applications a
	JOIN jobs j ON a.job_id = j.id
	JOIN users c ON a.candidate_id = c.id
	JOIN users r ON j.recruiter_id = r.id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID, &a.UID, &a.JobID, &a.CandidateID, &a.CoverLetter, &a.ResumeURL,
		&a.ApplicationStatus, &a.RecruiterNotes, &a.InterviewScheduledAt,
		&a.RecordStatus, &a.CreatedAt, &a.UpdatedAt,
		&a.JobCode, &a.JobTitle, &a.JobRecruiterID,
		&a.CandidateName, &a.CandidateEmail, &a.RecruiterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts the application and increments the parent job's counter
// in the same transaction. The (job_id, candidate_id) unique constraint
// makes a concurrent duplicate fail here rather than silently succeed.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO job_applications (uid, job_id, candidate_id, cover_letter, resume_url, application_status, recruiter_notes, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err = tx.QueryRow(ctx, query,
		app.UID, app.JobID, app.CandidateID, app.CoverLetter, app.ResumeURL,
		app.ApplicationStatus, app.RecruiterNotes, app.RecordStatus,
		app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return err
	}

	// Atomic increment; no read-modify-write.
	_, err = tx.Exec(ctx,
		`UPDATE jobs SET total_applications = total_applications + 1, updated_at = NOW() WHERE id = $1`,
		app.JobID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *applicationRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*domain.Application, error) {
	query := applicationSelect + ` WHERE a.uid = $1`
	return scanApplication(r.db.QueryRow(ctx, query, uid))
}

func (r *applicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	where := fmt.Sprintf(" WHERE a.status = '%s'", domain.RecordStatusActive)
	var args []any
	if filter.CandidateID != nil {
		args = append(args, *filter.CandidateID)
		where += fmt.Sprintf(" AND a.candidate_id = $%d", len(args))
	}
	if filter.JobRecruiterID != nil {
		args = append(args, *filter.JobRecruiterID)
		where += fmt.Sprintf(" AND j.recruiter_id = $%d", len(args))
	}
	if filter.JobID != nil {
		args = append(args, *filter.JobID)
		where += fmt.Sprintf(" AND a.job_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND a.application_status = $%d", len(args))
	}

	countQuery := `SELECT COUNT(*) FROM job_applications a JOIN jobs j ON a.job_id = j.id` + where
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	limitClause := fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	limitClause += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, applicationSelect+where+limitClause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.UID, &a.JobID, &a.CandidateID, &a.CoverLetter, &a.ResumeURL,
			&a.ApplicationStatus, &a.RecruiterNotes, &a.InterviewScheduledAt,
			&a.RecordStatus, &a.CreatedAt, &a.UpdatedAt,
			&a.JobCode, &a.JobTitle, &a.JobRecruiterID,
			&a.CandidateName, &a.CandidateEmail, &a.RecruiterName,
		); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}

	return apps, total, rows.Err()
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM job_applications WHERE job_id = $1 AND candidate_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, candidateID).Scan(&exists)
	return exists, err
}

// UpdateStatus is a compare-and-swap on application_status: the row is
// only written while it still holds the status the caller read. A lost
// race leaves zero rows affected and surfaces as ErrConflict.
func (r *applicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, expected domain.ApplicationStatus) error {
	query := `UPDATE job_applications SET
		application_status = $2,
		recruiter_notes = $3,
		interview_scheduled_at = $4,
		updated_at = $5
	WHERE id = $1 AND application_status = $6`
	result, err := r.db.Exec(ctx, query,
		app.ID, app.ApplicationStatus, app.RecruiterNotes,
		app.InterviewScheduledAt, app.UpdatedAt, expected,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
