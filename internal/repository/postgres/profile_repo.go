package postgres

import (
	"context"
	"errors"

	"jobsite-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	query := `SELECT id, uid, user_id, photo_url, bio, date_of_birth, gender, address, city, country, resume_url, skills, experience_years, created_at, updated_at
              FROM user_profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UID, &p.UserID, &p.PhotoURL, &p.Bio, &p.DateOfBirth,
		&p.Gender, &p.Address, &p.City, &p.Country, &p.ResumeURL,
		&p.Skills, &p.ExperienceYears, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE user_profiles SET
		photo_url = $2,
		bio = $3,
		date_of_birth = $4,
		gender = $5,
		address = $6,
		city = $7,
		country = $8,
		resume_url = $9,
		skills = $10,
		experience_years = $11,
		updated_at = $12
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		profile.ID, profile.PhotoURL, profile.Bio, profile.DateOfBirth,
		profile.Gender, profile.Address, profile.City, profile.Country,
		profile.ResumeURL, profile.Skills, profile.ExperienceYears,
		profile.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
