package usecase

import (
	"context"
	"errors"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo}
}

func (u *profileUsecase) GetProfile(ctx context.Context, user *domain.User) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, user *domain.User, in domain.ProfileUpdateInput) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}

	if in.Gender != nil && !in.Gender.Valid() {
		return nil, apperror.BadRequest("Invalid gender value")
	}
	if in.ExperienceYears != nil && *in.ExperienceYears < 0 {
		return nil, apperror.BadRequest("Experience years cannot be negative")
	}

	if in.PhotoURL != nil {
		profile.PhotoURL = *in.PhotoURL
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.DateOfBirth != nil {
		profile.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		profile.Gender = *in.Gender
	}
	if in.Address != nil {
		profile.Address = *in.Address
	}
	if in.City != nil {
		profile.City = *in.City
	}
	if in.Country != nil {
		profile.Country = *in.Country
	}
	if in.ResumeURL != nil {
		profile.ResumeURL = *in.ResumeURL
	}
	if in.Skills != nil {
		profile.Skills = *in.Skills
	}
	if in.ExperienceYears != nil {
		profile.ExperienceYears = in.ExperienceYears
	}
	profile.UpdatedAt = time.Now()

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}
