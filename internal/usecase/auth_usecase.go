package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/pkg/apperror"
	"jobsite-backend/pkg/logger"
	"jobsite-backend/pkg/token"

	"github.com/google/uuid"
)

const minPasswordLength = 8

type authUsecase struct {
	userRepo    domain.UserRepository
	tokens      *token.Service
	tokenStore  domain.AuthTokenStore
	mailer      domain.Mailer
	frontendURL string
	resetTTL    time.Duration
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	tokens *token.Service,
	tokenStore domain.AuthTokenStore,
	mailer domain.Mailer,
	frontendURL string,
	resetTTL time.Duration,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		tokens:      tokens,
		tokenStore:  tokenStore,
		mailer:      mailer,
		frontendURL: frontendURL,
		resetTTL:    resetTTL,
	}
}

func (u *authUsecase) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, domain.TokenPair, error) {
	if !in.Role.Valid() {
		return nil, domain.TokenPair{}, apperror.BadRequest("Role must be RECRUITER or CANDIDATE")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.TokenPair{}, apperror.BadRequest("Password must be at least 8 characters long")
	}
	if in.Password != in.PasswordConfirm {
		return nil, domain.TokenPair{}, apperror.BadRequest("Passwords don't match")
	}

	username := in.Username
	if username == "" {
		username = in.Email
	}

	hash, err := token.HashPassword(in.Password)
	if err != nil {
		return nil, domain.TokenPair{}, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		UID:          uuid.New(),
		Username:     username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Role:         in.Role,
		RecordStatus: domain.RecordStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The profile row is created alongside the user; the unique
	// constraints on email and username are the final arbiter.
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.TokenPair{}, apperror.Conflict("A user with this email or username already exists")
		}
		return nil, domain.TokenPair{}, apperror.Internal(err)
	}

	// Fire-and-forget: registration succeeds even if the email fails.
	if err := u.mailer.SendWelcome(user.Email, user.FullName()); err != nil {
		logger.Log.Warn("failed to send welcome email", "email", user.Email, "error", err)
	}

	pair, err := u.issuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, apperror.Internal(err)
	}
	return user, pair, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (*domain.User, domain.TokenPair, error) {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Same error as a bad password; never reveal which was wrong.
			return nil, domain.TokenPair{}, apperror.Unauthorized("Invalid credentials")
		}
		return nil, domain.TokenPair{}, apperror.Internal(err)
	}
	if !token.CheckPassword(password, user.PasswordHash) {
		return nil, domain.TokenPair{}, apperror.Unauthorized("Invalid credentials")
	}
	if !user.IsActive() {
		return nil, domain.TokenPair{}, apperror.Unauthorized("User account is disabled")
	}

	pair, err := u.issuePair(user)
	if err != nil {
		return nil, domain.TokenPair{}, apperror.Internal(err)
	}
	return user, pair, nil
}

func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := u.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return domain.TokenPair{}, apperror.Unauthorized("Invalid refresh token")
	}

	blacklisted, err := u.tokenStore.IsRefreshTokenBlacklisted(ctx, claims.ID)
	if err != nil {
		return domain.TokenPair{}, apperror.Internal(err)
	}
	if blacklisted {
		return domain.TokenPair{}, apperror.Unauthorized("Invalid refresh token")
	}

	user, err := u.userRepo.GetByUID(ctx, claims.UserUID)
	if err != nil {
		return domain.TokenPair{}, apperror.Unauthorized("Invalid refresh token")
	}
	if !user.IsActive() {
		return domain.TokenPair{}, apperror.Unauthorized("User account is disabled")
	}

	pair, err := u.issuePair(user)
	if err != nil {
		return domain.TokenPair{}, apperror.Internal(err)
	}
	return pair, nil
}

func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	claims, err := u.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return apperror.BadRequest("Invalid token")
	}
	// Blacklist until the token would expire anyway.
	if err := u.tokenStore.BlacklistRefreshToken(ctx, claims.ID, u.tokens.RefreshTTL()); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Mirrors the original behavior; a response identical to the
			// success case would avoid leaking account existence.
			return apperror.BadRequest("User with this email does not exist")
		}
		return apperror.Internal(err)
	}

	tok, err := token.GenerateResetToken()
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.tokenStore.SaveResetToken(ctx, user.UID, tok, u.resetTTL); err != nil {
		return apperror.Internal(err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?uid=%s&token=%s", u.frontendURL, user.UID, tok)
	if err := u.mailer.SendPasswordReset(user.Email, user.FullName(), resetLink); err != nil {
		logger.Log.Warn("failed to send password reset email", "email", user.Email, "error", err)
	}
	return nil
}

func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, userUID uuid.UUID, tok, newPassword, confirm string) error {
	if len(newPassword) < minPasswordLength {
		return apperror.BadRequest("Password must be at least 8 characters long")
	}
	if newPassword != confirm {
		return apperror.BadRequest("Passwords don't match")
	}

	user, err := u.userRepo.GetByUID(ctx, userUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.BadRequest("Invalid reset link")
		}
		return apperror.Internal(err)
	}

	ok, err := u.tokenStore.ConsumeResetToken(ctx, user.UID, tok)
	if err != nil {
		return apperror.Internal(err)
	}
	if !ok {
		return apperror.BadRequest("Invalid or expired reset link")
	}

	hash, err := token.HashPassword(newPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, uid uuid.UUID) (*domain.User, error) {
	user, err := u.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) issuePair(user *domain.User) (domain.TokenPair, error) {
	pair, err := u.tokens.IssuePair(user.UID, user.Email, string(user.Role))
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: pair.Access, Refresh: pair.Refresh}, nil
}
