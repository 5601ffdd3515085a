package usecase_test

import (
	"context"
	"testing"
	"time"

	"jobsite-backend/internal/domain"
	"jobsite-backend/internal/usecase"
	"jobsite-backend/pkg/apperror"
	"jobsite-backend/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTokenService() *token.Service {
	return token.NewService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func newAuthUC(userRepo *MockUserRepo, store *MockTokenStore, mailer *MockMailer) domain.AuthUsecase {
	return usecase.NewAuthUsecase(userRepo, newTokenService(), store, mailer, "http://localhost:3000", time.Hour)
}

func validRegisterInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:           "jane@example.com",
		FirstName:       "Jane",
		LastName:        "Doe",
		Password:        "supersecret",
		PasswordConfirm: "supersecret",
		Role:            domain.RoleCandidate,
	}
}

func TestRegisterValidation(t *testing.T) {
	uc := newAuthUC(new(MockUserRepo), new(MockTokenStore), new(MockMailer))

	t.Run("Should fail on short password", func(t *testing.T) {
		in := validRegisterInput()
		in.Password = "short"
		in.PasswordConfirm = "short"
		_, _, err := uc.Register(context.Background(), in)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("Should fail on password mismatch", func(t *testing.T) {
		in := validRegisterInput()
		in.PasswordConfirm = "different-pass"
		_, _, err := uc.Register(context.Background(), in)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "don't match")
	})

	t.Run("Should fail on unknown role", func(t *testing.T) {
		in := validRegisterInput()
		in.Role = "SUPERUSER"
		_, _, err := uc.Register(context.Background(), in)
		assert.Error(t, err)
	})
}

func TestRegisterSuccess(t *testing.T) {
	userRepo := new(MockUserRepo)
	mailer := new(MockMailer)
	uc := newAuthUC(userRepo, new(MockTokenStore), mailer)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	mailer.On("SendWelcome", "jane@example.com", "Jane Doe").Return(nil)

	user, tokens, err := uc.Register(context.Background(), validRegisterInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)
	// Username falls back to the email when absent.
	assert.Equal(t, "jane@example.com", user.Username)
	assert.NotEqual(t, uuid.Nil, user.UID)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	mailer.AssertCalled(t, "SendWelcome", "jane@example.com", "Jane Doe")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

	_, _, err := uc.Register(context.Background(), validRegisterInput())
	assert.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	userRepo := new(MockUserRepo)
	mailer := new(MockMailer)
	uc := newAuthUC(userRepo, new(MockTokenStore), mailer)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendWelcome", mock.Anything, mock.Anything).Return(assert.AnError)

	_, tokens, err := uc.Register(context.Background(), validRegisterInput())
	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.Access)
}

func TestLogin(t *testing.T) {
	hash, _ := token.HashPassword("supersecret")
	activeUser := func() *domain.User {
		return &domain.User{
			ID:           1,
			UID:          uuid.New(),
			Email:        "jane@example.com",
			PasswordHash: hash,
			Role:         domain.RoleCandidate,
			RecordStatus: domain.RecordStatusActive,
		}
	}

	t.Run("Should succeed with valid credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeUser(), nil)

		user, tokens, err := uc.Login(context.Background(), "jane@example.com", "supersecret")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.Access)
	})

	t.Run("Should fail with wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(activeUser(), nil)

		_, _, err := uc.Login(context.Background(), "jane@example.com", "wrong-pass")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should fail the same way for unknown email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, _, err := uc.Login(context.Background(), "nobody@example.com", "supersecret")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Should fail for disabled account", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))
		disabled := activeUser()
		disabled.RecordStatus = domain.RecordStatusSuspended
		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(disabled, nil)

		_, _, err := uc.Login(context.Background(), "jane@example.com", "supersecret")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})
}

func TestRefresh(t *testing.T) {
	tokens := newTokenService()
	uid := uuid.New()
	user := &domain.User{
		ID:           1,
		UID:          uid,
		Email:        "jane@example.com",
		Role:         domain.RoleCandidate,
		RecordStatus: domain.RecordStatusActive,
	}
	pair, err := tokens.IssuePair(uid, user.Email, string(user.Role))
	assert.NoError(t, err)

	t.Run("Should issue a new pair for a valid token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		store := new(MockTokenStore)
		uc := usecase.NewAuthUsecase(userRepo, tokens, store, new(MockMailer), "http://localhost:3000", time.Hour)

		store.On("IsRefreshTokenBlacklisted", mock.Anything, mock.Anything).Return(false, nil)
		userRepo.On("GetByUID", mock.Anything, uid).Return(user, nil)

		newPair, err := uc.Refresh(context.Background(), pair.Refresh)
		assert.NoError(t, err)
		assert.NotEmpty(t, newPair.Access)
	})

	t.Run("Should reject a blacklisted token", func(t *testing.T) {
		store := new(MockTokenStore)
		uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens, store, new(MockMailer), "http://localhost:3000", time.Hour)

		store.On("IsRefreshTokenBlacklisted", mock.Anything, mock.Anything).Return(true, nil)

		_, err := uc.Refresh(context.Background(), pair.Refresh)
		assert.Error(t, err)
	})

	t.Run("Should reject an access token used as refresh", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens, new(MockTokenStore), new(MockMailer), "http://localhost:3000", time.Hour)

		_, err := uc.Refresh(context.Background(), pair.Access)
		assert.Error(t, err)
	})
}

func TestLogoutBlacklistsToken(t *testing.T) {
	tokens := newTokenService()
	store := new(MockTokenStore)
	uc := usecase.NewAuthUsecase(new(MockUserRepo), tokens, store, new(MockMailer), "http://localhost:3000", time.Hour)

	pair, err := tokens.IssuePair(uuid.New(), "jane@example.com", "CANDIDATE")
	assert.NoError(t, err)

	store.On("BlacklistRefreshToken", mock.Anything, mock.AnythingOfType("string"), tokens.RefreshTTL()).Return(nil)

	assert.NoError(t, uc.Logout(context.Background(), pair.Refresh))
	store.AssertExpectations(t)
}

func TestPasswordResetFlow(t *testing.T) {
	uid := uuid.New()
	user := &domain.User{
		ID:           7,
		UID:          uid,
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		RecordStatus: domain.RecordStatusActive,
	}

	t.Run("Request saves a token and mails the link", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		store := new(MockTokenStore)
		mailer := new(MockMailer)
		uc := newAuthUC(userRepo, store, mailer)

		userRepo.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil)
		store.On("SaveResetToken", mock.Anything, uid, mock.AnythingOfType("string"), time.Hour).Return(nil)
		mailer.On("SendPasswordReset", "jane@example.com", "Jane Doe", mock.MatchedBy(func(link string) bool {
			return link != ""
		})).Return(nil)

		assert.NoError(t, uc.RequestPasswordReset(context.Background(), "jane@example.com"))
		store.AssertExpectations(t)
	})

	t.Run("Request for unknown email errors", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := newAuthUC(userRepo, new(MockTokenStore), new(MockMailer))
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		err := uc.RequestPasswordReset(context.Background(), "nobody@example.com")
		assert.Error(t, err)
	})

	t.Run("Confirm consumes the token and updates the password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		store := new(MockTokenStore)
		uc := newAuthUC(userRepo, store, new(MockMailer))

		userRepo.On("GetByUID", mock.Anything, uid).Return(user, nil)
		store.On("ConsumeResetToken", mock.Anything, uid, "tok123").Return(true, nil)
		userRepo.On("UpdatePassword", mock.Anything, int64(7), mock.AnythingOfType("string")).Return(nil)

		err := uc.ConfirmPasswordReset(context.Background(), uid, "tok123", "newpassword", "newpassword")
		assert.NoError(t, err)
		userRepo.AssertCalled(t, "UpdatePassword", mock.Anything, int64(7), mock.AnythingOfType("string"))
	})

	t.Run("Confirm rejects a used token", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		store := new(MockTokenStore)
		uc := newAuthUC(userRepo, store, new(MockMailer))

		userRepo.On("GetByUID", mock.Anything, uid).Return(user, nil)
		store.On("ConsumeResetToken", mock.Anything, uid, "tok123").Return(false, nil)

		err := uc.ConfirmPasswordReset(context.Background(), uid, "tok123", "newpassword", "newpassword")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid or expired")
	})
}
