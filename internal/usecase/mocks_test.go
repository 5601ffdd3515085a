package usecase_test

import (
	"context"
	"time"

	"jobsite-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByCode(ctx context.Context, code string) (*domain.Job, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*domain.Application, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Fetch(ctx context.Context, filter domain.ApplicationFilter, limit, offset int) ([]domain.Application, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Application), args.Get(1).(int64), args.Error(2)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, jobID, candidateID int64) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, app *domain.Application, expected domain.ApplicationStatus) error {
	return m.Called(ctx, app, expected).Error(0)
}

type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) RecruiterStats(ctx context.Context, recruiterID int64) (*domain.RecruiterStats, error) {
	args := m.Called(ctx, recruiterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecruiterStats), args.Error(1)
}

// Mock Collaborators

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(to, fullName string) error {
	return m.Called(to, fullName).Error(0)
}
func (m *MockMailer) SendPasswordReset(to, fullName, resetLink string) error {
	return m.Called(to, fullName, resetLink).Error(0)
}
func (m *MockMailer) SendNewApplication(to, jobTitle, candidateName string) error {
	return m.Called(to, jobTitle, candidateName).Error(0)
}
func (m *MockMailer) SendApplicationReceived(to, fullName, jobTitle string) error {
	return m.Called(to, fullName, jobTitle).Error(0)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) SaveResetToken(ctx context.Context, userUID uuid.UUID, tok string, ttl time.Duration) error {
	return m.Called(ctx, userUID, tok, ttl).Error(0)
}
func (m *MockTokenStore) ConsumeResetToken(ctx context.Context, userUID uuid.UUID, tok string) (bool, error) {
	args := m.Called(ctx, userUID, tok)
	return args.Bool(0), args.Error(1)
}
func (m *MockTokenStore) BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return m.Called(ctx, tokenID, ttl).Error(0)
}
func (m *MockTokenStore) IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
