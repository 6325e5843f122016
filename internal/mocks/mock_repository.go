package mocks

import (
	"context"

	"kwikwork/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUserNumber(ctx context.Context, userNumber string) (*models.User, error) {
	args := m.Called(ctx, userNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Patch(ctx context.Context, id uint, data map[string]interface{}) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, email, hash string) error {
	args := m.Called(ctx, email, hash)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Shared MockJobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, job *models.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uint) (*models.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Job), args.Error(1)
}

func (m *MockJobRepository) FindByEmployer(ctx context.Context, employerID uint) ([]models.Job, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).([]models.Job), args.Error(1)
}

func (m *MockJobRepository) SearchOpen(ctx context.Context, location string, categories []string, limit int) ([]models.Job, error) {
	args := m.Called(ctx, location, categories, limit)
	return args.Get(0).([]models.Job), args.Error(1)
}

// Shared MockApplicationRepository
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) SubmitForJob(ctx context.Context, jobID uint, seeker *models.User) (*models.Application, error) {
	args := m.Called(ctx, jobID, seeker)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindByUserNumber(ctx context.Context, userNumber string) ([]models.Application, error) {
	args := m.Called(ctx, userNumber)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) FindPendingByEmployer(ctx context.Context, employerID uint) ([]models.Application, error) {
	args := m.Called(ctx, employerID)
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationRepository) Approve(ctx context.Context, id uint, employerID uint) (*models.Application, []models.Application, error) {
	args := m.Called(ctx, id, employerID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Application), args.Get(1).([]models.Application), args.Error(2)
}

func (m *MockApplicationRepository) Reject(ctx context.Context, id uint, employerID uint) (*models.Application, error) {
	args := m.Called(ctx, id, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

// Shared MockResetPasswordRepository
type MockResetPasswordRepository struct {
	mock.Mock
}

func (m *MockResetPasswordRepository) Create(ctx context.Context, resetPassword *models.ResetPassword) error {
	args := m.Called(ctx, resetPassword)
	return args.Error(0)
}

func (m *MockResetPasswordRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*models.ResetPassword, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResetPassword), args.Error(1)
}

func (m *MockResetPasswordRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Shared MockVerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, verification *models.Verification) error {
	args := m.Called(ctx, verification)
	return args.Error(0)
}

func (m *MockVerificationRepository) FindByEmailAndCode(ctx context.Context, email, code string) (*models.Verification, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Verification), args.Error(1)
}

func (m *MockVerificationRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Shared MockActionGuard
type MockActionGuard struct {
	mock.Mock
}

func (m *MockActionGuard) Acquire(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockActionGuard) Release(ctx context.Context, key string) {
	m.Called(ctx, key)
}
