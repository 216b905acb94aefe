package auth_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/foliogen/foliogen/svc/auth"
)

// MockAccountStorage is a mock implementation of auth.AccountStorage.
type MockAccountStorage struct {
	mock.Mock
}

func (m *MockAccountStorage) FindByEmail(ctx context.Context, email string) (*auth.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Account), args.Error(1)
}

func (m *MockAccountStorage) FindByID(ctx context.Context, id uuid.UUID) (*auth.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Account), args.Error(1)
}

func (m *MockAccountStorage) Insert(ctx context.Context, account *auth.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountStorage) SetVerificationOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, id, code, expiresAt)
	return args.Error(0)
}

func (m *MockAccountStorage) SetResetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, id, code, expiresAt)
	return args.Error(0)
}

func (m *MockAccountStorage) ConsumeVerificationOTP(ctx context.Context, id uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, id, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountStorage) ConsumeResetOTP(ctx context.Context, id uuid.UUID, code, newPasswordHash string) (bool, error) {
	args := m.Called(ctx, id, code, newPasswordHash)
	return args.Bool(0), args.Error(1)
}

// MockCodeNotifier is a mock implementation of auth.CodeNotifier.
type MockCodeNotifier struct {
	mock.Mock
}

func (m *MockCodeNotifier) SendVerificationCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error {
	args := m.Called(ctx, to, name, code, expiresIn)
	return args.Error(0)
}

func (m *MockCodeNotifier) SendPasswordResetCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error {
	args := m.Called(ctx, to, name, code, expiresIn)
	return args.Error(0)
}

// MockThrottle is a mock implementation of auth.Throttle.
type MockThrottle struct {
	mock.Mock
}

func (m *MockThrottle) Allow(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
