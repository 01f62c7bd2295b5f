package mocks

import (
	"context"
	"time"

	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) SignUp(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, claims *types.TokenClaims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockAuthService) CurrentSession(ctx context.Context, claims *types.TokenClaims) (*service.Session, error) {
	args := m.Called(ctx, claims)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Session), args.Error(1)
}

// MockRevocationStore is a mock implementation of service.RevocationStore
type MockRevocationStore struct {
	mock.Mock
}

var _ service.RevocationStore = (*MockRevocationStore)(nil)

func (m *MockRevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	args := m.Called(ctx, tokenID, until)
	return args.Error(0)
}

func (m *MockRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}
