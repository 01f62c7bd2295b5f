package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of the ProfileService interface
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateTarget(ctx context.Context, userID uuid.UUID, target *int) (*models.Profile, error) {
	args := m.Called(ctx, userID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
