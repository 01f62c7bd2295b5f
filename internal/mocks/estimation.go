package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/estimation"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockEstimator is a mock implementation of estimation.Estimator
type MockEstimator struct {
	mock.Mock
}

var _ estimation.Estimator = (*MockEstimator)(nil)

func (m *MockEstimator) Estimate(ctx context.Context, description string) (*estimation.Result, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimation.Result), args.Error(1)
}

// MockEstimationService is a mock implementation of the EstimationService interface
type MockEstimationService struct {
	mock.Mock
}

var _ service.IEstimationService = (*MockEstimationService)(nil)

func (m *MockEstimationService) Estimate(ctx context.Context, userID uuid.UUID, description string) (*service.EstimationDraft, error) {
	args := m.Called(ctx, userID, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EstimationDraft), args.Error(1)
}

func (m *MockEstimationService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*service.EstimationDraft, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EstimationDraft), args.Error(1)
}

func (m *MockEstimationService) DiscardDraft(ctx context.Context, userID uuid.UUID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockDraftStore is a mock implementation of service.DraftStore
type MockDraftStore struct {
	mock.Mock
}

var _ service.DraftStore = (*MockDraftStore)(nil)

func (m *MockDraftStore) Save(ctx context.Context, draft *service.EstimationDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (*service.EstimationDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EstimationDraft), args.Error(1)
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
