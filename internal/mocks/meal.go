package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockMealService is a mock implementation of the MealService interface
type MockMealService struct {
	mock.Mock
}

var _ service.IMealService = (*MockMealService)(nil)

func (m *MockMealService) List(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) ([]models.Meal, error) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	args := m.Called(ctx, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) Update(ctx context.Context, userID, id uuid.UUID, meal *models.Meal) (*models.Meal, error) {
	args := m.Called(ctx, userID, id, meal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) UpdateMacros(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMacrosRequest) (*models.Meal, error) {
	args := m.Called(ctx, userID, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockSummaryService is a mock implementation of the SummaryService interface
type MockSummaryService struct {
	mock.Mock
}

var _ service.ISummaryService = (*MockSummaryService)(nil)

func (m *MockSummaryService) Summarize(ctx context.Context, userID uuid.UUID, opts service.SummaryOptions) (*service.Summary, error) {
	args := m.Called(ctx, userID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Summary), args.Error(1)
}

// MockExportService is a mock implementation of the ExportService interface
type MockExportService struct {
	mock.Mock
}

var _ service.IExportService = (*MockExportService)(nil)

func (m *MockExportService) ExportMeals(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) (*service.Export, error) {
	args := m.Called(ctx, userID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Export), args.Error(1)
}

// MockObjectStore is a mock implementation of service.ObjectStore
type MockObjectStore struct {
	mock.Mock
}

var _ service.ObjectStore = (*MockObjectStore)(nil)

func (m *MockObjectStore) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, key, expiration)
	return args.String(0), args.Error(1)
}
