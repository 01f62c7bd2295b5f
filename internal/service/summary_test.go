package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/mocks"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func summaryFixture(t *testing.T, target *int) (*service.SummaryService, uuid.UUID, nutrition.DateRange) {
	userID := uuid.New()
	rng := nutrition.NewDateRange(mustDay(t, "2024-05-01"), mustDay(t, "2024-05-09"))
	meals := []models.Meal{
		{UserID: userID, Date: mustDay(t, "2024-05-01"), Calories: 200, Protein: 10},
		{UserID: userID, Date: mustDay(t, "2024-05-01"), Calories: 300, Protein: 15},
		{UserID: userID, Date: mustDay(t, "2024-05-09"), Calories: 100, Protein: 5},
	}

	mealSvc := new(mocks.MockMealService)
	mealSvc.On("List", mock.Anything, userID, rng).Return(meals, nil)
	profileSvc := new(mocks.MockProfileService)
	profileSvc.On("GetOrCreate", mock.Anything, userID).Return(&models.Profile{UserID: userID, TargetCalories: target}, nil)

	return service.NewSummaryService(mealSvc, profileSvc), userID, rng
}

func TestSummaryService_Days(t *testing.T) {
	target := 250
	svc, userID, rng := summaryFixture(t, &target)

	summary, err := svc.Summarize(context.Background(), userID, service.SummaryOptions{
		Range: rng,
		Order: nutrition.Descending,
	})
	require.NoError(t, err)

	assert.Equal(t, service.GranularityDay, summary.Granularity)
	assert.Nil(t, summary.Weeks)
	require.Len(t, summary.Days, 9)
	assert.Equal(t, "2024-05-09", nutrition.DayKey(summary.Days[0].Date))
	assert.Equal(t, "2024-05-01", nutrition.DayKey(summary.Days[8].Date))
	assert.Equal(t, 250, summary.Days[8].NetCalories)
	assert.Equal(t, -150, summary.Days[0].NetCalories)
	assert.Equal(t, 600, summary.Total.Totals.Calories)
	assert.Equal(t, 600-9*250, summary.Total.NetCalories)
	require.NotNil(t, summary.TargetCalories)
	assert.Equal(t, 250, *summary.TargetCalories)
}

func TestSummaryService_Weeks(t *testing.T) {
	svc, userID, rng := summaryFixture(t, nil)

	summary, err := svc.Summarize(context.Background(), userID, service.SummaryOptions{
		Range:       rng,
		Granularity: service.GranularityWeek,
		Order:       nutrition.Ascending,
	})
	require.NoError(t, err)

	assert.Nil(t, summary.Days)
	require.Len(t, summary.Weeks, 2)
	assert.Equal(t, "2024-05-01", nutrition.DayKey(summary.Weeks[0].Start))
	assert.Equal(t, 2, summary.Weeks[0].Days)
	assert.Equal(t, 500, summary.Weeks[0].Totals.Calories)
	assert.Equal(t, "2024-05-03", nutrition.DayKey(summary.Weeks[1].Start))
	assert.Equal(t, 7, summary.Weeks[1].Days)
	assert.Equal(t, 100, summary.Weeks[1].Totals.Calories)
	assert.Equal(t, 600, summary.Total.NetCalories)
	assert.Nil(t, summary.TargetCalories)
}

func TestSummaryService_PropagatesStoreErrors(t *testing.T) {
	userID := uuid.New()
	rng := nutrition.NewDateRange(mustDay(t, "2024-05-01"), mustDay(t, "2024-05-02"))

	mealSvc := new(mocks.MockMealService)
	mealSvc.On("List", mock.Anything, userID, rng).Return(nil, errors.New("connection refused"))
	profileSvc := new(mocks.MockProfileService)
	profileSvc.On("GetOrCreate", mock.Anything, userID).Return(&models.Profile{UserID: userID}, nil)

	_, err := service.NewSummaryService(mealSvc, profileSvc).Summarize(context.Background(), userID, service.SummaryOptions{Range: rng})
	assert.Error(t, err)
}

func TestParseGranularity(t *testing.T) {
	assert.Equal(t, service.GranularityWeek, service.ParseGranularity("week"))
	assert.Equal(t, service.GranularityDay, service.ParseGranularity("day"))
	assert.Equal(t, service.GranularityDay, service.ParseGranularity(""))
}
