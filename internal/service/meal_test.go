package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/testhelpers"
	"github.com/pageza/macro-tracker/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupMealTest(t *testing.T) (*gorm.DB, *service.MealService, *models.User) {
	db := testhelpers.SetupSQLiteDatabase(t)
	user := testhelpers.CreateTestUser(t, db, "meals@example.com", "password123")
	return db, service.NewMealService(db), user
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := nutrition.ParseDay(s)
	require.NoError(t, err)
	return d
}

func newMeal(t *testing.T, userID uuid.UUID, date string, calories int) *models.Meal {
	return &models.Meal{
		UserID:      userID,
		Description: "oatmeal with berries",
		Date:        mustDay(t, date),
		Calories:    calories,
		Protein:     12.5,
		Carbs:       40,
		Fats:        6,
	}
}

func TestMealService_CreateAssignsDefaultName(t *testing.T) {
	_, svc, user := setupMealTest(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 300))
	require.NoError(t, err)
	assert.Equal(t, "Meal 1", first.Name)
	assert.NotEqual(t, uuid.Nil, first.ID)

	second, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 200))
	require.NoError(t, err)
	assert.Equal(t, "Meal 2", second.Name)

	otherDay, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-02", 200))
	require.NoError(t, err)
	assert.Equal(t, "Meal 1", otherDay.Name)

	named := newMeal(t, user.ID, "2024-05-01", 100)
	named.Name = "  Breakfast "
	created, err := svc.Create(ctx, named)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", created.Name)
}

func TestMealService_CreateRejectsInvalidMeals(t *testing.T) {
	_, svc, user := setupMealTest(t)
	ctx := context.Background()

	negative := newMeal(t, user.ID, "2024-05-01", -5)
	_, err := svc.Create(ctx, negative)
	assert.ErrorIs(t, err, service.ErrInvalidMeal)

	blank := newMeal(t, user.ID, "2024-05-01", 5)
	blank.Description = "   "
	_, err = svc.Create(ctx, blank)
	assert.ErrorIs(t, err, service.ErrInvalidMeal)

	noDate := newMeal(t, user.ID, "2024-05-01", 5)
	noDate.Date = time.Time{}
	_, err = svc.Create(ctx, noDate)
	assert.ErrorIs(t, err, service.ErrInvalidMeal)
}

func TestMealService_ListFiltersByOwnerAndRange(t *testing.T) {
	db, svc, user := setupMealTest(t)
	ctx := context.Background()
	other := testhelpers.CreateTestUser(t, db, "other@example.com", "password123")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, date := range []string{"2024-04-30", "2024-05-01", "2024-05-02", "2024-05-03"} {
		m := newMeal(t, user.ID, date, 100*(i+1))
		m.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := svc.Create(ctx, m)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, newMeal(t, other.ID, "2024-05-01", 999))
	require.NoError(t, err)

	rng := nutrition.NewDateRange(mustDay(t, "2024-05-01"), mustDay(t, "2024-05-02"))
	meals, err := svc.List(ctx, user.ID, rng)
	require.NoError(t, err)

	require.Len(t, meals, 2)
	// newest entry first
	assert.Equal(t, 300, meals[0].Calories)
	assert.Equal(t, 200, meals[1].Calories)
	for _, m := range meals {
		assert.Equal(t, user.ID, m.UserID)
		assert.True(t, rng.Contains(m.Date))
	}

	single, err := svc.List(ctx, user.ID, nutrition.NewDateRange(mustDay(t, "2024-05-03"), time.Time{}))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Equal(t, 400, single[0].Calories)

	empty, err := svc.List(ctx, user.ID, nutrition.DateRange{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMealService_GetIsOwnerScoped(t *testing.T) {
	db, svc, user := setupMealTest(t)
	ctx := context.Background()
	other := testhelpers.CreateTestUser(t, db, "other@example.com", "password123")

	meal, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 300))
	require.NoError(t, err)

	got, err := svc.Get(ctx, user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, meal.ID, got.ID)
	assert.Equal(t, "2024-05-01", nutrition.DayKey(got.Date))

	_, err = svc.Get(ctx, other.ID, meal.ID)
	assert.ErrorIs(t, err, service.ErrMealNotFound)

	_, err = svc.Get(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrMealNotFound)
}

func TestMealService_UpdateReplacesFields(t *testing.T) {
	_, svc, user := setupMealTest(t)
	ctx := context.Background()

	meal, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 300))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, user.ID, meal.ID, &models.Meal{
		Name:        "Dinner",
		Description: "salmon and rice",
		Date:        mustDay(t, "2024-05-02"),
		Calories:    650,
		Protein:     40,
		Carbs:       60,
		Fats:        20,
		Analysis:    "Calories: 650",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dinner", updated.Name)
	assert.Equal(t, "salmon and rice", updated.Description)
	assert.Equal(t, "2024-05-02", nutrition.DayKey(updated.Date))
	assert.Equal(t, 650, updated.Calories)

	got, err := svc.Get(ctx, user.ID, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, 650, got.Calories)
	assert.Equal(t, 40.0, got.Protein)
	assert.Equal(t, user.ID, got.UserID)

	_, err = svc.Update(ctx, uuid.New(), meal.ID, got)
	assert.ErrorIs(t, err, service.ErrMealNotFound)
}

func TestMealService_UpdateMacrosIsPartial(t *testing.T) {
	_, svc, user := setupMealTest(t)
	ctx := context.Background()

	meal, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 300))
	require.NoError(t, err)

	protein := 30.0
	updated, err := svc.UpdateMacros(ctx, user.ID, meal.ID, &types.UpdateMacrosRequest{Protein: &protein})
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.Protein)
	assert.Equal(t, 300, updated.Calories)
	assert.Equal(t, 40.0, updated.Carbs)

	negative := -1
	_, err = svc.UpdateMacros(ctx, user.ID, meal.ID, &types.UpdateMacrosRequest{Calories: &negative})
	assert.ErrorIs(t, err, service.ErrInvalidMeal)
}

func TestMealService_Delete(t *testing.T) {
	_, svc, user := setupMealTest(t)
	ctx := context.Background()

	meal, err := svc.Create(ctx, newMeal(t, user.ID, "2024-05-01", 300))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), meal.ID), service.ErrMealNotFound)
	require.NoError(t, svc.Delete(ctx, user.ID, meal.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID, meal.ID), service.ErrMealNotFound)

	_, err = svc.Get(ctx, user.ID, meal.ID)
	assert.ErrorIs(t, err, service.ErrMealNotFound)
}
