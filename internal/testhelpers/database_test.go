package testhelpers

import (
	"testing"

	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupSQLiteDatabase(t *testing.T) {
	db := SetupSQLiteDatabase(t)
	user := CreateTestUser(t, db, "test@example.com", "password123")
	CreateTestMeal(t, db, user.ID, "2024-05-01", 400)

	var count int64
	require.NoError(t, db.Model(&models.Meal{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSetupTestDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := SetupTestDatabase(t)
	user := CreateTestUser(t, db, "test@example.com", "password123")
	meal := CreateTestMeal(t, db, user.ID, "2024-05-01", 400)
	assert.NotZero(t, meal.ID)

	// negative macros are rejected by the schema
	bad := &models.Meal{UserID: user.ID, Name: "bad", Description: "x", Date: meal.Date, Calories: -1}
	assert.Error(t, db.Create(bad).Error)
}
