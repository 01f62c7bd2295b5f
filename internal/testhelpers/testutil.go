package testhelpers

import (
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewTestLogger returns a logger that discards its output
func NewTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CreateTestUser inserts a user with the given email and password
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMeal inserts a meal for userID on date ("2006-01-02")
func CreateTestMeal(t *testing.T, db *gorm.DB, userID uuid.UUID, date string, calories int) *models.Meal {
	t.Helper()

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("invalid test meal date %q: %v", date, err)
	}
	meal := &models.Meal{
		UserID:      userID,
		Name:        "Test meal",
		Description: "test meal",
		Date:        d,
		Calories:    calories,
		Protein:     10,
		Carbs:       20,
		Fats:        5,
	}
	if err := db.Create(meal).Error; err != nil {
		t.Fatalf("failed to create test meal: %v", err)
	}
	return meal
}
