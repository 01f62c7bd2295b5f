package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/types"
	"gorm.io/gorm"
)

// MealService stores and retrieves meals
type MealService struct {
	db *gorm.DB
}

// Ensure MealService implements IMealService
var _ IMealService = (*MealService)(nil)

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// List returns the user's meals dated within rng, newest entry first
func (s *MealService) List(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) ([]models.Meal, error) {
	if !rng.Valid() {
		return []models.Meal{}, nil
	}

	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, nutrition.Day(rng.Start), nutrition.Day(rng.End)).
		Order("created_at DESC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}

// Get returns one meal owned by the user
func (s *MealService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

// Create stores a new meal. A blank name becomes "Meal N" where N counts the
// user's meals already on that day.
func (s *MealService) Create(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	meal.Date = nutrition.Day(meal.Date)
	meal.Name = strings.TrimSpace(meal.Name)
	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if meal.Name == "" {
			var count int64
			if err := tx.Model(&models.Meal{}).
				Where("user_id = ? AND date = ?", meal.UserID, meal.Date).
				Count(&count).Error; err != nil {
				return err
			}
			meal.Name = fmt.Sprintf("Meal %d", count+1)
		}
		return tx.Create(meal).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}
	return meal, nil
}

// Update replaces every editable field of an existing meal
func (s *MealService) Update(ctx context.Context, userID, id uuid.UUID, input *models.Meal) (*models.Meal, error) {
	meal, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	meal.Description = input.Description
	meal.Date = nutrition.Day(input.Date)
	meal.Calories = input.Calories
	meal.Protein = input.Protein
	meal.Carbs = input.Carbs
	meal.Fats = input.Fats
	meal.Analysis = input.Analysis
	if name := strings.TrimSpace(input.Name); name != "" {
		meal.Name = name
	}
	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}
	return meal, nil
}

// UpdateMacros changes only the macros present in req
func (s *MealService) UpdateMacros(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMacrosRequest) (*models.Meal, error) {
	meal, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Calories != nil {
		meal.Calories = *req.Calories
	}
	if req.Protein != nil {
		meal.Protein = *req.Protein
	}
	if req.Carbs != nil {
		meal.Carbs = *req.Carbs
	}
	if req.Fats != nil {
		meal.Fats = *req.Fats
	}
	if err := validateMeal(meal); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to update meal macros: %w", err)
	}
	return meal, nil
}

// Delete removes a meal owned by the user
func (s *MealService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Meal{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMealNotFound
	}
	return nil
}

func validateMeal(m *models.Meal) error {
	switch {
	case m.UserID == uuid.Nil:
		return fmt.Errorf("%w: missing owner", ErrInvalidMeal)
	case strings.TrimSpace(m.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidMeal)
	case m.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidMeal)
	case m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fats < 0:
		return fmt.Errorf("%w: macros must not be negative", ErrInvalidMeal)
	}
	return nil
}
