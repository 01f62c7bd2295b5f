package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOrCreate returns the user's profile, creating one without a target on
// first access
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return getOrCreateProfile(s.db.WithContext(ctx), userID)
}

// UpdateTarget sets the daily calorie target. nil or 0 clears it.
func (s *ProfileService) UpdateTarget(ctx context.Context, userID uuid.UUID, target *int) (*models.Profile, error) {
	if target != nil && *target < 0 {
		return nil, fmt.Errorf("%w: target calories must not be negative", ErrInvalidProfile)
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if target == nil || *target == 0 {
		profile.TargetCalories = nil
	} else {
		t := *target
		profile.TargetCalories = &t
	}

	// Select keeps a nil target from being skipped as a zero value
	if err := s.db.WithContext(ctx).Model(profile).Select("target_calories", "updated_at").Updates(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func getOrCreateProfile(db *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile = models.Profile{UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	// A concurrent request may have won the insert
	var stored models.Profile
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &stored, nil
}
