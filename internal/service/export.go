package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/sirupsen/logrus"
)

// ExportURLExpiry is how long a presigned export link stays valid
const ExportURLExpiry = 15 * time.Minute

// Export describes an uploaded snapshot
type Export struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Meals     int       `json:"meals"`
}

// exportDocument is the JSON written to the bucket
type exportDocument struct {
	UserID     uuid.UUID              `json:"user_id"`
	Start      string                 `json:"start"`
	End        string                 `json:"end"`
	ExportedAt time.Time              `json:"exported_at"`
	Total      nutrition.RangeSummary `json:"total"`
	Meals      []models.Meal          `json:"meals"`
}

// ExportService writes meal snapshots to object storage
type ExportService struct {
	meals    IMealService
	profiles IProfileService
	store    ObjectStore
	logger   *logrus.Logger
}

// Ensure ExportService implements IExportService
var _ IExportService = (*ExportService)(nil)

func NewExportService(meals IMealService, profiles IProfileService, store ObjectStore, logger *logrus.Logger) *ExportService {
	return &ExportService{meals: meals, profiles: profiles, store: store, logger: logger}
}

// ExportMeals uploads the user's meals in rng with their range totals and
// returns a short-lived download link
func (s *ExportService) ExportMeals(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) (*Export, error) {
	meals, err := s.meals.List(ctx, userID, rng)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := exportDocument{
		UserID:     userID,
		Start:      nutrition.DayKey(rng.Start),
		End:        nutrition.DayKey(rng.End),
		ExportedAt: now,
		Total:      nutrition.RangeTotals(nutrition.DailyTotals(meals, rng, profile.Target())),
		Meals:      meals,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s_%s_%d.json", userID, doc.Start, doc.End, now.Unix())
	if err := s.store.Upload(ctx, key, body, "application/json"); err != nil {
		return nil, err
	}
	url, err := s.store.GeneratePresignedURL(ctx, key, ExportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"key":     key,
		"meals":   len(meals),
	}).Info("meal export uploaded")

	return &Export{Key: key, URL: url, ExpiresAt: now.Add(ExportURLExpiry), Meals: len(meals)}, nil
}
