package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/estimation"
	"github.com/sirupsen/logrus"
)

// EstimationService turns meal descriptions into drafts the user can confirm
type EstimationService struct {
	estimator estimation.Estimator
	drafts    DraftStore
	logger    *logrus.Logger
}

// Ensure EstimationService implements IEstimationService
var _ IEstimationService = (*EstimationService)(nil)

func NewEstimationService(estimator estimation.Estimator, drafts DraftStore, logger *logrus.Logger) *EstimationService {
	return &EstimationService{estimator: estimator, drafts: drafts, logger: logger}
}

// Estimate asks the estimator for the description's macros and stores the
// outcome as a draft
func (s *EstimationService) Estimate(ctx context.Context, userID uuid.UUID, description string) (*EstimationDraft, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("description is required")
	}

	result, err := s.estimator.Estimate(ctx, description)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("meal estimation failed")
		return nil, err
	}

	draft := newDraft(userID, result)
	log := s.logger.WithFields(logrus.Fields{"user_id": userID, "draft_id": draft.ID})
	if len(draft.Missing) > 0 {
		log.WithField("missing", draft.Missing).Warn("estimate is missing macros")
	}
	if err := s.drafts.Save(ctx, draft); err != nil {
		// the estimate is still usable without a stored draft
		log.WithError(err).Warn("failed to store estimation draft")
	}
	return draft, nil
}

// GetDraft returns a draft owned by the user
func (s *EstimationService) GetDraft(ctx context.Context, userID uuid.UUID, id string) (*EstimationDraft, error) {
	draft, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// DiscardDraft deletes a draft owned by the user
func (s *EstimationService) DiscardDraft(ctx context.Context, userID uuid.UUID, id string) error {
	if _, err := s.GetDraft(ctx, userID, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}

func newDraft(userID uuid.UUID, r *estimation.Result) *EstimationDraft {
	draft := &EstimationDraft{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: r.Description,
		Calories:    r.Calories.Value,
		Protein:     float64(r.Protein.Value),
		Carbs:       float64(r.Carbs.Value),
		Fats:        float64(r.Fats.Value),
		Missing:     []string{},
		Analysis:    r.Analysis,
		CreatedAt:   time.Now().UTC(),
	}
	for name, f := range map[string]estimation.Field{
		"calories": r.Calories,
		"protein":  r.Protein,
		"carbs":    r.Carbs,
		"fats":     r.Fats,
	} {
		if !f.Present {
			draft.Missing = append(draft.Missing, name)
		}
	}
	sort.Strings(draft.Missing)
	return draft
}
