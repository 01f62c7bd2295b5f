package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
)

// Granularity selects whether a summary reports days or weeks
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// ParseGranularity defaults to days
func ParseGranularity(s string) Granularity {
	if Granularity(s) == GranularityWeek {
		return GranularityWeek
	}
	return GranularityDay
}

// SummaryOptions selects the range and shape of a summary
type SummaryOptions struct {
	Range       nutrition.DateRange
	Granularity Granularity
	Order       nutrition.Order
}

// Summary is the response of a summary request
type Summary struct {
	Start          time.Time               `json:"start"`
	End            time.Time               `json:"end"`
	Granularity    Granularity             `json:"granularity"`
	Order          nutrition.Order         `json:"order"`
	TargetCalories *int                    `json:"target_calories"`
	Days           []nutrition.DaySummary  `json:"days,omitempty"`
	Weeks          []nutrition.WeekSummary `json:"weeks,omitempty"`
	Total          nutrition.RangeSummary  `json:"total"`
}

// SummaryService reads meals and the calorie target and feeds them through
// the aggregation functions
type SummaryService struct {
	meals    IMealService
	profiles IProfileService
}

// Ensure SummaryService implements ISummaryService
var _ ISummaryService = (*SummaryService)(nil)

// NewSummaryService creates a new SummaryService instance
func NewSummaryService(meals IMealService, profiles IProfileService) *SummaryService {
	return &SummaryService{meals: meals, profiles: profiles}
}

// Summarize builds the day or week view of opts.Range for the user
func (s *SummaryService) Summarize(ctx context.Context, userID uuid.UUID, opts SummaryOptions) (*Summary, error) {
	if opts.Granularity == "" {
		opts.Granularity = GranularityDay
	}
	if opts.Order == "" {
		opts.Order = nutrition.Ascending
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.List(ctx, userID, opts.Range)
	if err != nil {
		return nil, err
	}

	target := profile.Target()
	days := nutrition.DailyTotals(meals, opts.Range, target)

	summary := &Summary{
		Start:          opts.Range.Start,
		End:            opts.Range.End,
		Granularity:    opts.Granularity,
		Order:          opts.Order,
		TargetCalories: target,
		Total:          nutrition.RangeTotals(days),
	}

	switch opts.Granularity {
	case GranularityWeek:
		weeks := nutrition.WeeklyTotals(days, opts.Range)
		nutrition.SortWeeks(weeks, opts.Order)
		summary.Weeks = weeks
	default:
		nutrition.SortDays(days, opts.Order)
		summary.Days = days
	}
	return summary, nil
}
