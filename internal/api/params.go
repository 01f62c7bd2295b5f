package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

// MaxRangeDays bounds the number of calendar days a single request may span
const MaxRangeDays = 366 * 5

// parseRange turns start/end query values into a DateRange. A missing end
// selects the single start day.
func parseRange(q types.RangeQuery) (nutrition.DateRange, error) {
	start, err := nutrition.ParseDay(q.Start)
	if err != nil {
		return nutrition.DateRange{}, fmt.Errorf("invalid start date %q", q.Start)
	}

	var end = start
	if q.End != "" {
		if end, err = nutrition.ParseDay(q.End); err != nil {
			return nutrition.DateRange{}, fmt.Errorf("invalid end date %q", q.End)
		}
	}
	if end.Before(start) {
		return nutrition.DateRange{}, errors.New("end date must not be before start date")
	}
	rng := nutrition.NewDateRange(start, end)
	if rng.Days() > MaxRangeDays {
		return nutrition.DateRange{}, fmt.Errorf("date range must not exceed %d days", MaxRangeDays)
	}
	return rng, nil
}

func idParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
