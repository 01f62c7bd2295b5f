package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

type SummaryHandler struct {
	summaryService service.ISummaryService
}

func NewSummaryHandler(summaryService service.ISummaryService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/summary", h.GetSummary)
}

// GetSummary returns per-day or per-week totals and the range total
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var q types.SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "invalid summary query", err)
		return
	}
	rng, err := parseRange(q.RangeQuery)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	summary, err := h.summaryService.Summarize(c.Request.Context(), userID, service.SummaryOptions{
		Range:       rng,
		Granularity: service.ParseGranularity(q.Granularity),
		Order:       nutrition.ParseOrder(q.Order),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
