package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

type EstimateHandler struct {
	estimationService service.IEstimationService
	limiter           *middleware.RateLimiter
}

// NewEstimateHandler creates the estimation endpoints. limiter may be nil.
func NewEstimateHandler(estimationService service.IEstimationService, limiter *middleware.RateLimiter) *EstimateHandler {
	return &EstimateHandler{estimationService: estimationService, limiter: limiter}
}

func (h *EstimateHandler) RegisterRoutes(router *gin.RouterGroup) {
	estimate := router.Group("/estimate")
	{
		if h.limiter != nil {
			estimate.POST("", h.limiter.RateLimitMiddleware(), h.Estimate)
		} else {
			estimate.POST("", h.Estimate)
		}
		estimate.GET("/drafts/:id", h.GetDraft)
	}
}

// Estimate sends the description to the estimation flow and returns the
// parsed macros as a draft
func (h *EstimateHandler) Estimate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req types.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "description is required", err)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		badRequest(c, "description is required", nil)
		return
	}

	draft, err := h.estimationService.Estimate(c.Request.Context(), userID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *EstimateHandler) GetDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	draft, err := h.estimationService.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}
