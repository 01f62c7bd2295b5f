package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

type MealHandler struct {
	mealService       service.IMealService
	estimationService service.IEstimationService
	exportService     service.IExportService
	logger            *logrus.Logger
}

// NewMealHandler creates the meal endpoints. exportService may be nil when no
// export bucket is configured.
func NewMealHandler(mealService service.IMealService, estimationService service.IEstimationService, exportService service.IExportService, logger *logrus.Logger) *MealHandler {
	return &MealHandler{
		mealService:       mealService,
		estimationService: estimationService,
		exportService:     exportService,
		logger:            logger,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.POST("", h.CreateMeal)
		meals.POST("/export", h.ExportMeals)
		meals.GET("/:id", h.GetMeal)
		meals.PUT("/:id", h.UpdateMeal)
		meals.PATCH("/:id/macros", h.UpdateMacros)
		meals.DELETE("/:id", h.DeleteMeal)
	}
}

func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var q types.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "start date is required", err)
		return
	}
	rng, err := parseRange(q)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	meals, err := h.mealService.List(c.Request.Context(), userID, rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	meal, err := h.mealService.Get(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// CreateMeal stores a meal. When the meal was confirmed from an estimation
// draft, the draft is discarded.
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req types.MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	meal, err := mealFromRequest(userID, &req)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	created, err := h.mealService.Create(c.Request.Context(), meal)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.DraftID != "" && h.estimationService != nil {
		err := h.estimationService.DiscardDraft(c.Request.Context(), userID, req.DraftID)
		if err != nil && !errors.Is(err, service.ErrDraftNotFound) {
			h.logger.WithError(err).WithField("draft_id", req.DraftID).Warn("failed to discard estimation draft")
		}
	}

	c.JSON(http.StatusCreated, created)
}

func (h *MealHandler) UpdateMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req types.MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	meal, err := mealFromRequest(userID, &req)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	updated, err := h.mealService.Update(c.Request.Context(), userID, id, meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MealHandler) UpdateMacros(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req types.UpdateMacrosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}
	if req.Empty() {
		badRequest(c, "at least one macro is required", nil)
		return
	}

	updated, err := h.mealService.UpdateMacros(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.mealService.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportMeals uploads the selected range and returns a download link
func (h *MealHandler) ExportMeals(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}
	if h.exportService == nil {
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "meal export is not configured"})
		return
	}

	var q types.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "start date is required", err)
		return
	}
	rng, err := parseRange(q)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	export, err := h.exportService.ExportMeals(c.Request.Context(), userID, rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, export)
}

func mealFromRequest(userID uuid.UUID, req *types.MealRequest) (*models.Meal, error) {
	date, err := nutrition.ParseDay(req.Date)
	if err != nil {
		return nil, errors.New("invalid date, expected YYYY-MM-DD")
	}
	return &models.Meal{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Calories:    *req.Calories,
		Protein:     *req.Protein,
		Carbs:       *req.Carbs,
		Fats:        *req.Fats,
		Analysis:    req.Analysis,
	}, nil
}
