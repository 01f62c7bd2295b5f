package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macro-tracker/backend/internal/middleware"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	profile, err := h.profileService.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	profile, err := h.profileService.UpdateTarget(c.Request.Context(), userID, req.TargetCalories)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
