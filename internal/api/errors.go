package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macro-tracker/backend/internal/estimation"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

// respondError maps service errors onto HTTP statuses. Server-side failures
// are attached to the context for ErrorHandler to log.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, service.ErrMealNotFound), errors.Is(err, service.ErrDraftNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidMeal), errors.Is(err, service.ErrInvalidProfile):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenRevoked):
		status, msg = http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, service.ErrUserExists):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, estimation.ErrEstimationFailed):
		status, msg = http.StatusBadGateway, "failed to calculate meal nutrients, please try again"
	}

	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, types.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string, err error) {
	resp := types.ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
}
