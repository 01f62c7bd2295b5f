package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/macro-tracker/backend/internal/types"
)

// ErrorHandler recovers panics into a JSON 500 and logs errors handlers
// attached with c.Error
func ErrorHandler(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"panic":  err,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		for _, e := range c.Errors {
			logger.WithError(e.Err).WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
				"status": c.Writer.Status(),
			}).Error("request error")
		}

		// handlers that only attached an error still answer with JSON
		if len(c.Errors) > 0 && !c.Writer.Written() {
			status := c.Writer.Status()
			if status < http.StatusBadRequest {
				status = http.StatusInternalServerError
			}
			c.JSON(status, types.ErrorResponse{Error: c.Errors.Last().Error()})
		}
	}
}
