package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func setupErrorRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(buf)

	r := gin.New()
	r.Use(ErrorHandler(logger))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/error", func(c *gin.Context) {
		c.Status(http.StatusBadGateway)
		_ = c.Error(errors.New("upstream failed"))
	})
	r.GET("/handled", func(c *gin.Context) {
		_ = c.Error(errors.New("store failed"))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
	})
	return r
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		path     string
		wantCode int
		wantBody string
		wantLog  string
	}{
		{path: "/panic", wantCode: http.StatusInternalServerError, wantBody: `{"error":"Internal Server Error"}`, wantLog: "recovered from panic"},
		{path: "/error", wantCode: http.StatusBadGateway, wantBody: `{"error":"upstream failed"}`, wantLog: "upstream failed"},
		{path: "/handled", wantCode: http.StatusInternalServerError, wantBody: `{"error":"failed to list meals"}`, wantLog: "store failed"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			r := setupErrorRouter(&buf)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
