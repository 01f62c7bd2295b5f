package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macro-tracker/backend/config"
	"github.com/pageza/macro-tracker/backend/internal/mocks"
	"github.com/pageza/macro-tracker/backend/internal/testhelpers"
)

func newTestServer(t *testing.T) *Server {
	db := testhelpers.SetupSQLiteDatabase(t)
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		Environment: config.Test,
		ServerHost:  "127.0.0.1",
		ServerPort:  "0",
		CORSOrigins: []string{"http://localhost:5173"},
		JWTSecret:   "test-secret",
	}
	return New(cfg, Dependencies{
		DB:        db,
		Redis:     rdb,
		Estimator: new(mocks.MockEstimator),
		Logger:    testhelpers.NewTestLogger(),
	})
}

func TestNew(t *testing.T) {
	srv := newTestServer(t)
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStartStopsOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
