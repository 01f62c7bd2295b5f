package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping redis test")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	client := redis.NewClient(&redis.Options{Addr: host + ":" + port, Password: os.Getenv("REDIS_PASSWORD")})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisDraftStore(t *testing.T) {
	client := setupRedis(t)
	store := service.NewRedisDraftStore(client)
	ctx := context.Background()

	draft := &service.EstimationDraft{
		ID:          uuid.NewString(),
		UserID:      uuid.New(),
		Description: "two eggs",
		Calories:    150,
		Protein:     12,
		Missing:     []string{"carbs"},
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Save(ctx, draft))

	ttl, err := client.TTL(ctx, "estimation_draft:"+draft.ID).Result()
	require.NoError(t, err)
	assert.InDelta(t, service.DraftTTL.Seconds(), ttl.Seconds(), 5)

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	require.NoError(t, store.Delete(ctx, draft.ID))
	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, service.ErrDraftNotFound)
}

func TestRedisRevocationStore(t *testing.T) {
	client := setupRedis(t)
	store := service.NewRedisRevocationStore(client)
	ctx := context.Background()
	tokenID := uuid.NewString()

	revoked, err := store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, tokenID, time.Now().Add(time.Minute)))
	revoked, err = store.IsRevoked(ctx, tokenID)
	require.NoError(t, err)
	assert.True(t, revoked)

	// already expired tokens need no entry
	expiredID := uuid.NewString()
	require.NoError(t, store.Revoke(ctx, expiredID, time.Now().Add(-time.Minute)))
	revoked, err = store.IsRevoked(ctx, expiredID)
	require.NoError(t, err)
	assert.False(t, revoked)
}
