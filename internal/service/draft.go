package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DraftTTL is how long an unconfirmed estimate stays retrievable
const DraftTTL = 24 * time.Hour

const draftKeyPrefix = "estimation_draft:"

// EstimationDraft is an estimate waiting for the user to confirm or edit it
type EstimationDraft struct {
	ID          string    `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	Calories    int       `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fats        float64   `json:"fats"`
	// Missing lists the macros the estimate did not contain
	Missing   []string  `json:"missing"`
	Analysis  string    `json:"analysis"`
	CreatedAt time.Time `json:"created_at"`
}

// RedisDraftStore stores drafts as JSON in redis
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

var _ DraftStore = (*RedisDraftStore)(nil)

// NewRedisDraftStore creates a draft store with the default TTL
func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client, ttl: DraftTTL}
}

// Save saves a draft to Redis
func (s *RedisDraftStore) Save(ctx context.Context, draft *EstimationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKeyPrefix+draft.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Get retrieves a draft from Redis
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*EstimationDraft, error) {
	data, err := s.redis.Get(ctx, draftKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft EstimationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft from Redis
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
