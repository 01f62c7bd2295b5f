package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/nutrition"
	"github.com/pageza/macro-tracker/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, claims *types.TokenClaims) error
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	CurrentSession(ctx context.Context, claims *types.TokenClaims) (*Session, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateTarget(ctx context.Context, userID uuid.UUID, target *int) (*models.Profile, error)
}

// IMealService defines the interface for meal storage. Every operation is
// scoped to the owning user.
type IMealService interface {
	List(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) ([]models.Meal, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.Meal, error)
	Create(ctx context.Context, meal *models.Meal) (*models.Meal, error)
	Update(ctx context.Context, userID, id uuid.UUID, meal *models.Meal) (*models.Meal, error)
	UpdateMacros(ctx context.Context, userID, id uuid.UUID, req *types.UpdateMacrosRequest) (*models.Meal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// ISummaryService defines the interface for day/week/range summaries
type ISummaryService interface {
	Summarize(ctx context.Context, userID uuid.UUID, opts SummaryOptions) (*Summary, error)
}

// IEstimationService defines the interface for meal nutrient estimation
type IEstimationService interface {
	Estimate(ctx context.Context, userID uuid.UUID, description string) (*EstimationDraft, error)
	GetDraft(ctx context.Context, userID uuid.UUID, id string) (*EstimationDraft, error)
	DiscardDraft(ctx context.Context, userID uuid.UUID, id string) error
}

// IExportService defines the interface for meal exports
type IExportService interface {
	ExportMeals(ctx context.Context, userID uuid.UUID, rng nutrition.DateRange) (*Export, error)
}

// DraftStore persists estimation drafts between estimate and confirm
type DraftStore interface {
	Save(ctx context.Context, draft *EstimationDraft) error
	Get(ctx context.Context, id string) (*EstimationDraft, error)
	Delete(ctx context.Context, id string) error
}

// RevocationStore remembers signed-out token IDs until they expire
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ObjectStore uploads export snapshots and hands out download links
type ObjectStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}
