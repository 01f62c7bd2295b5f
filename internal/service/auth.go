package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/macro-tracker/backend/internal/models"
	"github.com/pageza/macro-tracker/backend/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is the lifetime of a session token
const TokenTTL = 24 * time.Hour

// Session is a signed-in user and the token that proves it
type Session struct {
	Token     string       `json:"token,omitempty"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	revoked   RevocationStore
	events    *AuthEvents
	logger    *logrus.Logger
}

// Ensure AuthService implements IAuthService
var _ IAuthService = (*AuthService)(nil)

func NewAuthService(db *gorm.DB, jwtSecret string, revoked RevocationStore, events *AuthEvents, logger *logrus.Logger) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		revoked:   revoked,
		events:    events,
		logger:    logger,
	}
}

// SignUp creates an account with an empty profile and signs it in
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Email: email, PasswordHash: string(hashedPassword)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserExists
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		_, err := getOrCreateProfile(tx, user.ID)
		return err
	})
	// a concurrent sign-up can pass the count and lose on the unique index
	if errors.Is(err, ErrUserExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.WithField("user_id", user.ID).Info("user signed up")
	return s.startSession(&user)
}

// SignIn checks the credentials and issues a new session token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.startSession(&user)
}

// SignOut revokes the presented token until it expires
func (s *AuthService) SignOut(ctx context.Context, claims *types.TokenClaims) error {
	expiresAt := time.Now().Add(TokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return err
	}

	s.events.Publish(AuthEvent{Type: AuthEventSignedOut, UserID: claims.UserID})
	s.logger.WithField("user_id", claims.UserID).Info("user signed out")
	return nil
}

// ValidateToken parses a session token and rejects revoked ones
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// CurrentSession returns the user behind a validated token
func (s *AuthService) CurrentSession(ctx context.Context, claims *types.TokenClaims) (*Session, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	session := &Session{User: &user}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *AuthService) startSession(user *models.User) (*Session, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: user.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.events.Publish(AuthEvent{Type: AuthEventSignedIn, UserID: user.ID})
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
