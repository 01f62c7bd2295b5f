package service

import "errors"

var (
	ErrMealNotFound       = errors.New("meal not found")
	ErrInvalidMeal        = errors.New("invalid meal")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrDraftNotFound      = errors.New("estimation draft not found")
)
