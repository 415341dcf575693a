package usecase

import "errors"

var (
	ErrUnknownBuilding    = errors.New("unknown building")
	ErrInvalidSignup      = errors.New("email and password are required")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
