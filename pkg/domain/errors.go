package domain

import "errors"

// Authentication and authorization errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
)

// Resource errors
var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNoteNotFound   = errors.New("note not found")
)

// Business-rule errors
var (
	ErrNoteFieldsRequired = errors.New("title and content are required")
	ErrQuotaExceeded      = errors.New("free plan note limit reached")
	ErrTenantAlreadyPro   = errors.New("tenant already on Pro plan")
)
