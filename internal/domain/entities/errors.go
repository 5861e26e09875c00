package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidAuthUID = errors.New("invalid auth uid")

	// Summary errors
	ErrSummaryNotFound    = errors.New("summary not found")
	ErrInvalidContextType = errors.New("invalid context type")
	ErrInvalidUserRole    = errors.New("invalid user role")
	ErrInvalidAction      = errors.New("invalid refine action")
	ErrEmptyDocument      = errors.New("document contains no text")

	// Generic errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
