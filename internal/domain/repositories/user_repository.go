package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/docbrief/docbrief/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByAuthUID finds a user by the identity provider subject
	FindByAuthUID(ctx context.Context, authUID string) (*entities.User, error)
}
