package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/docbrief/docbrief/internal/domain/entities"
)

// SummaryRepository defines the interface for summary data access.
// All reads and writes are scoped to the owning user.
type SummaryRepository interface {
	// Create persists a new summary record
	Create(ctx context.Context, summary *entities.Summary) error

	// FindByID finds a summary owned by the given user
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Summary, error)

	// List returns the user's summaries, newest first
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Summary, error)

	// Count returns the total number of summaries owned by the user
	Count(ctx context.Context, userID uuid.UUID) (int64, error)

	// Update persists changes to an existing record
	Update(ctx context.Context, summary *entities.Summary) error

	// Delete removes a summary owned by the given user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
