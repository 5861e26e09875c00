package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/docbrief/docbrief/internal/domain/entities"
)

// SummaryRepository implements the summary repository interface using GORM
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{
		db: db,
	}
}

// Create persists a new summary record
func (r *SummaryRepository) Create(ctx context.Context, summary *entities.Summary) error {
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	return nil
}

// FindByID finds a summary owned by the given user
func (r *SummaryRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entities.Summary, error) {
	var summary entities.Summary
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrSummaryNotFound
		}
		return nil, fmt.Errorf("failed to find summary: %w", err)
	}
	return &summary, nil
}

// List returns the user's summaries, newest first
func (r *SummaryRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Summary, error) {
	var summaries []*entities.Summary
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	return summaries, nil
}

// Count returns the total number of summaries owned by the user
func (r *SummaryRepository) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Summary{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return total, nil
}

// Update persists changes to an existing record
func (r *SummaryRepository) Update(ctx context.Context, summary *entities.Summary) error {
	if err := r.db.WithContext(ctx).Save(summary).Error; err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}
	return nil
}

// Delete removes a summary owned by the given user
func (r *SummaryRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Summary{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete summary: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrSummaryNotFound
	}
	return nil
}
