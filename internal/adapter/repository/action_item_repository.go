package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// ActionItemRepository persists action items in postgres
type ActionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *gorm.DB) *ActionItemRepository {
	return &ActionItemRepository{db: db}
}

func (r *ActionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create action item: %w", err)
	}
	return nil
}

func (r *ActionItemRepository) GetByID(ctx context.Context, userID, id string) (*entities.ActionItem, error) {
	var item entities.ActionItem
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get action item: %w", err)
	}
	return &item, nil
}

func (r *ActionItemRepository) ListByUser(ctx context.Context, userID string) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

func (r *ActionItemRepository) ListByMinutes(ctx context.Context, userID, minutesID string) ([]*entities.ActionItem, error) {
	var items []*entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND minutes_id = ?", userID, minutesID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list action items by minutes: %w", err)
	}
	return items, nil
}

func (r *ActionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	res := r.db.WithContext(ctx).
		Model(&entities.ActionItem{}).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Select("task", "owner", "deadline", "duration_minutes", "start_time", "google_event_id", "status", "updated_at").
		Updates(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update action item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.NewNotFound("action item", item.ID)
	}
	return nil
}

func (r *ActionItemRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.ActionItem{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete action item: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
