package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MinutesRepository persists minutes in postgres
type MinutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *gorm.DB) *MinutesRepository {
	return &MinutesRepository{db: db}
}

func (r *MinutesRepository) Create(ctx context.Context, m *entities.Minutes) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create minutes: %w", err)
	}
	return nil
}

func (r *MinutesRepository) GetByID(ctx context.Context, userID, id string) (*entities.Minutes, error) {
	var m entities.Minutes
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get minutes: %w", err)
	}
	return &m, nil
}

func (r *MinutesRepository) GetLatest(ctx context.Context, userID string) (*entities.Minutes, error) {
	var m entities.Minutes
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest minutes: %w", err)
	}
	return &m, nil
}

func (r *MinutesRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Minutes, error) {
	var out []*entities.Minutes
	query := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	return out, nil
}

func (r *MinutesRepository) SetActionItems(ctx context.Context, userID, id string, refs []entities.ActionItemRef) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Minutes{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"action_items": datatypes.JSONSlice[entities.ActionItemRef](refs),
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to set action items: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.NewNotFound("minutes", id)
	}
	return nil
}
