package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// The WHERE on the conflict branch makes the check and the increment one statement.
// No row comes back when the counter is already at the limit.
const incrementIfBelowSQL = `
INSERT INTO usage_counters (user_id, kind, period, count, updated_at)
VALUES (?, ?, ?, 1, NOW())
ON CONFLICT (user_id, kind, period)
DO UPDATE SET count = usage_counters.count + 1, updated_at = NOW()
WHERE usage_counters.count < ?
RETURNING count`

const incrementSQL = `
INSERT INTO usage_counters (user_id, kind, period, count, updated_at)
VALUES (?, ?, ?, 1, NOW())
ON CONFLICT (user_id, kind, period)
DO UPDATE SET count = usage_counters.count + 1, updated_at = NOW()
RETURNING count`

// UsageRepository stores monthly counters in postgres
type UsageRepository struct {
	db *gorm.DB
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db: db}
}

func (r *UsageRepository) Get(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	var counter entities.UsageCounter
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND period = ?", userID, kind, period).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}
	return counter.Count, nil
}

func (r *UsageRepository) IncrementIfBelow(ctx context.Context, userID string, kind entities.QuotaKind, period string, limit int) (int, bool, error) {
	if limit <= 0 {
		used, err := r.Get(ctx, userID, kind, period)
		return used, false, err
	}
	var counts []int
	if err := r.db.WithContext(ctx).Raw(incrementIfBelowSQL, userID, kind, period, limit).Scan(&counts).Error; err != nil {
		return 0, false, fmt.Errorf("failed to increment usage: %w", err)
	}
	if len(counts) == 0 {
		used, err := r.Get(ctx, userID, kind, period)
		return used, false, err
	}
	return counts[0], true, nil
}

func (r *UsageRepository) Increment(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	var counts []int
	if err := r.db.WithContext(ctx).Raw(incrementSQL, userID, kind, period).Scan(&counts).Error; err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	if len(counts) == 0 {
		return 0, errors.New("increment returned no row")
	}
	return counts[0], nil
}

func (r *UsageRepository) Decrement(ctx context.Context, userID string, kind entities.QuotaKind, period string) error {
	err := r.db.WithContext(ctx).
		Model(&entities.UsageCounter{}).
		Where("user_id = ? AND kind = ? AND period = ? AND count > 0", userID, kind, period).
		Updates(map[string]interface{}{
			"count":      gorm.Expr("count - 1"),
			"updated_at": gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to decrement usage: %w", err)
	}
	return nil
}
