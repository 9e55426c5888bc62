package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// UsageRepository stores monthly usage counters
type UsageRepository interface {
	// Get returns the current count, zero when no counter exists
	Get(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error)

	// IncrementIfBelow atomically increments the counter when it is below limit.
	// It returns the count after the call and whether the increment happened.
	IncrementIfBelow(ctx context.Context, userID string, kind entities.QuotaKind, period string, limit int) (int, bool, error)

	// Increment increments without a limit (unlimited tiers)
	Increment(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error)

	// Decrement gives one unit back. The counter never drops below zero.
	Decrement(ctx context.Context, userID string, kind entities.QuotaKind, period string) error
}
