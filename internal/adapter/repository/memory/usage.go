package memory

import (
	"context"
	"sync"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

type usageKey struct {
	user   string
	kind   entities.QuotaKind
	period string
}

// UsageRepository is the in-memory usage counter store
type UsageRepository struct {
	mu     sync.Mutex
	counts map[usageKey]int
}

// NewUsageRepository creates an empty counter store
func NewUsageRepository() *UsageRepository {
	return &UsageRepository{counts: make(map[usageKey]int)}
}

func (r *UsageRepository) Get(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[usageKey{userID, kind, period}], nil
}

func (r *UsageRepository) IncrementIfBelow(ctx context.Context, userID string, kind entities.QuotaKind, period string, limit int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := usageKey{userID, kind, period}
	if r.counts[k] >= limit {
		return r.counts[k], false, nil
	}
	r.counts[k]++
	return r.counts[k], true, nil
}

func (r *UsageRepository) Increment(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := usageKey{userID, kind, period}
	r.counts[k]++
	return r.counts[k], nil
}

func (r *UsageRepository) Decrement(ctx context.Context, userID string, kind entities.QuotaKind, period string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := usageKey{userID, kind, period}
	if r.counts[k] > 0 {
		r.counts[k]--
	}
	return nil
}
