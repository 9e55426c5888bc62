package memory

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

type minutesRow struct {
	v   entities.Minutes
	seq int64
}

// MinutesRepository is the in-memory minutes store
type MinutesRepository struct {
	t *table[minutesRow]
}

// NewMinutesRepository creates an empty minutes store
func NewMinutesRepository() *MinutesRepository {
	return &MinutesRepository{t: newTable[minutesRow]()}
}

func cloneMinutes(m entities.Minutes) *entities.Minutes {
	m.Decisions = append(datatypes.JSONSlice[string]{}, m.Decisions...)
	m.FutureDiscussionPoints = append(datatypes.JSONSlice[string]{}, m.FutureDiscussionPoints...)
	m.ActionItems = append(datatypes.JSONSlice[entities.ActionItemRef]{}, m.ActionItems...)
	return &m
}

func (r *MinutesRepository) Create(ctx context.Context, m *entities.Minutes) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.t.seq++
	r.t.put(m.UserID, m.ID, &minutesRow{v: *cloneMinutes(*m), seq: r.t.seq})
	return nil
}

func (r *MinutesRepository) GetByID(ctx context.Context, userID, id string) (*entities.Minutes, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	row := r.t.get(userID, id)
	if row == nil {
		return nil, nil
	}
	return cloneMinutes(row.v), nil
}

func (r *MinutesRepository) sorted(userID string) []*minutesRow {
	rows := r.t.all(userID)
	newestFirst(rows, func(x *minutesRow) time.Time { return x.v.CreatedAt }, func(x *minutesRow) int64 { return x.seq })
	return rows
}

func (r *MinutesRepository) GetLatest(ctx context.Context, userID string) (*entities.Minutes, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.sorted(userID)
	if len(rows) == 0 {
		return nil, nil
	}
	return cloneMinutes(rows[0].v), nil
}

func (r *MinutesRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Minutes, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := limitSlice(r.sorted(userID), limit)
	out := make([]*entities.Minutes, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneMinutes(row.v))
	}
	return out, nil
}

func (r *MinutesRepository) SetActionItems(ctx context.Context, userID, id string, refs []entities.ActionItemRef) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	row := r.t.get(userID, id)
	if row == nil {
		return entities.NewNotFound("minutes", id)
	}
	row.v.ActionItems = append(datatypes.JSONSlice[entities.ActionItemRef]{}, refs...)
	row.v.UpdatedAt = time.Now().UTC()
	return nil
}
