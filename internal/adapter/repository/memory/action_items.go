package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

type actionItemRow struct {
	v   entities.ActionItem
	seq int64
}

// ActionItemRepository is the in-memory action item store
type ActionItemRepository struct {
	t *table[actionItemRow]
}

// NewActionItemRepository creates an empty action item store
func NewActionItemRepository() *ActionItemRepository {
	return &ActionItemRepository{t: newTable[actionItemRow]()}
}

func cloneActionItem(a entities.ActionItem) *entities.ActionItem {
	if a.StartTime != nil {
		st := *a.StartTime
		a.StartTime = &st
	}
	if a.GoogleEventID != nil {
		id := *a.GoogleEventID
		a.GoogleEventID = &id
	}
	return &a
}

// inOrder returns rows in insertion order
func (r *ActionItemRepository) inOrder(userID string) []*actionItemRow {
	rows := r.t.all(userID)
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	return rows
}

func (r *ActionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	r.t.seq++
	r.t.put(item.UserID, item.ID, &actionItemRow{v: *cloneActionItem(*item), seq: r.t.seq})
	return nil
}

func (r *ActionItemRepository) GetByID(ctx context.Context, userID, id string) (*entities.ActionItem, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	row := r.t.get(userID, id)
	if row == nil {
		return nil, nil
	}
	return cloneActionItem(row.v), nil
}

func (r *ActionItemRepository) ListByUser(ctx context.Context, userID string) ([]*entities.ActionItem, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.inOrder(userID)
	out := make([]*entities.ActionItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, cloneActionItem(row.v))
	}
	return out, nil
}

func (r *ActionItemRepository) ListByMinutes(ctx context.Context, userID, minutesID string) ([]*entities.ActionItem, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	out := []*entities.ActionItem{}
	for _, row := range r.inOrder(userID) {
		if row.v.MinutesID == minutesID {
			out = append(out, cloneActionItem(row.v))
		}
	}
	return out, nil
}

func (r *ActionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	row := r.t.get(item.UserID, item.ID)
	if row == nil {
		return entities.NewNotFound("action item", item.ID)
	}
	item.UpdatedAt = time.Now().UTC()
	row.v = *cloneActionItem(*item)
	return nil
}

func (r *ActionItemRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return r.t.del(userID, id), nil
}
