package memory

import (
	"context"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

type notificationRow struct {
	v   entities.Notification
	seq int64
}

// NotificationRepository is the in-memory notification store
type NotificationRepository struct {
	t *table[notificationRow]
}

// NewNotificationRepository creates an empty notification store
func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{t: newTable[notificationRow]()}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entities.Notification) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	r.t.seq++
	r.t.put(n.UserID, n.ID, &notificationRow{v: *n, seq: r.t.seq})
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Notification, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.t.all(userID)
	newestFirst(rows, func(x *notificationRow) time.Time { return x.v.CreatedAt }, func(x *notificationRow) int64 { return x.seq })
	rows = limitSlice(rows, limit)
	out := make([]*entities.Notification, 0, len(rows))
	for _, row := range rows {
		v := row.v
		out = append(out, &v)
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	row := r.t.get(userID, id)
	if row == nil {
		return false, nil
	}
	row.v.Read = true
	return true, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	var n int64
	for _, row := range r.t.all(userID) {
		if !row.v.Read {
			row.v.Read = true
			n++
		}
	}
	return n, nil
}
