package memory

import (
	"context"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

type transcriptRow struct {
	v   entities.Transcript
	seq int64
}

// TranscriptRepository is the in-memory transcript store
type TranscriptRepository struct {
	t *table[transcriptRow]
}

// NewTranscriptRepository creates an empty transcript store
func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{t: newTable[transcriptRow]()}
}

func (r *TranscriptRepository) Create(ctx context.Context, t *entities.Transcript) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	r.t.seq++
	r.t.put(t.UserID, t.ID, &transcriptRow{v: *t, seq: r.t.seq})
	return nil
}

func (r *TranscriptRepository) GetByID(ctx context.Context, userID, id string) (*entities.Transcript, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	row := r.t.get(userID, id)
	if row == nil {
		return nil, nil
	}
	v := row.v
	return &v, nil
}

func (r *TranscriptRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Transcript, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.t.all(userID)
	newestFirst(rows, func(x *transcriptRow) time.Time { return x.v.CreatedAt }, func(x *transcriptRow) int64 { return x.seq })
	rows = limitSlice(rows, limit)
	out := make([]*entities.Transcript, 0, len(rows))
	for _, row := range rows {
		v := row.v
		out = append(out, &v)
	}
	return out, nil
}

func (r *TranscriptRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return r.t.del(userID, id), nil
}
