package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"gorm.io/datatypes"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// AgendaRepository is the in-memory agenda store
type AgendaRepository struct {
	t   *table[entities.Agenda]
	seq map[string]int
}

// NewAgendaRepository creates an empty agenda store
func NewAgendaRepository() *AgendaRepository {
	return &AgendaRepository{t: newTable[entities.Agenda](), seq: make(map[string]int)}
}

func cloneAgenda(a entities.Agenda) *entities.Agenda {
	a.Items = append(datatypes.JSONSlice[entities.AgendaItem]{}, a.Items...)
	a.Topics = append(datatypes.JSONSlice[string]{}, a.Topics...)
	a.DiscussionPoints = append(datatypes.JSONSlice[string]{}, a.DiscussionPoints...)
	return &a
}

func (r *AgendaRepository) CreateNext(ctx context.Context, a *entities.Agenda) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	r.seq[a.UserID]++
	a.ID = strconv.Itoa(r.seq[a.UserID])
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	r.t.put(a.UserID, a.ID, cloneAgenda(*a))
	return nil
}

func (r *AgendaRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	return int64(len(r.t.rows[userID])), nil
}

func (r *AgendaRepository) GetByID(ctx context.Context, userID, id string) (*entities.Agenda, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	a := r.t.get(userID, id)
	if a == nil {
		return nil, nil
	}
	return cloneAgenda(*a), nil
}

func (r *AgendaRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Agenda, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.t.all(userID)
	sort.Slice(rows, func(i, j int) bool {
		ai, _ := strconv.Atoi(rows[i].ID)
		aj, _ := strconv.Atoi(rows[j].ID)
		return ai > aj
	})
	out := make([]*entities.Agenda, 0, len(rows))
	for _, a := range rows {
		out = append(out, cloneAgenda(*a))
	}
	return out, nil
}

func (r *AgendaRepository) Update(ctx context.Context, a *entities.Agenda) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.get(a.UserID, a.ID) == nil {
		return entities.NewNotFound("agenda", a.ID)
	}
	a.UpdatedAt = time.Now().UTC()
	r.t.put(a.UserID, a.ID, cloneAgenda(*a))
	return nil
}

func (r *AgendaRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return r.t.del(userID, id), nil
}
