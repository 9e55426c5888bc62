// Package memory is an in-process implementation of every repository.
// It is the backend for DB_DRIVER=memory and for use case tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// New returns a fresh set of empty in-memory repositories
func New() *repositories.Repositories {
	return &repositories.Repositories{
		Users:         NewUserRepository(),
		Transcripts:   NewTranscriptRepository(),
		Minutes:       NewMinutesRepository(),
		Agendas:       NewAgendaRepository(),
		ActionItems:   NewActionItemRepository(),
		Meetings:      NewMeetingRepository(),
		Notifications: NewNotificationRepository(),
		Usage:         NewUsageRepository(),
	}
}

// table is a user-scoped map guarded by a mutex
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]map[string]*T
	seq  int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]map[string]*T)}
}

func (t *table[T]) put(userID, id string, v *T) {
	if t.rows[userID] == nil {
		t.rows[userID] = make(map[string]*T)
	}
	t.rows[userID][id] = v
}

func (t *table[T]) get(userID, id string) *T {
	if t.rows[userID] == nil {
		return nil
	}
	return t.rows[userID][id]
}

func (t *table[T]) del(userID, id string) bool {
	if t.rows[userID] == nil {
		return false
	}
	if _, ok := t.rows[userID][id]; !ok {
		return false
	}
	delete(t.rows[userID], id)
	return true
}

func (t *table[T]) all(userID string) []*T {
	out := make([]*T, 0, len(t.rows[userID]))
	for _, v := range t.rows[userID] {
		out = append(out, v)
	}
	return out
}

// newestFirst sorts by creation time descending, breaking ties by insertion order
func newestFirst[T any](items []*T, created func(*T) time.Time, order func(*T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return order(items[i]) > order(items[j])
	})
}

func limitSlice[T any](items []*T, limit int) []*T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
