package memory

import (
	"context"
	"sort"
	"time"

	"gorm.io/datatypes"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MeetingRepository is the in-memory meeting store
type MeetingRepository struct {
	t *table[entities.Meeting]
}

// NewMeetingRepository creates an empty meeting store
func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{t: newTable[entities.Meeting]()}
}

func cloneMeeting(m entities.Meeting) *entities.Meeting {
	m.CalendarEventIDs = append(datatypes.JSONSlice[string]{}, m.CalendarEventIDs...)
	return &m
}

func (r *MeetingRepository) Create(ctx context.Context, m *entities.Meeting) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	r.t.put(m.UserID, m.ID, cloneMeeting(*m))
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, userID, id string) (*entities.Meeting, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	m := r.t.get(userID, id)
	if m == nil {
		return nil, nil
	}
	return cloneMeeting(*m), nil
}

// ListByUser orders by meeting date ascending
func (r *MeetingRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	r.t.mu.RLock()
	defer r.t.mu.RUnlock()
	rows := r.t.all(userID)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].MeetingDate != rows[j].MeetingDate {
			return rows[i].MeetingDate < rows[j].MeetingDate
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	out := make([]*entities.Meeting, 0, len(rows))
	for _, m := range rows {
		out = append(out, cloneMeeting(*m))
	}
	return out, nil
}

func (r *MeetingRepository) Update(ctx context.Context, m *entities.Meeting) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if r.t.get(m.UserID, m.ID) == nil {
		return entities.NewNotFound("meeting", m.ID)
	}
	m.UpdatedAt = time.Now().UTC()
	r.t.put(m.UserID, m.ID, cloneMeeting(*m))
	return nil
}

func (r *MeetingRepository) UpdateStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	m := r.t.get(userID, id)
	if m == nil {
		return false, nil
	}
	m.Status = status
	if status == entities.MeetingProcessing {
		m.AutomationUsed = true
	}
	m.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return r.t.del(userID, id), nil
}
