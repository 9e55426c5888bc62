package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MeetingRepository persists meetings
type MeetingRepository interface {
	Create(ctx context.Context, m *entities.Meeting) error
	GetByID(ctx context.Context, userID, id string) (*entities.Meeting, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Meeting, error)
	Update(ctx context.Context, m *entities.Meeting) error

	// UpdateStatus sets the status and returns false when no meeting matched
	UpdateStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) (bool, error)

	Delete(ctx context.Context, userID, id string) (bool, error)
}
