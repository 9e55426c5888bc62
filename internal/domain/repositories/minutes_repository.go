package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MinutesRepository persists minutes records
type MinutesRepository interface {
	Create(ctx context.Context, m *entities.Minutes) error
	GetByID(ctx context.Context, userID, id string) (*entities.Minutes, error)

	// GetLatest returns the most recently created minutes of a user
	GetLatest(ctx context.Context, userID string) (*entities.Minutes, error)

	// ListByUser returns newest first; limit <= 0 means no limit
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Minutes, error)

	// SetActionItems replaces the embedded action item summaries
	SetActionItems(ctx context.Context, userID, id string, refs []entities.ActionItemRef) error
}
