package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// ActionItemRepository persists action items, one document per item
type ActionItemRepository interface {
	Create(ctx context.Context, item *entities.ActionItem) error
	GetByID(ctx context.Context, userID, id string) (*entities.ActionItem, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.ActionItem, error)
	ListByMinutes(ctx context.Context, userID, minutesID string) ([]*entities.ActionItem, error)
	Update(ctx context.Context, item *entities.ActionItem) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
