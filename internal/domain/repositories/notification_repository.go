package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// NotificationRepository persists the notification trail
type NotificationRepository interface {
	Create(ctx context.Context, n *entities.Notification) error

	// ListByUser returns newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Notification, error)

	MarkRead(ctx context.Context, userID, id string) (bool, error)

	// MarkAllRead returns the number of notifications flipped to read
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
