package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// AgendaRepository persists agendas keyed by (user_id, sequence id)
type AgendaRepository interface {
	// CreateNext assigns a.ID from a per-user sequence and inserts it.
	// Ids only grow: deleting an agenda never frees its number.
	CreateNext(ctx context.Context, a *entities.Agenda) error

	CountByUser(ctx context.Context, userID string) (int64, error)
	GetByID(ctx context.Context, userID, id string) (*entities.Agenda, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.Agenda, error)
	Update(ctx context.Context, a *entities.Agenda) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
