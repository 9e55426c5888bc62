package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// TranscriptRepository persists transcripts. Every read is scoped by user.
type TranscriptRepository interface {
	Create(ctx context.Context, t *entities.Transcript) error
	GetByID(ctx context.Context, userID, id string) (*entities.Transcript, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Transcript, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}
