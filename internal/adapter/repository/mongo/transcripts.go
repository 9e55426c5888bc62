package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// TranscriptRepository stores transcripts
type TranscriptRepository struct {
	col *mongo.Collection
}

// NewTranscriptRepository creates a new transcript repository
func NewTranscriptRepository(db *mongo.Database) *TranscriptRepository {
	return &TranscriptRepository{col: db.Collection(TranscriptsCollection)}
}

func (r *TranscriptRepository) Create(ctx context.Context, t *entities.Transcript) error {
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TranscriptRepository) GetByID(ctx context.Context, userID, id string) (*entities.Transcript, error) {
	return findOne[entities.Transcript](ctx, r.col, bson.M{"_id": id, "user_id": userID})
}

func (r *TranscriptRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Transcript, error) {
	return findAll[entities.Transcript](ctx, r.col, bson.M{"user_id": userID}, newestFirst(limit))
}

func (r *TranscriptRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
