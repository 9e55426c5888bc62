package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MinutesRepository stores minutes documents
type MinutesRepository struct {
	col *mongo.Collection
}

// NewMinutesRepository creates a new minutes repository
func NewMinutesRepository(db *mongo.Database) *MinutesRepository {
	return &MinutesRepository{col: db.Collection(MinutesCollection)}
}

func (r *MinutesRepository) Create(ctx context.Context, m *entities.Minutes) error {
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create minutes: %w", err)
	}
	return nil
}

func (r *MinutesRepository) GetByID(ctx context.Context, userID, id string) (*entities.Minutes, error) {
	return findOne[entities.Minutes](ctx, r.col, bson.M{"_id": id, "user_id": userID})
}

func (r *MinutesRepository) GetLatest(ctx context.Context, userID string) (*entities.Minutes, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findOne[entities.Minutes](ctx, r.col, bson.M{"user_id": userID}, opts)
}

func (r *MinutesRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.Minutes, error) {
	return findAll[entities.Minutes](ctx, r.col, bson.M{"user_id": userID}, newestFirst(limit))
}

func (r *MinutesRepository) SetActionItems(ctx context.Context, userID, id string, refs []entities.ActionItemRef) error {
	if refs == nil {
		refs = []entities.ActionItemRef{}
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"action_items": refs, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("failed to set action items: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.NewNotFound("minutes", id)
	}
	return nil
}
