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

// ActionItemRepository stores one document per action item
type ActionItemRepository struct {
	col *mongo.Collection
}

// NewActionItemRepository creates a new action item repository
func NewActionItemRepository(db *mongo.Database) *ActionItemRepository {
	return &ActionItemRepository{col: db.Collection(ActionItemsCollection)}
}

func oldestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
}

func (r *ActionItemRepository) Create(ctx context.Context, item *entities.ActionItem) error {
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to create action item: %w", err)
	}
	return nil
}

func (r *ActionItemRepository) GetByID(ctx context.Context, userID, id string) (*entities.ActionItem, error) {
	return findOne[entities.ActionItem](ctx, r.col, bson.M{"_id": id, "user_id": userID})
}

func (r *ActionItemRepository) ListByUser(ctx context.Context, userID string) ([]*entities.ActionItem, error) {
	return findAll[entities.ActionItem](ctx, r.col, bson.M{"user_id": userID}, oldestFirst())
}

func (r *ActionItemRepository) ListByMinutes(ctx context.Context, userID, minutesID string) ([]*entities.ActionItem, error) {
	return findAll[entities.ActionItem](ctx, r.col, bson.M{"user_id": userID, "minutes_id": minutesID}, oldestFirst())
}

func (r *ActionItemRepository) Update(ctx context.Context, item *entities.ActionItem) error {
	item.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID, "user_id": item.UserID}, item)
	if err != nil {
		return fmt.Errorf("failed to update action item: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.NewNotFound("action item", item.ID)
	}
	return nil
}

func (r *ActionItemRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete action item: %w", err)
	}
	return res.DeletedCount > 0, nil
}
