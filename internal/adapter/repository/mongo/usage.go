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

// UsageRepository stores monthly counters, unique on (user_id, kind, period)
type UsageRepository struct {
	col *mongo.Collection
}

// NewUsageRepository creates a new usage repository
func NewUsageRepository(db *mongo.Database) *UsageRepository {
	return &UsageRepository{col: db.Collection(UsageCollection)}
}

func counterKey(userID string, kind entities.QuotaKind, period string) bson.M {
	return bson.M{"user_id": userID, "kind": kind, "period": period}
}

func (r *UsageRepository) Get(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	c, err := findOne[entities.UsageCounter](ctx, r.col, counterKey(userID, kind, period))
	if err != nil {
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}
	if c == nil {
		return 0, nil
	}
	return c.Count, nil
}

func (r *UsageRepository) increment(ctx context.Context, filter bson.M) (*entities.UsageCounter, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"count": 1}, "$set": bson.M{"updated_at": time.Now().UTC()}}
	var c entities.UsageCounter
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementIfBelow filters on count < limit. When the counter is at the limit the
// filter misses, the upsert collides with the unique index and nothing changes.
func (r *UsageRepository) IncrementIfBelow(ctx context.Context, userID string, kind entities.QuotaKind, period string, limit int) (int, bool, error) {
	if limit <= 0 {
		used, err := r.Get(ctx, userID, kind, period)
		return used, false, err
	}
	filter := counterKey(userID, kind, period)
	filter["count"] = bson.M{"$lt": limit}
	c, err := r.increment(ctx, filter)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			used, gerr := r.Get(ctx, userID, kind, period)
			return used, false, gerr
		}
		return 0, false, fmt.Errorf("failed to increment usage: %w", err)
	}
	return c.Count, true, nil
}

func (r *UsageRepository) Increment(ctx context.Context, userID string, kind entities.QuotaKind, period string) (int, error) {
	c, err := r.increment(ctx, counterKey(userID, kind, period))
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return c.Count, nil
}

func (r *UsageRepository) Decrement(ctx context.Context, userID string, kind entities.QuotaKind, period string) error {
	filter := counterKey(userID, kind, period)
	filter["count"] = bson.M{"$gt": 0}
	update := bson.M{"$inc": bson.M{"count": -1}, "$set": bson.M{"updated_at": time.Now().UTC()}}
	if _, err := r.col.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to decrement usage: %w", err)
	}
	return nil
}
