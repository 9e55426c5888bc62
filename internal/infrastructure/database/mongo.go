package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// NewMongoDB connects to MongoDB, pings it and ensures the collection indexes
func NewMongoDB(ctx context.Context, cfg *config.Config, log *zap.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	if log != nil {
		log.Info("✅ MongoDB connected successfully", zap.String("database", cfg.Mongo.Database))
	}
	return client, db, nil
}

// EnsureMongoIndexes creates the tenancy and uniqueness indexes
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	byUserNewest := mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}
	indexes := map[string][]mongo.IndexModel{
		"transcripts":   {byUserNewest},
		"minutes":       {byUserNewest},
		"notifications": {byUserNewest},
		"meetings":      {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "meeting_date", Value: 1}}}},
		"action_items":  {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "minutes_id", Value: 1}}}},
		"agendas": {{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		"usage_counters": {{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}, {Key: "period", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
