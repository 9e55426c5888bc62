// Package mongo implements the domain repositories on a MongoDB database.
// Each repository owns one collection and every filter carries user_id.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// Collection names
const (
	UsersCollection         = "users"
	TranscriptsCollection   = "transcripts"
	MinutesCollection       = "minutes"
	AgendasCollection       = "agendas"
	ActionItemsCollection   = "action_items"
	MeetingsCollection      = "meetings"
	NotificationsCollection = "notifications"
	UsageCollection         = "usage_counters"

	AgendaSequencesCollection = "agenda_sequences"
)

// New wires every mongo repository onto one database
func New(db *mongo.Database) *repositories.Repositories {
	return &repositories.Repositories{
		Users:         NewUserRepository(db),
		Transcripts:   NewTranscriptRepository(db),
		Minutes:       NewMinutesRepository(db),
		Agendas:       NewAgendaRepository(db),
		ActionItems:   NewActionItemRepository(db),
		Meetings:      NewMeetingRepository(db),
		Notifications: NewNotificationRepository(db),
		Usage:         NewUsageRepository(db),
	}
}

// findOne decodes a single document, mapping no documents to (nil, nil)
func findOne[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var out T
	if err := col.FindOne(ctx, filter, opts...).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func newestFirst(limit int) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return opts
}
