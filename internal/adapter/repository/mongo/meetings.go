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

// MeetingRepository stores meetings
type MeetingRepository struct {
	col *mongo.Collection
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *mongo.Database) *MeetingRepository {
	return &MeetingRepository{col: db.Collection(MeetingsCollection)}
}

func (r *MeetingRepository) Create(ctx context.Context, m *entities.Meeting) error {
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, userID, id string) (*entities.Meeting, error) {
	return findOne[entities.Meeting](ctx, r.col, bson.M{"_id": id, "user_id": userID})
}

func (r *MeetingRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	opts := options.Find().SetSort(bson.D{{Key: "meeting_date", Value: 1}, {Key: "created_at", Value: 1}})
	return findAll[entities.Meeting](ctx, r.col, bson.M{"user_id": userID}, opts)
}

func (r *MeetingRepository) Update(ctx context.Context, m *entities.Meeting) error {
	m.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": m.ID, "user_id": m.UserID}, m)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.NewNotFound("meeting", m.ID)
	}
	return nil
}

func (r *MeetingRepository) UpdateStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) (bool, error) {
	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if status == entities.MeetingProcessing {
		set["automation_used"] = true
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update meeting status: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete meeting: %w", err)
	}
	return res.DeletedCount > 0, nil
}
