package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

const maxAgendaIDAttempts = 3

// AgendaRepository stores agendas. Ids come from a per-user counter document
// in AgendaSequencesCollection.
type AgendaRepository struct {
	col *mongo.Collection
	seq *mongo.Collection
}

// NewAgendaRepository creates a new agenda repository
func NewAgendaRepository(db *mongo.Database) *AgendaRepository {
	return &AgendaRepository{
		col: db.Collection(AgendasCollection),
		seq: db.Collection(AgendaSequencesCollection),
	}
}

type agendaSequence struct {
	UserID string `bson:"_id"`
	LastID int64  `bson:"last_id"`
}

func (r *AgendaRepository) nextID(ctx context.Context, userID string) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$inc": bson.M{"last_id": 1}, "$set": bson.M{"updated_at": time.Now().UTC()}}
	var s agendaSequence
	if err := r.seq.FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&s); err != nil {
		return 0, fmt.Errorf("failed to allocate agenda id: %w", err)
	}
	return s.LastID, nil
}

// resync lifts the counter to the highest stored id. Agendas written before
// the counter existed would otherwise collide.
func (r *AgendaRepository) resync(ctx context.Context, userID string) error {
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetProjection(bson.M{"id": 1}))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	var highest int64
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return err
		}
		if n, err := strconv.ParseInt(doc.ID, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	if err := cur.Err(); err != nil {
		return err
	}
	_, err = r.seq.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$max": bson.M{"last_id": highest}}, options.Update().SetUpsert(true))
	return err
}

func (r *AgendaRepository) CreateNext(ctx context.Context, a *entities.Agenda) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	var insertErr error
	for attempt := 0; attempt < maxAgendaIDAttempts; attempt++ {
		next, err := r.nextID(ctx, a.UserID)
		if err != nil {
			return err
		}
		a.ID = strconv.FormatInt(next, 10)
		if _, insertErr = r.col.InsertOne(ctx, a); insertErr == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(insertErr) {
			return fmt.Errorf("failed to create agenda: %w", insertErr)
		}
		if err := r.resync(ctx, a.UserID); err != nil {
			return fmt.Errorf("failed to resync agenda ids: %w", err)
		}
	}
	return fmt.Errorf("failed to allocate agenda id after %d attempts: %w", maxAgendaIDAttempts, insertErr)
}

func (r *AgendaRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count agendas: %w", err)
	}
	return n, nil
}

func (r *AgendaRepository) GetByID(ctx context.Context, userID, id string) (*entities.Agenda, error) {
	return findOne[entities.Agenda](ctx, r.col, bson.M{"id": id, "user_id": userID})
}

func (r *AgendaRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Agenda, error) {
	return findAll[entities.Agenda](ctx, r.col, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *AgendaRepository) Update(ctx context.Context, a *entities.Agenda) error {
	a.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": a.ID, "user_id": a.UserID},
		bson.M{"$set": bson.M{
			"meeting_name":      a.MeetingName,
			"meeting_date":      a.MeetingDate,
			"items":             a.Items,
			"topics":            a.Topics,
			"discussion_points": a.DiscussionPoints,
			"updated_at":        a.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update agenda: %w", err)
	}
	if res.MatchedCount == 0 {
		return entities.NewNotFound("agenda", a.ID)
	}
	return nil
}

func (r *AgendaRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete agenda: %w", err)
	}
	return res.DeletedCount > 0, nil
}
