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

// UserRepository stores users in the users collection
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(UsersCollection)}
}

func (r *UserRepository) Ensure(ctx context.Context, user *entities.User) (*entities.User, error) {
	role, tier := user.Role, user.Tier
	if !role.IsValid() {
		role = entities.RoleUser
	}
	if !tier.IsValid() {
		tier = entities.TierFree
	}
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	if user.Email != "" {
		set["email"] = user.Email
	}
	if user.Name != "" {
		set["name"] = user.Name
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"role": role, "tier": tier, "created_at": now},
	}
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": user.ID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := findOne[entities.User](ctx, r.col, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}).SetSkip(int64(offset))
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	users, err := findAll[entities.User](ctx, r.col, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) set(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now().UTC()
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entities.UserRole) error {
	if err := r.set(ctx, id, bson.M{"role": role}); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateTier(ctx context.Context, id string, tier entities.Tier) error {
	if err := r.set(ctx, id, bson.M{"tier": tier}); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveGoogleToken(ctx context.Context, id string, token *entities.OAuthToken) error {
	var err error
	if token == nil {
		_, err = r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
			"$unset": bson.M{"google_token": ""},
			"$set":   bson.M{"updated_at": time.Now().UTC()},
		})
	} else {
		err = r.set(ctx, id, bson.M{"google_token": token})
	}
	if err != nil {
		return fmt.Errorf("failed to update OAuth token: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}
