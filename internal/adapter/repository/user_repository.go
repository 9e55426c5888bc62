package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Ensure inserts the user if missing and refreshes profile fields otherwise
func (r *UserRepository) Ensure(ctx context.Context, user *entities.User) (*entities.User, error) {
	if !user.Role.IsValid() {
		user.Role = entities.RoleUser
	}
	if !user.Tier.IsValid() {
		user.Tier = entities.TierFree
	}
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	profile := map[string]interface{}{}
	if user.Email != "" {
		profile["email"] = user.Email
	}
	if user.Name != "" {
		profile["name"] = user.Name
	}
	if len(profile) > 0 {
		profile["updated_at"] = time.Now().UTC()
		if err := db.Model(&entities.User{}).Where("id = ?", user.ID).Updates(profile).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}
	}
	return r.FindByID(ctx, user.ID)
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return &user, nil
}

// List lists users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	var users []*entities.User
	query := r.db.WithContext(ctx).Order("created_at ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) updateColumn(ctx context.Context, id, column string, value interface{}) error {
	return r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": time.Now().UTC(),
		}).Error
}

// UpdateRole changes the role of a user
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entities.UserRole) error {
	if err := r.updateColumn(ctx, id, "role", role); err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// UpdateTier changes the subscription tier of a user
func (r *UserRepository) UpdateTier(ctx context.Context, id string, tier entities.Tier) error {
	if err := r.updateColumn(ctx, id, "tier", tier); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}
	return nil
}

// SaveGoogleToken stores the calendar credential, nil clears it
func (r *UserRepository) SaveGoogleToken(ctx context.Context, id string, token *entities.OAuthToken) error {
	err := r.db.WithContext(ctx).
		Model(&entities.User{ID: id}).
		Select("google_token", "updated_at").
		Updates(&entities.User{GoogleToken: token, UpdatedAt: time.Now().UTC()}).Error
	if err != nil {
		return fmt.Errorf("failed to update OAuth token: %w", err)
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
