package repositories

import (
	"context"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Ensure creates the user on first sight and returns the stored record.
	// Role and tier of an existing user are never overwritten.
	Ensure(ctx context.Context, user *entities.User) (*entities.User, error)

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*entities.User, error)

	// List returns a paginated list of users
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)

	// UpdateRole changes the role of a user
	UpdateRole(ctx context.Context, id string, role entities.UserRole) error

	// UpdateTier changes the subscription tier of a user
	UpdateTier(ctx context.Context, id string, tier entities.Tier) error

	// SaveGoogleToken stores or clears (nil) the calendar credential
	SaveGoogleToken(ctx context.Context, id string, token *entities.OAuthToken) error

	// Delete removes a user record
	Delete(ctx context.Context, id string) (bool, error)
}
