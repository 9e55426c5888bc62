package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// DefaultPageSize applies when a list request has no limit
const DefaultPageSize = 50

// Service manages user records and the admin operations on them
type Service struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewService creates a user service
func NewService(users repositories.UserRepository, logger *zap.Logger) *Service {
	return &Service{users: users, logger: logger}
}

// Ensure records the caller on first sight and resolves its identity.
// Role and tier always come from the stored record.
func (s *Service) Ensure(ctx context.Context, subject, email, name string) (entities.Identity, error) {
	if subject == "" {
		return entities.Identity{}, entities.NewValidation("sub", "is required")
	}
	u, err := s.users.Ensure(ctx, &entities.User{
		ID:    subject,
		Email: email,
		Name:  name,
		Role:  entities.RoleUser,
		Tier:  entities.TierFree,
	})
	if err != nil {
		return entities.Identity{}, fmt.Errorf("failed to ensure user: %w", err)
	}
	return entities.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Tier:   u.Tier,
		Role:   u.Role,
	}, nil
}

// Get returns one user
func (s *Service) Get(ctx context.Context, id string) (*entities.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, entities.NewNotFound("user", id)
	}
	return u, nil
}

// List returns a page of users
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// UpdateRole changes the role of a user
func (s *Service) UpdateRole(ctx context.Context, id string, role entities.UserRole) (*entities.User, error) {
	if !role.IsValid() {
		return nil, entities.NewValidation("role", entities.ErrInvalidRole.Error())
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("👤 User role updated", zap.String("user_id", id), zap.String("role", string(role)))
	}
	return s.Get(ctx, id)
}

// UpdateTier changes the subscription tier of a user
func (s *Service) UpdateTier(ctx context.Context, id string, tier entities.Tier) (*entities.User, error) {
	if !tier.IsValid() {
		return nil, entities.NewValidation("tier", entities.ErrInvalidTier.Error())
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.UpdateTier(ctx, id, tier); err != nil {
		return nil, fmt.Errorf("failed to update tier: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("💳 User tier updated", zap.String("user_id", id), zap.String("tier", string(tier)))
	}
	return s.Get(ctx, id)
}

// Delete removes a user record
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("user", id)
	}
	return nil
}
