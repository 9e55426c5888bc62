package actionitem

import (
	"context"
	"strings"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// UpdateInput holds the fields a PATCH may change
type UpdateInput struct {
	Status   *entities.ActionItemStatus
	Owner    *string
	Deadline *string
}

// List returns every action item of a user
func (s *Service) List(ctx context.Context, userID string) ([]*entities.ActionItem, error) {
	return s.items.ListByUser(ctx, userID)
}

// Get returns one action item of a user
func (s *Service) Get(ctx context.Context, userID, id string) (*entities.ActionItem, error) {
	item, err := s.items.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, entities.NewNotFound("action item", id)
	}
	return item, nil
}

// Update changes status, owner or deadline
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (*entities.ActionItem, error) {
	item, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, entities.NewValidation("status", "must be pending, scheduled or done")
		}
		item.Status = *in.Status
	}
	if in.Owner != nil {
		owner := strings.TrimSpace(*in.Owner)
		if owner == "" {
			return nil, entities.NewValidation("owner", "must not be empty")
		}
		item.Owner = owner
	}
	if in.Deadline != nil {
		if _, err := time.Parse(entities.DateLayout, *in.Deadline); err != nil {
			return nil, entities.NewValidation("deadline", "must be YYYY-MM-DD")
		}
		item.Deadline = *in.Deadline
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an action item
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.items.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("action item", id)
	}
	return nil
}
