package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// UserRepository is the in-memory user store
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User
}

// NewUserRepository creates an empty user store
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*entities.User)}
}

func cloneUser(u *entities.User) *entities.User {
	c := *u
	if u.GoogleToken != nil {
		tok := *u.GoogleToken
		c.GoogleToken = &tok
	}
	return &c
}

func (r *UserRepository) Ensure(ctx context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.users[user.ID]; ok {
		if user.Email != "" {
			existing.Email = user.Email
		}
		if user.Name != "" {
			existing.Name = user.Name
		}
		return cloneUser(existing), nil
	}
	now := time.Now().UTC()
	stored := cloneUser(user)
	if !stored.Role.IsValid() {
		stored.Role = entities.RoleUser
	}
	if !stored.Tier.IsValid() {
		stored.Tier = entities.TierFree
	}
	stored.CreatedAt, stored.UpdatedAt = now, now
	r.users[user.ID] = stored
	return cloneUser(stored), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if offset >= len(out) {
		return []*entities.User{}, nil
	}
	out = out[offset:]
	return limitSlice(out, limit), nil
}

func (r *UserRepository) update(id string, fn func(u *entities.User)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		fn(u)
		u.UpdatedAt = time.Now().UTC()
	}
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entities.UserRole) error {
	r.update(id, func(u *entities.User) { u.Role = role })
	return nil
}

func (r *UserRepository) UpdateTier(ctx context.Context, id string, tier entities.Tier) error {
	r.update(id, func(u *entities.User) { u.Tier = tier })
	return nil
}

func (r *UserRepository) SaveGoogleToken(ctx context.Context, id string, token *entities.OAuthToken) error {
	r.update(id, func(u *entities.User) {
		if token == nil {
			u.GoogleToken = nil
			return
		}
		tok := *token
		u.GoogleToken = &tok
	})
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}
