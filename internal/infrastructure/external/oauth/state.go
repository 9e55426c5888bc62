package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

// Store is the key-value backend for state tokens (redis or in-memory)
type Store interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	// Take reads and deletes the key in one step
	Take(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// StateManager manages OAuth state tokens for CSRF protection.
// Each state is bound to the user that requested it and is valid once.
type StateManager struct {
	store      Store
	expiration time.Duration
}

// NewStateManager creates a new state manager
func NewStateManager(store Store) *StateManager {
	return &StateManager{
		store:      store,
		expiration: 15 * time.Minute,
	}
}

func stateKey(state string) string {
	return fmt.Sprintf("oauth:state:%s", state)
}

// GenerateState generates a random state token bound to userID
func (sm *StateManager) GenerateState(ctx context.Context, userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	state := base64.URLEncoding.EncodeToString(b)
	if err := sm.store.Set(ctx, stateKey(state), userID, sm.expiration); err != nil {
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}
	return state, nil
}

// ValidateState consumes the state and reports whether it was issued to userID
func (sm *StateManager) ValidateState(ctx context.Context, state, userID string) (bool, error) {
	if state == "" {
		return false, nil
	}
	owner, exists, err := sm.store.Take(ctx, stateKey(state))
	if err != nil {
		return false, fmt.Errorf("failed to read oauth state: %w", err)
	}
	return exists && owner == userID, nil
}
