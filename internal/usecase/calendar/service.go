package calendar

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/external/oauth"
)

// Feature is the name reported when a free user reaches a calendar route
const Feature = "google calendar integration"

// Provider is the OAuth side of the Google connection
type Provider interface {
	GetAuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
}

// Inserter writes one event with a stored token
type Inserter interface {
	Insert(ctx context.Context, token *oauth2.Token, ev entities.CalendarEvent) (string, *oauth2.Token, error)
}

// Service connects users to Google Calendar and writes events on their behalf
type Service struct {
	users    repositories.UserRepository
	provider Provider
	states   *oauth.StateManager
	inserter Inserter
	logger   *zap.Logger
}

// NewService creates a calendar service
func NewService(
	users repositories.UserRepository,
	provider Provider,
	states *oauth.StateManager,
	inserter Inserter,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		provider: provider,
		states:   states,
		inserter: inserter,
		logger:   logger,
	}
}

// StatusResponse tells the client whether the integration can be used
type StatusResponse struct {
	Connected bool          `json:"connected"`
	Premium   bool          `json:"premium"`
	Tier      entities.Tier `json:"tier"`
}

// Status reports the connection state of the caller
func (s *Service) Status(ctx context.Context, id entities.Identity) (*StatusResponse, error) {
	user, err := s.users.FindByID(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &StatusResponse{
		Connected: user.CalendarConnected(),
		Premium:   id.IsPremium(),
		Tier:      id.Tier,
	}, nil
}

// AuthURLResponse carries the consent URL and its one-time state
type AuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// AuthURL starts the connection flow for a premium user
func (s *Service) AuthURL(ctx context.Context, id entities.Identity) (*AuthURLResponse, error) {
	if !id.IsPremium() {
		return nil, &entities.TierRequiredError{Feature: Feature, Tier: id.Tier}
	}
	state, err := s.states.GenerateState(ctx, id.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	return &AuthURLResponse{URL: s.provider.GetAuthURL(state), State: state}, nil
}

// Exchange validates the state, trades the code for a token and stores it
func (s *Service) Exchange(ctx context.Context, id entities.Identity, code, state string) error {
	if !id.IsPremium() {
		return &entities.TierRequiredError{Feature: Feature, Tier: id.Tier}
	}
	if code == "" {
		return entities.NewValidation("code", "is required")
	}

	ok, err := s.states.ValidateState(ctx, state, id.UserID)
	if err != nil {
		return fmt.Errorf("failed to validate state: %w", err)
	}
	if !ok {
		return entities.ErrOAuthStateMismatch
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return entities.NewExternal(entities.ServiceCalendar, fmt.Errorf("failed to exchange code: %w", err))
	}
	if err := s.users.SaveGoogleToken(ctx, id.UserID, oauth.ToEntity(token)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Google Calendar connected", zap.String("user_id", id.UserID))
	}
	return nil
}

// Disconnect forgets the stored token
func (s *Service) Disconnect(ctx context.Context, userID string) error {
	if err := s.users.SaveGoogleToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("🔌 Google Calendar disconnected", zap.String("user_id", userID))
	}
	return nil
}

// CreateEvent inserts an event into the user's calendar. Free users get a
// TierRequiredError and users without a token get ErrCalendarNotConnected.
func (s *Service) CreateEvent(ctx context.Context, userID string, ev entities.CalendarEvent) (string, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return "", entities.NewNotFound("user", userID)
	}
	if user.Tier != entities.TierPremium {
		return "", &entities.TierRequiredError{Feature: Feature, Tier: user.Tier}
	}
	if !user.CalendarConnected() || s.inserter == nil {
		return "", entities.ErrCalendarNotConnected
	}

	stored := oauth.FromEntity(user.GoogleToken)
	id, current, err := s.inserter.Insert(ctx, stored, ev)
	if err != nil {
		var retrieve *oauth2.RetrieveError
		if errors.As(err, &retrieve) {
			// refresh token revoked on Google's side
			_ = s.users.SaveGoogleToken(ctx, userID, nil)
			return "", entities.ErrCalendarNotConnected
		}
		return "", entities.NewExternal(entities.ServiceCalendar, err)
	}

	if current != nil && current.AccessToken != stored.AccessToken {
		if err := s.users.SaveGoogleToken(ctx, userID, oauth.ToEntity(current)); err != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to persist refreshed token", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return id, nil
}
