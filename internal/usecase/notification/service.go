// Package notification records the automation progress trail.
package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// ListLimit is how many notifications a listing returns
const ListLimit = 20

// Automation progress messages
const (
	MsgAutomationStarted  = "🚀 Automation process has started..."
	MsgStepTranscribe     = "Step 1: Transcribing video..."
	MsgStepMinutes        = "Step 2: Generating minutes..."
	MsgStepActionItems    = "Step 3: Extracting action items..."
	MsgAutomationComplete = "✅ Automation complete! Your meeting has been processed."
	msgAutomationFailed   = "❌ Automation failed. Reason: %s"
)

// Service writes and reads notifications
type Service struct {
	repo   repositories.NotificationRepository
	logger *zap.Logger
}

// NewService creates a notification service
func NewService(repo repositories.NotificationRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Notify appends a notification. Write failures are logged, never returned,
// so a broken trail cannot abort the work it reports on.
func (s *Service) Notify(ctx context.Context, userID string, typ entities.NotificationType, message, relatedID string) {
	n := entities.NewNotification(userID, typ, message, relatedID)
	if err := s.repo.Create(ctx, n); err != nil && s.logger != nil {
		s.logger.Error("❌ Failed to write notification",
			zap.String("user_id", userID),
			zap.String("message", message),
			zap.Error(err),
		)
	}
}

// List returns the newest notifications of a user
func (s *Service) List(ctx context.Context, userID string) ([]*entities.Notification, error) {
	return s.repo.ListByUser(ctx, userID, ListLimit)
}

// MarkRead flags one notification as read
func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("notification", id)
	}
	return nil
}

// MarkAllRead flags every notification of a user as read
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
