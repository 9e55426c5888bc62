package minutes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// CreateInput names the transcript to summarize. Text is used when
// TranscriptID is empty.
type CreateInput struct {
	TranscriptID string
	Text         string
	MeetingID    string
	Date         string
	Automated    bool
}

// Service persists minutes produced by the generator
type Service struct {
	minutes     repositories.MinutesRepository
	transcripts repositories.TranscriptRepository
	generator   *Generator
	logger      *zap.Logger
}

// NewService creates a minutes service
func NewService(
	minutes repositories.MinutesRepository,
	transcripts repositories.TranscriptRepository,
	generator *Generator,
	logger *zap.Logger,
) *Service {
	return &Service{
		minutes:     minutes,
		transcripts: transcripts,
		generator:   generator,
		logger:      logger,
	}
}

// Create generates and stores minutes. No document is written when generation fails.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*entities.Minutes, error) {
	text := in.Text
	meetingID := in.MeetingID
	if in.TranscriptID != "" {
		t, err := s.transcripts.GetByID(ctx, userID, in.TranscriptID)
		if err != nil {
			return nil, fmt.Errorf("failed to load transcript: %w", err)
		}
		if t == nil {
			return nil, entities.NewNotFound("transcript", in.TranscriptID)
		}
		text = t.Text
		if meetingID == "" {
			meetingID = t.MeetingID
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, entities.NewValidation("transcript", entities.ErrEmptyTranscript.Error())
	}

	draft, err := s.generator.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date == "" {
		date = s.generator.now().Format(entities.DateLayout)
	}
	m := entities.NewMinutes(userID, meetingID, in.TranscriptID, date, draft)
	m.Automated = in.Automated
	if err := s.minutes.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save minutes: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📝 Minutes created",
			zap.String("user_id", userID),
			zap.String("minutes_id", m.ID),
			zap.Int("decisions", len(draft.Decisions)),
			zap.Int("future_points", len(draft.FutureDiscussionPoints)),
			zap.String("next_meeting_date", draft.NextMeetingDate),
			zap.Bool("next_meeting_defaulted", draft.NextMeetingDefaulted),
		)
	}
	return m, nil
}

// Get returns one minutes record of a user
func (s *Service) Get(ctx context.Context, userID, id string) (*entities.Minutes, error) {
	m, err := s.minutes.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, entities.NewNotFound("minutes", id)
	}
	return m, nil
}

// Latest returns the newest minutes of a user, nil when there are none
func (s *Service) Latest(ctx context.Context, userID string) (*entities.Minutes, error) {
	return s.minutes.GetLatest(ctx, userID)
}

// List returns the newest limit records, all when limit is zero
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*entities.Minutes, error) {
	return s.minutes.ListByUser(ctx, userID, limit)
}

// Today is the calendar date used for records created now
func (s *Service) Today() string {
	return s.generator.now().Format(entities.DateLayout)
}

// SetClock overrides the time source
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}
