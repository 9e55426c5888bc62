package meeting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
)

// AutomatedMeetingName names meetings created by an automation run
const AutomatedMeetingName = "Automated Meeting"

// Service commits agendas as meetings and builds the merged events view
type Service struct {
	meetings repositories.MeetingRepository
	agendas  repositories.AgendaRepository
	items    repositories.ActionItemRepository
	quota    *quota.Service
	calendar actionitem.CalendarService
	loc      *time.Location
	dayStart int
	logger   *zap.Logger
}

// Options configures a Service. Calendar may be nil.
type Options struct {
	Calendar actionitem.CalendarService
	Location *time.Location
	DayStart int
	Logger   *zap.Logger
}

// NewService creates a meeting service
func NewService(repos *repositories.Repositories, q *quota.Service, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	dayStart := opts.DayStart
	if dayStart <= 0 {
		dayStart = actionitem.DefaultDayStartHour
	}
	return &Service{
		meetings: repos.Meetings,
		agendas:  repos.Agendas,
		items:    repos.ActionItems,
		quota:    q,
		calendar: opts.Calendar,
		loc:      loc,
		dayStart: dayStart,
		logger:   opts.Logger,
	}
}

// ScheduleInput commits an agenda, optionally moving it to another day
type ScheduleInput struct {
	AgendaID    string
	MeetingDate string
}

// ScheduleResult is the committed meeting and the calendar events created for it
type ScheduleResult struct {
	Meeting  *entities.Meeting `json:"meeting"`
	EventIDs []string          `json:"event_ids"`
}

// ScheduleAgenda consumes one meeting from the monthly quota, stores the
// meeting and, for connected premium users, writes one event per agenda item.
func (s *Service) ScheduleAgenda(ctx context.Context, id entities.Identity, in ScheduleInput) (*ScheduleResult, error) {
	if in.AgendaID == "" {
		return nil, entities.NewValidation("agenda_id", "is required")
	}
	a, err := s.agendas.GetByID(ctx, id.UserID, in.AgendaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}
	if a == nil {
		return nil, entities.NewNotFound("agenda", in.AgendaID)
	}

	date := a.MeetingDate
	if in.MeetingDate != "" {
		date = in.MeetingDate
	}
	day, err := time.ParseInLocation(entities.DateLayout, date, s.loc)
	if err != nil {
		return nil, entities.NewValidation("meeting_date", "must be YYYY-MM-DD")
	}

	if _, err := s.quota.Consume(ctx, id, entities.QuotaMeeting); err != nil {
		return nil, err
	}

	m := entities.NewMeeting(id.UserID, a.MeetingName, date, a.ID)
	res := &ScheduleResult{Meeting: m, EventIDs: []string{}}

	if id.IsPremium() && s.calendar != nil {
		res.EventIDs = s.createAgendaEvents(ctx, id.UserID, a, day)
		m.CalendarEventIDs = append(m.CalendarEventIDs, res.EventIDs...)
	}

	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("📅 Agenda scheduled",
			zap.String("user_id", id.UserID),
			zap.String("meeting_id", m.ID),
			zap.String("agenda_id", a.ID),
			zap.Int("events", len(res.EventIDs)),
		)
	}
	return res, nil
}

func (s *Service) createAgendaEvents(ctx context.Context, userID string, a *entities.Agenda, day time.Time) []string {
	durations := make([]int, len(a.Items))
	for i, it := range a.Items {
		durations[i] = it.TimeAllocatedMinutes
	}
	slots, _ := actionitem.ScheduleBackToBack(day, s.dayStart, durations)

	ids := []string{}
	for i, it := range a.Items {
		evID, err := s.calendar.CreateEvent(ctx, userID, entities.CalendarEvent{
			Title:       it.Topic,
			Description: fmt.Sprintf("Agenda item (%s) for %s", it.Priority, a.MeetingName),
			Start:       slots[i].Start,
			Duration:    time.Duration(it.TimeAllocatedMinutes) * time.Minute,
		})
		if err == nil {
			ids = append(ids, evID)
			continue
		}
		if errors.Is(err, entities.ErrCalendarNotConnected) {
			break
		}
		if s.logger != nil {
			s.logger.Warn("⚠️ Calendar event failed",
				zap.String("user_id", userID),
				zap.String("topic", it.Topic),
				zap.Error(err),
			)
		}
	}
	return ids
}

// CreateForRun creates the meeting an automation run without a meeting id reports on
func (s *Service) CreateForRun(ctx context.Context, userID string) (*entities.Meeting, error) {
	m := entities.NewMeeting(userID, AutomatedMeetingName, time.Now().In(s.loc).Format(entities.DateLayout), "")
	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to save meeting: %w", err)
	}
	return m, nil
}

// List returns the meetings of a user
func (s *Service) List(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	return s.meetings.ListByUser(ctx, userID)
}

// Get returns one meeting
func (s *Service) Get(ctx context.Context, userID, id string) (*entities.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, entities.NewNotFound("meeting", id)
	}
	return m, nil
}

// UpdateInput holds the fields a PATCH may change
type UpdateInput struct {
	MeetingName *string
	MeetingDate *string
	Status      *entities.MeetingStatus
}

// Update renames, redates or changes the status of a meeting
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (*entities.Meeting, error) {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.MeetingName != nil {
		name := strings.TrimSpace(*in.MeetingName)
		if name == "" {
			return nil, entities.NewValidation("meeting_name", "must not be empty")
		}
		m.MeetingName = name
	}
	if in.MeetingDate != nil {
		if _, err := time.Parse(entities.DateLayout, *in.MeetingDate); err != nil {
			return nil, entities.NewValidation("meeting_date", "must be YYYY-MM-DD")
		}
		m.MeetingDate = *in.MeetingDate
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			return nil, entities.NewValidation("status", entities.ErrInvalidStatus.Error())
		}
		m.Status = *in.Status
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetStatus moves a meeting through the automation lifecycle
func (s *Service) SetStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) error {
	ok, err := s.meetings.UpdateStatus(ctx, userID, id, status)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("meeting", id)
	}
	return nil
}

// MarkAutomated records that an automation cycle ran for the meeting
func (s *Service) MarkAutomated(ctx context.Context, userID, id string) error {
	m, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	m.AutomationUsed = true
	m.Status = entities.MeetingProcessing
	m.UpdatedAt = time.Now().UTC()
	return s.meetings.Update(ctx, m)
}

// Delete removes a meeting
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.meetings.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("meeting", id)
	}
	return nil
}

// Events merges meetings and action items into one list ordered by start.
// Meetings are all-day; unscheduled action items sit on their deadline day.
func (s *Service) Events(ctx context.Context, userID string) ([]entities.Event, error) {
	meetings, err := s.meetings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	items, err := s.items.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}

	events := make([]entities.Event, 0, len(meetings)+len(items))
	for _, m := range meetings {
		day, err := time.ParseInLocation(entities.DateLayout, m.MeetingDate, s.loc)
		if err != nil {
			continue
		}
		events = append(events, entities.Event{
			ID:     m.ID,
			Kind:   entities.EventMeeting,
			Title:  m.MeetingName,
			Start:  day,
			End:    day.AddDate(0, 0, 1),
			AllDay: true,
			Status: string(m.Status),
		})
	}
	for _, it := range items {
		ev := entities.Event{
			ID:        it.ID,
			Kind:      entities.EventActionItem,
			Title:     fmt.Sprintf("%s (%s)", it.Task, it.Owner),
			Status:    string(it.Status),
			RelatedID: it.MinutesID,
		}
		if it.StartTime != nil {
			ev.Start = it.StartTime.In(s.loc)
			ev.End = ev.Start.Add(time.Duration(it.DurationMinutes) * time.Minute)
		} else {
			day, err := time.ParseInLocation(entities.DateLayout, it.Deadline, s.loc)
			if err != nil {
				continue
			}
			ev.Start, ev.End, ev.AllDay = day, day.AddDate(0, 0, 1), true
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}
