package actionitem

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/metrics"
)

// DefaultDayStartHour anchors every scheduling cursor
const DefaultDayStartHour = 9

// CalendarService creates one calendar event for a user and returns its id
type CalendarService interface {
	CreateEvent(ctx context.Context, userID string, ev entities.CalendarEvent) (string, error)
}

// Finalizer receives the MinutesFinalized transition once items are stored
type Finalizer interface {
	MinutesFinalized(ctx context.Context, ev entities.MinutesFinalized) (*entities.Agenda, error)
}

// Result is the outcome of one extraction run
type Result struct {
	ActionItems []*entities.ActionItem `json:"action_items"`
	// AgendaEvents are the calendar ids of the scheduled agenda topics
	AgendaEvents []string         `json:"agenda_events,omitempty"`
	NextAgenda   *entities.Agenda `json:"next_agenda,omitempty"`
}

// Service extracts, schedules and stores action items
type Service struct {
	minutes   repositories.MinutesRepository
	agendas   repositories.AgendaRepository
	meetings  repositories.MeetingRepository
	items     repositories.ActionItemRepository
	calendar  CalendarService
	finalizer Finalizer
	loc       *time.Location
	dayStart  int
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// Options configures a Service. Calendar and Finalizer may be nil.
type Options struct {
	Calendar  CalendarService
	Finalizer Finalizer
	Location  *time.Location
	DayStart  int
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewService creates an action item service
func NewService(repos *repositories.Repositories, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	dayStart := opts.DayStart
	if dayStart <= 0 {
		dayStart = DefaultDayStartHour
	}
	return &Service{
		minutes:   repos.Minutes,
		agendas:   repos.Agendas,
		meetings:  repos.Meetings,
		items:     repos.ActionItems,
		calendar:  opts.Calendar,
		finalizer: opts.Finalizer,
		loc:       loc,
		dayStart:  dayStart,
		metrics:   opts.Metrics,
		logger:    opts.Logger,
	}
}

// SetFinalizer wires the loop closer after construction
func (s *Service) SetFinalizer(f Finalizer) {
	s.finalizer = f
}

// ExtractAndSchedule runs the stage for one minutes record. A missing minutes
// record is the only fatal precondition; calendar failures are per item.
func (s *Service) ExtractAndSchedule(ctx context.Context, userID, minutesID string, schedule bool) (*Result, error) {
	m, err := s.minutes.GetByID(ctx, userID, minutesID)
	if err != nil {
		return nil, fmt.Errorf("failed to load minutes: %w", err)
	}
	if m == nil {
		return nil, entities.NewNotFound("minutes", minutesID)
	}

	agenda := s.meetingAgenda(ctx, userID, m.MeetingID)

	source := strings.TrimSpace(m.Summary + " " + strings.Join(m.Decisions, " "))
	candidates := Extract(source, s.referenceDay(m))

	items := make([]*entities.ActionItem, 0, len(candidates))
	for i, c := range candidates {
		duration := entities.DefaultActionItemMinutes
		if agenda != nil && i < len(agenda.Items) {
			duration = agenda.Items[i].TimeAllocatedMinutes
		}
		deadline := c.Deadline
		if deadline == "" {
			deadline = m.NextMeetingDate
		}
		if deadline == "" {
			deadline = m.Date
		}
		item := entities.NewActionItem(userID, m.ID, c.Task, c.Owner, deadline, duration)
		item.MeetingID = m.MeetingID
		items = append(items, item)
	}

	res := &Result{ActionItems: items}
	if schedule {
		sched := &scheduler{svc: s, userID: userID}
		if agenda != nil && m.NextMeetingDate != "" {
			res.AgendaEvents = sched.scheduleAgenda(ctx, agenda, m.NextMeetingDate)
		}
		sched.scheduleItems(ctx, items)
	}

	for _, item := range items {
		if err := s.items.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to save action item: %w", err)
		}
	}

	refs := make([]entities.ActionItemRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, item.Ref())
	}
	if err := s.minutes.SetActionItems(ctx, userID, m.ID, refs); err != nil {
		return nil, fmt.Errorf("failed to attach action items: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Action items stored",
			zap.String("user_id", userID),
			zap.String("minutes_id", m.ID),
			zap.Int("count", len(items)),
			zap.Bool("schedule", schedule),
		)
	}

	if s.finalizer != nil {
		next, err := s.finalizer.MinutesFinalized(ctx, entities.MinutesFinalized{
			UserID:                 userID,
			MinutesID:              m.ID,
			MeetingID:              m.MeetingID,
			HasNextMeeting:         m.HasNextMeeting(),
			NextMeetingDate:        m.NextMeetingDate,
			FutureDiscussionPoints: m.FutureDiscussionPoints,
		})
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("⚠️ Next agenda was not generated",
					zap.String("user_id", userID),
					zap.String("minutes_id", m.ID),
					zap.Error(err),
				)
			}
		} else {
			res.NextAgenda = next
		}
	}
	return res, nil
}

func (s *Service) referenceDay(m *entities.Minutes) time.Time {
	if d, err := time.ParseInLocation(entities.DateLayout, m.Date, s.loc); err == nil {
		return d
	}
	return time.Now().In(s.loc)
}

// meetingAgenda returns the agenda committed for the meeting, nil when there is none
func (s *Service) meetingAgenda(ctx context.Context, userID, meetingID string) *entities.Agenda {
	if meetingID == "" || s.meetings == nil {
		return nil
	}
	meeting, err := s.meetings.GetByID(ctx, userID, meetingID)
	if err != nil || meeting == nil || meeting.AgendaID == "" {
		return nil
	}
	a, err := s.agendas.GetByID(ctx, userID, meeting.AgendaID)
	if err != nil {
		return nil
	}
	return a
}

// scheduler writes calendar events for one run and stops calling the
// calendar once it reports the user cannot be scheduled at all
type scheduler struct {
	svc      *Service
	userID   string
	disabled bool
}

func (sc *scheduler) create(ctx context.Context, ev entities.CalendarEvent) (string, bool) {
	if sc.disabled || sc.svc.calendar == nil {
		return "", false
	}
	id, err := sc.svc.calendar.CreateEvent(ctx, sc.userID, ev)
	if err == nil && id != "" {
		return id, true
	}

	var tierErr *entities.TierRequiredError
	if errors.Is(err, entities.ErrCalendarNotConnected) || errors.As(err, &tierErr) {
		sc.disabled = true
		if sc.svc.logger != nil {
			sc.svc.logger.Info("ℹ️ Calendar unavailable, skipping event creation",
				zap.String("user_id", sc.userID), zap.Error(err))
		}
		return "", false
	}

	sc.svc.metrics.CalendarFailed()
	if sc.svc.logger != nil {
		sc.svc.logger.Warn("⚠️ Calendar event failed",
			zap.String("user_id", sc.userID),
			zap.String("title", ev.Title),
			zap.Error(err),
		)
	}
	return "", false
}

// scheduleAgenda places agenda topics back to back on the meeting day
func (sc *scheduler) scheduleAgenda(ctx context.Context, a *entities.Agenda, date string) []string {
	day, err := time.ParseInLocation(entities.DateLayout, date, sc.svc.loc)
	if err != nil {
		return nil
	}
	durations := make([]int, len(a.Items))
	for i, it := range a.Items {
		durations[i] = it.TimeAllocatedMinutes
	}
	slots, _ := ScheduleBackToBack(day, sc.svc.dayStart, durations)

	var ids []string
	for i, it := range a.Items {
		if id, ok := sc.create(ctx, entities.CalendarEvent{
			Title:       it.Topic,
			Description: fmt.Sprintf("Agenda item (%s) for %s", it.Priority, a.MeetingName),
			Start:       slots[i].Start,
			Duration:    time.Duration(it.TimeAllocatedMinutes) * time.Minute,
		}); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// scheduleItems groups items by deadline in first-appearance order and
// places each group back to back on its day
func (sc *scheduler) scheduleItems(ctx context.Context, items []*entities.ActionItem) {
	var order []string
	groups := map[string][]*entities.ActionItem{}
	for _, item := range items {
		if _, ok := groups[item.Deadline]; !ok {
			order = append(order, item.Deadline)
		}
		groups[item.Deadline] = append(groups[item.Deadline], item)
	}

	for _, deadline := range order {
		day, err := time.ParseInLocation(entities.DateLayout, deadline, sc.svc.loc)
		if err != nil {
			continue
		}
		group := groups[deadline]
		durations := make([]int, len(group))
		for i, item := range group {
			durations[i] = item.DurationMinutes
		}
		slots, _ := ScheduleBackToBack(day, sc.svc.dayStart, durations)

		for i, item := range group {
			start := slots[i].Start
			item.StartTime = &start
			id, ok := sc.create(ctx, entities.CalendarEvent{
				Title:       fmt.Sprintf("%s (%s)", item.Task, item.Owner),
				Description: fmt.Sprintf("Action item assigned to %s", item.Owner),
				Start:       start,
				Duration:    time.Duration(item.DurationMinutes) * time.Minute,
			})
			if ok {
				item.GoogleEventID = &id
				item.Status = entities.ActionItemScheduled
			}
		}
	}
}
