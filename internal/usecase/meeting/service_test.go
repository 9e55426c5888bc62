package meeting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

type fakeCalendar struct {
	events []entities.CalendarEvent
}

func (f *fakeCalendar) CreateEvent(_ context.Context, _ string, ev entities.CalendarEvent) (string, error) {
	f.events = append(f.events, ev)
	return "evt-" + ev.Title, nil
}

var limits = config.QuotaConfig{
	FreeMeetings:       2,
	FreeAutomations:    5,
	FreeTranscriptions: 5,
	FreeMaxVideo:       15 * time.Minute,
	FreeMinutesHistory: 3,
}

func seedAgenda(t *testing.T, repos *repositories.Repositories, userID string) *entities.Agenda {
	t.Helper()
	a := &entities.Agenda{UserID: userID, MeetingName: "Release Sync", MeetingDate: "2026-10-20", Items: []entities.AgendaItem{
		{Topic: "Deploy hotfix", Priority: entities.PriorityUrgent, TimeAllocatedMinutes: 20},
		{Topic: "Q3 roadmap", Priority: entities.PriorityDiscussion, TimeAllocatedMinutes: 15},
		{Topic: "Office move", Priority: entities.PriorityInfo, TimeAllocatedMinutes: 10},
	}}
	require.NoError(t, repos.Agendas.CreateNext(context.Background(), a))
	return a
}

func TestScheduleAgendaPremiumCreatesEvents(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	cal := &fakeCalendar{}
	svc := NewService(repos, quota.NewService(repos.Usage, limits, nil, nil), Options{Calendar: cal})
	a := seedAgenda(t, repos, "p1")

	res, err := svc.ScheduleAgenda(ctx, entities.Identity{UserID: "p1", Tier: entities.TierPremium}, ScheduleInput{AgendaID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingScheduled, res.Meeting.Status)
	assert.Equal(t, a.ID, res.Meeting.AgendaID)
	assert.Len(t, res.EventIDs, 3)

	require.Len(t, cal.events, 3)
	assert.Equal(t, "09:00", cal.events[0].Start.Format("15:04"))
	assert.Equal(t, "09:20", cal.events[1].Start.Format("15:04"))
	assert.Equal(t, "09:35", cal.events[2].Start.Format("15:04"))

	stored, err := svc.Get(ctx, "p1", res.Meeting.ID)
	require.NoError(t, err)
	assert.Len(t, stored.CalendarEventIDs, 3)
}

func TestScheduleAgendaFreeTierQuota(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	cal := &fakeCalendar{}
	svc := NewService(repos, quota.NewService(repos.Usage, limits, nil, nil), Options{Calendar: cal})
	a := seedAgenda(t, repos, "f1")
	id := entities.Identity{UserID: "f1", Tier: entities.TierFree}

	for i := 0; i < 2; i++ {
		res, err := svc.ScheduleAgenda(ctx, id, ScheduleInput{AgendaID: a.ID})
		require.NoError(t, err)
		assert.Empty(t, res.EventIDs)
	}
	assert.Empty(t, cal.events, "free tier never reaches the calendar")

	_, err := svc.ScheduleAgenda(ctx, id, ScheduleInput{AgendaID: a.ID})
	var qe *entities.QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 2, qe.Limit)

	_, err = svc.ScheduleAgenda(ctx, id, ScheduleInput{AgendaID: "99"})
	var nf *entities.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestEventsMergesMeetingsAndItems(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewService(repos, quota.NewService(repos.Usage, limits, nil, nil), Options{})

	m := entities.NewMeeting("u1", "Weekly", "2026-10-16", "")
	require.NoError(t, repos.Meetings.Create(ctx, m))

	unscheduled := entities.NewActionItem("u1", "min-1", "Send notes", "Ana", "2026-10-15", 60)
	require.NoError(t, repos.ActionItems.Create(ctx, unscheduled))

	scheduled := entities.NewActionItem("u1", "min-1", "Book room", "Ben", "2026-10-17", 30)
	start := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	scheduled.StartTime = &start
	require.NoError(t, repos.ActionItems.Create(ctx, scheduled))

	events, err := svc.Events(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Send notes (Ana)", events[0].Title)
	assert.True(t, events[0].AllDay)
	assert.Equal(t, entities.EventMeeting, events[1].Kind)
	assert.Equal(t, "Book room (Ben)", events[2].Title)
	assert.False(t, events[2].AllDay)
	assert.Equal(t, start.Add(30*time.Minute), events[2].End)

	other, err := svc.Events(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUpdateAndStatus(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewService(repos, quota.NewService(repos.Usage, limits, nil, nil), Options{})

	m, err := svc.CreateForRun(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, AutomatedMeetingName, m.MeetingName)

	name := "Design review"
	got, err := svc.Update(ctx, "u1", m.ID, UpdateInput{MeetingName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.MeetingName)

	bad := entities.MeetingStatus("archived")
	_, err = svc.Update(ctx, "u1", m.ID, UpdateInput{Status: &bad})
	var ve *entities.ValidationError
	assert.True(t, errors.As(err, &ve))

	require.NoError(t, svc.MarkAutomated(ctx, "u1", m.ID))
	require.NoError(t, svc.SetStatus(ctx, "u1", m.ID, entities.MeetingProcessed))
	got, err = svc.Get(ctx, "u1", m.ID)
	require.NoError(t, err)
	assert.True(t, got.AutomationUsed)
	assert.Equal(t, entities.MeetingProcessed, got.Status)

	var nf *entities.NotFoundError
	assert.True(t, errors.As(svc.SetStatus(ctx, "u2", m.ID, entities.MeetingFailed), &nf))
	require.NoError(t, svc.Delete(ctx, "u1", m.ID))
}
