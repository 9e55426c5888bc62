package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
)

type okCalendar struct{ n int }

func (c *okCalendar) CreateEvent(context.Context, string, entities.CalendarEvent) (string, error) {
	c.n++
	return "evt", nil
}

func loopFixture(repos *repositories.Repositories) *actionitem.Service {
	planner := agenda.NewService(repos.Agendas, repos.Minutes, agenda.KeywordClassifier{}, agenda.KeywordNamer{Phrases: 2}, nil)
	return actionitem.NewService(repos, actionitem.Options{
		Calendar:  &okCalendar{},
		Finalizer: NewLoopCloser(planner, nil),
	})
}

func storeMinutes(t *testing.T, repos *repositories.Repositories, next string, future []string) *entities.Minutes {
	t.Helper()
	m := entities.NewMinutes("u1", "", "", "2026-10-14", entities.MinutesDraft{
		Summary:                "Dana will update the onboarding checklist. Eli must fix the signup bug.",
		FutureDiscussionPoints: future,
		NextMeetingDate:        next,
	})
	require.NoError(t, repos.Minutes.Create(context.Background(), m))
	return m
}

func TestMinutesToAgendaRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	topics := []string{"Review the hiring plan", "Critical checkout bug"}
	m := storeMinutes(t, repos, "2026-10-21", topics)

	res, err := loopFixture(repos).ExtractAndSchedule(ctx, "u1", m.ID, true)
	require.NoError(t, err)
	require.Len(t, res.ActionItems, 2)

	count, err := repos.Agendas.CountByUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "exactly one new agenda")

	require.NotNil(t, res.NextAgenda)
	a, err := repos.Agendas.GetByID(ctx, "u1", res.NextAgenda.ID)
	require.NoError(t, err)
	assert.Equal(t, topics, []string(a.Topics))
	assert.Empty(t, a.DiscussionPoints)
	assert.Equal(t, "2026-10-21", a.MeetingDate)
	assert.Equal(t, m.ID, a.SourceMinutesID)

	require.Len(t, a.Items, 2)
	assert.Equal(t, "Review the hiring plan", a.Items[0].Source)
	assert.Equal(t, entities.PriorityUrgent, a.Items[1].Priority)
}

func TestNoNextMeetingNoAgenda(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	m := storeMinutes(t, repos, "", []string{"Review the hiring plan"})

	res, err := loopFixture(repos).ExtractAndSchedule(ctx, "u1", m.ID, false)
	require.NoError(t, err)
	assert.Nil(t, res.NextAgenda)

	count, err := repos.Agendas.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNoFuturePointsNoAgenda(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	m := storeMinutes(t, repos, "2026-10-21", nil)

	res, err := loopFixture(repos).ExtractAndSchedule(ctx, "u1", m.ID, false)
	require.NoError(t, err)
	assert.Nil(t, res.NextAgenda)
	assert.Len(t, res.ActionItems, 2, "items are stored regardless")
}
