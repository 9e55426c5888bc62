package agenda

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
)

func TestAssignPriority(t *testing.T) {
	tests := []struct {
		topic string
		want  entities.Priority
	}{
		{"Deploy the new build", entities.PriorityUrgent},
		{"Review roadmap for Q3", entities.PriorityDiscussion},
		{"Lunch plans", entities.PriorityInfo},
		{"Critical outage in payments", entities.PriorityUrgent},
		{"Budget for the offsite", entities.PriorityDiscussion},
		{"URGENT: fix login bug", entities.PriorityUrgent},
		{"Team birthdays", entities.PriorityInfo},
		// urgent rules are evaluated before discussion rules
		{"Plan the hotfix deployment", entities.PriorityUrgent},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignPriority(tt.topic))
			assert.Equal(t, AssignPriority(tt.topic), AssignPriority(tt.topic))
		})
	}
}

func TestAllocateTime(t *testing.T) {
	assert.Equal(t, 20, entities.AllocateTime(entities.PriorityUrgent))
	assert.Equal(t, 15, entities.AllocateTime(entities.PriorityDiscussion))
	assert.Equal(t, 10, entities.AllocateTime(entities.PriorityInfo))
}

type stubLabels struct {
	label string
	err   error
}

func (s stubLabels) Classify(_ context.Context, _ string, _ []string) (string, error) {
	return s.label, s.err
}

func TestZeroShotClassifier(t *testing.T) {
	ctx := context.Background()
	z := NewZeroShotClassifier(stubLabels{label: LabelDiscussion}, nil)
	assert.Equal(t, entities.PriorityDiscussion, z.Classify(ctx, "Lunch plans"))

	z = NewZeroShotClassifier(stubLabels{err: errors.New("timeout")}, nil)
	assert.Equal(t, entities.PriorityUrgent, z.Classify(ctx, "Deploy the new build"))
}

func TestKeywordNamer(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, DefaultMeetingName, KeywordNamer{}.Name(ctx, []string{"Misc"}))
	name := KeywordNamer{Phrases: 2}.Name(ctx, []string{"Quarterly marketing budget review", "Hiring pipeline"})
	assert.NotEqual(t, DefaultMeetingName, name)
	assert.Contains(t, name, "Quarterly Marketing Budget Review")
}

type stubTitler struct {
	title string
	err   error
}

func (s stubTitler) Title(_ context.Context, _ []string) (string, error) { return s.title, s.err }

func TestSummaryNamerFallsBack(t *testing.T) {
	ctx := context.Background()
	topics := []string{"Quarterly marketing budget review"}
	assert.Equal(t, "Marketing Sync", NewSummaryNamer(stubTitler{title: "Marketing Sync"}, nil).Name(ctx, topics))
	assert.Equal(t, "Quarterly Marketing Budget Review",
		NewSummaryNamer(stubTitler{err: errors.New("down")}, nil).Name(ctx, topics))
}

func newService(t *testing.T) (*Service, *repositories.Repositories) {
	t.Helper()
	repos := memory.New()
	s := NewService(repos.Agendas, repos.Minutes, KeywordClassifier{}, KeywordNamer{Phrases: 2}, nil)
	s.SetClock(func() time.Time { return time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC) })
	return s, repos
}

func TestGenerateExplicitInput(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)

	a, err := s.Generate(ctx, "u1", &Input{
		MeetingDate:      "2026-10-20",
		Topics:           []string{"Deploy the new build", "Review roadmap for Q3"},
		DiscussionPoints: []string{"Lunch plans", "lunch plans"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", a.ID)
	assert.Equal(t, "2026-10-20", a.MeetingDate)
	require.Len(t, a.Items, 3, "near-duplicate topics collapse")

	assert.Equal(t, entities.PriorityUrgent, a.Items[0].Priority)
	assert.Equal(t, 20, a.Items[0].TimeAllocatedMinutes)
	assert.Equal(t, entities.PriorityDiscussion, a.Items[1].Priority)
	assert.Equal(t, entities.PriorityInfo, a.Items[2].Priority)
	assert.Equal(t, 45, a.TotalMinutes())

	b, err := s.Generate(ctx, "u1", &Input{Topics: []string{"Hiring"}})
	require.NoError(t, err)
	assert.Equal(t, "2", b.ID)
	assert.Equal(t, "2026-10-14", b.MeetingDate)

	c, err := s.Generate(ctx, "u2", &Input{Topics: []string{"Hiring"}})
	require.NoError(t, err)
	assert.Equal(t, "1", c.ID, "sequence is per user")
}

func TestGenerateWithoutMinutesUsesFallback(t *testing.T) {
	s, _ := newService(t)
	a, err := s.Generate(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Len(t, a.Items, len(FallbackTopics)+len(FallbackDiscussionPoints))
	assert.Equal(t, []string(FallbackTopics), []string(a.Topics))
}

func TestGenerateFromLatestMinutes(t *testing.T) {
	ctx := context.Background()
	s, repos := newService(t)
	m := entities.NewMinutes("u1", "", "", "2026-10-14", entities.MinutesDraft{
		FutureDiscussionPoints: []string{"Revisit the hiring plan", "Vendor contract renewal"},
		NextMeetingDate:        "2026-10-21",
	})
	require.NoError(t, repos.Minutes.Create(ctx, m))

	a, err := s.Generate(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-21", a.MeetingDate)
	assert.Equal(t, m.ID, a.SourceMinutesID)
	assert.Equal(t, []string{"Revisit the hiring plan", "Vendor contract renewal"}, []string(a.Topics))
	assert.Empty(t, a.DiscussionPoints)
}

func TestGenerateValidation(t *testing.T) {
	s, _ := newService(t)
	var ve *entities.ValidationError

	_, err := s.Generate(context.Background(), "u1", &Input{})
	assert.True(t, errors.As(err, &ve))

	_, err = s.Generate(context.Background(), "u1", &Input{Topics: []string{"x"}, MeetingDate: "next tuesday"})
	assert.True(t, errors.As(err, &ve))
}

func TestUpdateRecomputesTimeBoxes(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	a, err := s.Generate(ctx, "u1", &Input{Topics: []string{"Lunch plans"}})
	require.NoError(t, err)

	name := "Ops Review"
	got, err := s.Update(ctx, "u1", a.ID, UpdateInput{
		MeetingName: &name,
		Items: []ItemInput{
			{Topic: "Outage follow-up", Priority: entities.PriorityUrgent},
			{Topic: "Design review"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Ops Review", got.MeetingName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, 20, got.Items[0].TimeAllocatedMinutes)
	assert.Equal(t, entities.PriorityDiscussion, got.Items[1].Priority)
	assert.Equal(t, 15, got.Items[1].TimeAllocatedMinutes)

	_, err = s.Update(ctx, "u1", a.ID, UpdateInput{Items: []ItemInput{{Topic: "x", Priority: "high"}}})
	var ve *entities.ValidationError
	assert.True(t, errors.As(err, &ve))

	require.NoError(t, s.Delete(ctx, "u1", a.ID))
	var nf *entities.NotFoundError
	assert.True(t, errors.As(s.Delete(ctx, "u1", a.ID), &nf))
}

func TestGenerateAfterDeletingOldestAgendas(t *testing.T) {
	ctx := context.Background()
	s, _ := newService(t)
	for i := 0; i < 4; i++ {
		_, err := s.Generate(ctx, "u1", &Input{Topics: []string{"Hiring"}})
		require.NoError(t, err)
	}
	require.NoError(t, s.Delete(ctx, "u1", "1"))
	require.NoError(t, s.Delete(ctx, "u1", "2"))

	a, err := s.Generate(ctx, "u1", &Input{Topics: []string{"Budget review"}})
	require.NoError(t, err)
	assert.Equal(t, "5", a.ID)
}
