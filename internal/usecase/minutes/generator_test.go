package minutes

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// 2026-10-14 is a Wednesday
var refDay = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type recordingSummarizer struct {
	input string
	err   error
}

func (r *recordingSummarizer) Summarize(_ context.Context, text string) (string, error) {
	r.input = text
	if r.err != nil {
		return "", r.err
	}
	return "The team reviewed the launch.", nil
}

func newGenerator(s Summarizer) *Generator {
	g := NewGenerator(s)
	g.SetClock(func() time.Time { return refDay })
	return g
}

func TestGenerateClassifiesSentences(t *testing.T) {
	transcript := `Alice: We will ship the beta on Monday.
Bob: Pricing needs more research, let's discuss later.
Alice: We agreed to revisit hiring next month.
Bob: The weather was nice.`

	draft, err := newGenerator(&recordingSummarizer{}).Generate(context.Background(), transcript)
	require.NoError(t, err)

	assert.Equal(t, "The team reviewed the launch.", draft.Summary)
	// "agreed to ... revisit" matches both vocabularies and counts as a decision
	assert.Equal(t, []string{
		"We will ship the beta on Monday.",
		"We agreed to revisit hiring next month.",
	}, draft.Decisions)
	assert.Equal(t, []string{"Pricing needs more research, let's discuss later."}, draft.FutureDiscussionPoints)
}

func TestGenerateDefaultsNextMeeting(t *testing.T) {
	draft, err := newGenerator(&recordingSummarizer{}).Generate(context.Background(), "We talked about the roadmap.")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-21", draft.NextMeetingDate)
	assert.True(t, draft.NextMeetingDefaulted)
}

func TestGenerateFindsNextMeetingDate(t *testing.T) {
	draft, err := newGenerator(&recordingSummarizer{}).Generate(context.Background(),
		"Good progress today. Our next meeting is on 2026-11-02.")
	require.NoError(t, err)
	assert.Equal(t, "2026-11-02", draft.NextMeetingDate)
	assert.False(t, draft.NextMeetingDefaulted)
}

func TestGenerateTruncatesFromTheEnd(t *testing.T) {
	words := make([]string, MaxSummaryTokens+50)
	for i := range words {
		words[i] = "word"
	}
	words[0] = "first"
	words[len(words)-1] = "last"

	rec := &recordingSummarizer{}
	_, err := newGenerator(rec).Generate(context.Background(), strings.Join(words, " "))
	require.NoError(t, err)
	assert.Len(t, strings.Fields(rec.input), MaxSummaryTokens)
	assert.True(t, strings.HasPrefix(rec.input, "first "))
	assert.NotContains(t, rec.input, "last")
}

func TestGenerateRejectsEmptyTranscript(t *testing.T) {
	_, err := newGenerator(&recordingSummarizer{}).Generate(context.Background(), "  \n ")
	var ve *entities.ValidationError
	assert.True(t, errors.As(err, &ve))
}

func TestGenerateWrapsSummarizerFailure(t *testing.T) {
	_, err := newGenerator(&recordingSummarizer{err: errors.New("503")}).Generate(context.Background(), "We will ship.")
	var ee *entities.ExternalServiceError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, entities.ServiceSummarizer, ee.Service)
}

func TestCreateFromTranscript(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	tr := entities.NewTranscript("u1", "meet-1", "a.mp4", "We will ship the beta.")
	require.NoError(t, repos.Transcripts.Create(ctx, tr))

	svc := NewService(repos.Minutes, repos.Transcripts, newGenerator(&recordingSummarizer{}), nil)
	m, err := svc.Create(ctx, "u1", CreateInput{TranscriptID: tr.ID})
	require.NoError(t, err)
	assert.Equal(t, "meet-1", m.MeetingID)
	assert.Equal(t, "2026-10-14", m.Date)

	got, err := svc.Get(ctx, "u1", m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	// another user cannot see it
	_, err = svc.Get(ctx, "u2", m.ID)
	var nf *entities.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestCreateEmptyWritesNothing(t *testing.T) {
	ctx := context.Background()
	repos := memory.New()
	svc := NewService(repos.Minutes, repos.Transcripts, newGenerator(&recordingSummarizer{}), nil)

	_, err := svc.Create(ctx, "u1", CreateInput{Text: ""})
	require.Error(t, err)

	list, err := svc.List(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, "u1", CreateInput{TranscriptID: "missing"})
	var nf *entities.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
