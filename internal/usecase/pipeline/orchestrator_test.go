package pipeline

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
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/meeting"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/minutes"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/notification"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/transcription"
	"github.com/Samadhi-12/MinuteMe/pkg/ai"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

const meetingTranscript = "Speaker A: Alice will prepare the budget report by Friday.\n" +
	"Speaker B: We agreed to launch in November.\n" +
	"Speaker A: We should revisit the pricing model at the next meeting."

// storingTranscriber stands in for the media stage and stores a fixed text
type storingTranscriber struct {
	repo  repositories.TranscriptRepository
	text  string
	err   error
	panic bool
}

func (s *storingTranscriber) Transcribe(ctx context.Context, id entities.Identity, req transcription.Request) (*entities.Transcript, error) {
	if s.panic {
		panic("decoder exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	t := entities.NewTranscript(id.UserID, req.MeetingID, req.Source, s.text)
	t.Automated = req.Automated
	return t, s.repo.Create(ctx, t)
}

type orchestratorFixture struct {
	repos    *repositories.Repositories
	stt      *storingTranscriber
	notifier *notification.Service
	meetings *meeting.Service
	orch     *Orchestrator
}

func newOrchestratorFixture(t *testing.T, automations int) *orchestratorFixture {
	t.Helper()
	repos := memory.New()
	q := quota.NewService(repos.Usage, config.QuotaConfig{
		FreeMeetings:       5,
		FreeAutomations:    automations,
		FreeTranscriptions: 5,
		FreeMaxVideo:       15 * time.Minute,
		FreeMinutesHistory: 3,
	}, nil, nil)

	planner := agenda.NewService(repos.Agendas, repos.Minutes, nil, nil, nil)
	items := actionitem.NewService(repos, actionitem.Options{Finalizer: NewLoopCloser(planner, nil)})
	stt := &storingTranscriber{repo: repos.Transcripts, text: meetingTranscript}
	mins := minutes.NewService(repos.Minutes, repos.Transcripts, minutes.NewGenerator(ai.NewExtractiveSummarizer(3)), nil)
	meetings := meeting.NewService(repos, q, meeting.Options{})
	notifier := notification.NewService(repos.Notifications, nil)

	orch := NewOrchestrator(
		Stages{Transcription: stt, Minutes: mins, ActionItems: items},
		meetings, q, notifier,
		config.PipelineConfig{MaxConcurrent: 2, RunTimeout: time.Minute},
		nil, nil,
	)
	return &orchestratorFixture{repos: repos, stt: stt, notifier: notifier, meetings: meetings, orch: orch}
}

// trail returns the notification messages oldest first
func (f *orchestratorFixture) trail(t *testing.T, userID string) []*entities.Notification {
	t.Helper()
	list, err := f.notifier.List(context.Background(), userID)
	require.NoError(t, err)
	out := make([]*entities.Notification, len(list))
	for i, n := range list {
		out[len(list)-1-i] = n
	}
	return out
}

func messages(ns []*entities.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Message
	}
	return out
}

var user = entities.Identity{UserID: "u1", Tier: entities.TierFree, Role: entities.RoleUser}

func TestAutomationRunsAllStages(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 5)

	run, err := f.orch.Start(ctx, user, StartInput{Source: "https://example.com/weekly.mp4", Schedule: true})
	require.NoError(t, err)
	assert.Equal(t, "started", run.Status)
	assert.NotEmpty(t, run.RunID)
	require.NotEmpty(t, run.MeetingID)

	f.orch.Wait()

	assert.Equal(t, []string{
		notification.MsgAutomationStarted,
		notification.MsgStepTranscribe,
		notification.MsgStepMinutes,
		notification.MsgStepActionItems,
		notification.MsgAutomationComplete,
	}, messages(f.trail(t, "u1")))

	m, err := f.meetings.Get(ctx, "u1", run.MeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingProcessed, m.Status)
	assert.True(t, m.AutomationUsed)

	latest, err := f.repos.Minutes.GetLatest(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Automated)
	assert.Equal(t, run.MeetingID, latest.MeetingID)
	assert.NotEmpty(t, latest.ActionItems)

	count, err := f.repos.Agendas.CountByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "the next agenda is planned")
}

func TestAutomationFailureIsReportedOnce(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 5)
	f.stt.err = entities.NewTranscriptionError(entities.PhaseDownload, errors.New("404 not found"))

	run, err := f.orch.Start(ctx, user, StartInput{Source: "https://example.com/missing.mp4"})
	require.NoError(t, err, "the trigger never sees stage failures")
	f.orch.Wait()

	trail := f.trail(t, "u1")
	require.Len(t, trail, 3)
	last := trail[len(trail)-1]
	assert.Equal(t, entities.NotificationError, last.Type)
	assert.True(t, strings.HasPrefix(last.Message, "❌ Automation failed. Reason: "))
	assert.Contains(t, last.Message, "404 not found")

	m, err := f.meetings.Get(ctx, "u1", run.MeetingID)
	require.NoError(t, err)
	assert.Equal(t, entities.MeetingFailed, m.Status)

	latest, err := f.repos.Minutes.GetLatest(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, latest, "later stages never ran")
}

func TestAutomationPanicIsRecovered(t *testing.T) {
	f := newOrchestratorFixture(t, 5)
	f.stt.panic = true

	_, err := f.orch.Start(context.Background(), user, StartInput{Source: "x"})
	require.NoError(t, err)
	f.orch.Wait()

	trail := f.trail(t, "u1")
	assert.Equal(t, notification.FailedMessage("internal error"), trail[len(trail)-1].Message)
}

func TestAutomationQuotaIsSynchronous(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 1)

	_, err := f.orch.Start(ctx, user, StartInput{Source: "x"})
	require.NoError(t, err)
	f.orch.Wait()

	_, err = f.orch.Start(ctx, user, StartInput{Source: "x"})
	var qe *entities.QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, entities.QuotaAutomation, qe.Kind)
	assert.Contains(t, qe.Error(), "1 of 1")

	premium := entities.Identity{UserID: "p1", Tier: entities.TierPremium}
	_, err = f.orch.Start(ctx, premium, StartInput{Source: "x"})
	assert.NoError(t, err)
	f.orch.Wait()
}

// flakyMeetings fails MarkAutomated, or triggers a shutdown while it runs
type flakyMeetings struct {
	*meeting.Service
	err      error
	shutdown func()
}

func (m *flakyMeetings) MarkAutomated(ctx context.Context, userID, id string) error {
	if m.shutdown != nil {
		m.shutdown()
	}
	if m.err != nil {
		return m.err
	}
	return m.Service.MarkAutomated(ctx, userID, id)
}

func TestStartReleasesQuotaWhenRunCannotStart(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 1)
	q := quota.NewService(f.repos.Usage, config.QuotaConfig{FreeAutomations: 1}, nil, nil)
	pipelineCfg := config.PipelineConfig{MaxConcurrent: 1, RunTimeout: time.Minute}

	broken := &flakyMeetings{Service: f.meetings, err: errors.New("db down")}
	orch := NewOrchestrator(Stages{Transcription: f.stt}, broken, q, f.notifier, pipelineCfg, nil, nil)
	_, err := orch.Start(ctx, user, StartInput{Source: "x"})
	require.Error(t, err)

	st, err := q.Check(ctx, user, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Used)

	closing := &flakyMeetings{Service: f.meetings}
	orch = NewOrchestrator(Stages{Transcription: f.stt}, closing, q, f.notifier, pipelineCfg, nil, nil)
	closing.shutdown = func() { require.NoError(t, orch.Shutdown(ctx)) }
	_, err = orch.Start(ctx, user, StartInput{Source: "x"})
	assert.ErrorIs(t, err, ErrShuttingDown)

	st, err = q.Check(ctx, user, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Used)

	// the cycle is still there for a healthy run
	_, err = f.orch.Start(ctx, user, StartInput{Source: "x"})
	require.NoError(t, err)
	f.orch.Wait()
}

func TestStartValidatesInput(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 5)

	var ve *entities.ValidationError
	_, err := f.orch.Start(ctx, user, StartInput{Source: "  "})
	assert.True(t, errors.As(err, &ve))

	var nf *entities.NotFoundError
	_, err = f.orch.Start(ctx, user, StartInput{Source: "x", MeetingID: "missing"})
	assert.True(t, errors.As(err, &nf))
}

func TestShutdownRejectsNewRuns(t *testing.T) {
	ctx := context.Background()
	f := newOrchestratorFixture(t, 5)

	_, err := f.orch.Start(ctx, user, StartInput{Source: "x"})
	require.NoError(t, err)

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, f.orch.Shutdown(shutdownCtx))

	trail := f.trail(t, "u1")
	assert.Equal(t, notification.MsgAutomationComplete, trail[len(trail)-1].Message, "in-flight run finished")

	_, err = f.orch.Start(ctx, user, StartInput{Source: "x"})
	assert.ErrorIs(t, err, ErrShuttingDown)
}

func TestReason(t *testing.T) {
	assert.Equal(t, "the run timed out", Reason(context.DeadlineExceeded))
	assert.Equal(t, "boom", Reason(errors.New("boom")))
}
