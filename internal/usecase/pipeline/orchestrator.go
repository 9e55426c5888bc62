package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/metrics"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/minutes"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/notification"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/transcription"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
	"github.com/Samadhi-12/MinuteMe/pkg/jobcontext"
)

// Stage names used for metrics and logs
const (
	StageTranscription = "transcription"
	StageMinutes       = "minutes"
	StageActionItems   = "action_items"
)

// JobType tags automation runs in the job context
const JobType = "automation"

// ErrShuttingDown is returned by Start once Shutdown has been called
var ErrShuttingDown = errors.New("automation is shutting down")

// Transcriber is the transcription stage
type Transcriber interface {
	Transcribe(ctx context.Context, id entities.Identity, req transcription.Request) (*entities.Transcript, error)
}

// MinutesWriter is the minutes stage
type MinutesWriter interface {
	Create(ctx context.Context, userID string, in minutes.CreateInput) (*entities.Minutes, error)
}

// ActionItemStage is the action item stage
type ActionItemStage interface {
	ExtractAndSchedule(ctx context.Context, userID, minutesID string, schedule bool) (*actionitem.Result, error)
}

// Meetings tracks the meeting an automation run reports on
type Meetings interface {
	Get(ctx context.Context, userID, id string) (*entities.Meeting, error)
	CreateForRun(ctx context.Context, userID string) (*entities.Meeting, error)
	MarkAutomated(ctx context.Context, userID, id string) error
	SetStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) error
}

// QuotaConsumer takes one unit of a metered kind and gives it back when the
// run it paid for could not start
type QuotaConsumer interface {
	Consume(ctx context.Context, id entities.Identity, kind entities.QuotaKind) (entities.QuotaStatus, error)
	Release(ctx context.Context, id entities.Identity, kind entities.QuotaKind) error
}

// Notifier appends to the notification trail
type Notifier interface {
	Notify(ctx context.Context, userID string, typ entities.NotificationType, message, relatedID string)
}

// Stages bundles the three stages a run executes in order
type Stages struct {
	Transcription Transcriber
	Minutes       MinutesWriter
	ActionItems   ActionItemStage
}

// StartInput is the trigger of one automation run
type StartInput struct {
	Source    string
	MeetingID string
	Schedule  bool
}

// Run acknowledges a started automation
type Run struct {
	RunID     string `json:"run_id"`
	MeetingID string `json:"meeting_id"`
	Status    string `json:"status"`
}

// Orchestrator runs Transcription, Minutes and ActionItems in the background.
// Progress and failures are reported only through notifications.
type Orchestrator struct {
	stages   Stages
	meetings Meetings
	quota    QuotaConsumer
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger

	timeout time.Duration
	sem     chan struct{}

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewOrchestrator creates an orchestrator bounded by cfg
func NewOrchestrator(
	stages Stages,
	meetings Meetings,
	q QuotaConsumer,
	notifier Notifier,
	cfg config.PipelineConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Orchestrator {
	workers := cfg.MaxConcurrent
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		stages:   stages,
		meetings: meetings,
		quota:    q,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		timeout:  cfg.RunTimeout,
		sem:      make(chan struct{}, workers),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Start consumes one automation cycle, marks the meeting as processing and
// launches the run. Only precondition failures are returned.
func (o *Orchestrator) Start(ctx context.Context, id entities.Identity, in StartInput) (*Run, error) {
	in.Source = strings.TrimSpace(in.Source)
	if in.Source == "" {
		return nil, entities.NewValidation("source", "is required")
	}

	o.mu.Lock()
	closed := o.closed
	o.mu.Unlock()
	if closed {
		return nil, ErrShuttingDown
	}

	if in.MeetingID != "" {
		if _, err := o.meetings.Get(ctx, id.UserID, in.MeetingID); err != nil {
			return nil, err
		}
	}

	if _, err := o.quota.Consume(ctx, id, entities.QuotaAutomation); err != nil {
		return nil, err
	}

	meetingID := in.MeetingID
	if meetingID == "" {
		m, err := o.meetings.CreateForRun(ctx, id.UserID)
		if err != nil {
			o.refund(ctx, id)
			return nil, err
		}
		meetingID = m.ID
	}
	if err := o.meetings.MarkAutomated(ctx, id.UserID, meetingID); err != nil {
		o.refund(ctx, id)
		return nil, fmt.Errorf("failed to mark meeting: %w", err)
	}
	in.MeetingID = meetingID

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		o.refund(ctx, id)
		o.setStatus(ctx, id.UserID, meetingID, entities.MeetingFailed)
		return nil, ErrShuttingDown
	}
	o.wg.Add(1)
	o.mu.Unlock()

	runID := uuid.NewString()
	o.notifier.Notify(ctx, id.UserID, entities.NotificationInfo, notification.MsgAutomationStarted, meetingID)

	if o.logger != nil {
		o.logger.Info("🚀 Automation started",
			zap.String("run_id", runID),
			zap.String("user_id", id.UserID),
			zap.String("meeting_id", meetingID),
		)
	}

	go o.run(runID, id, in)

	return &Run{RunID: runID, MeetingID: meetingID, Status: "started"}, nil
}

// refund gives the automation cycle back when Start fails after Consume
func (o *Orchestrator) refund(ctx context.Context, id entities.Identity) {
	if err := o.quota.Release(ctx, id, entities.QuotaAutomation); err != nil && o.logger != nil {
		o.logger.Error("❌ Failed to release automation quota",
			zap.String("user_id", id.UserID),
			zap.Error(err),
		)
	}
}

func (o *Orchestrator) run(runID string, id entities.Identity, in StartInput) {
	defer o.wg.Done()

	select {
	case o.sem <- struct{}{}:
		defer func() { <-o.sem }()
	case <-o.baseCtx.Done():
		o.finish(runID, id, in.MeetingID, ErrShuttingDown)
		return
	}

	ctx, cancel := jobcontext.JobBegin(o.baseCtx, runID, JobType, id.UserID, o.timeout)
	defer cancel()

	err := jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		return o.execute(ctx, id, in)
	})
	o.finish(runID, id, in.MeetingID, err)
}

func (o *Orchestrator) execute(ctx context.Context, id entities.Identity, in StartInput) error {
	userID := id.UserID

	o.notifier.Notify(ctx, userID, entities.NotificationInfo, notification.MsgStepTranscribe, in.MeetingID)
	started := time.Now()
	t, err := o.stages.Transcription.Transcribe(ctx, id, transcription.Request{
		Source:    in.Source,
		MeetingID: in.MeetingID,
		Automated: true,
	})
	o.metrics.ObserveStage(StageTranscription, started)
	if err != nil {
		return err
	}

	o.notifier.Notify(ctx, userID, entities.NotificationInfo, notification.MsgStepMinutes, in.MeetingID)
	started = time.Now()
	m, err := o.stages.Minutes.Create(ctx, userID, minutes.CreateInput{
		TranscriptID: t.ID,
		MeetingID:    in.MeetingID,
		Automated:    true,
	})
	o.metrics.ObserveStage(StageMinutes, started)
	if err != nil {
		return err
	}

	o.notifier.Notify(ctx, userID, entities.NotificationInfo, notification.MsgStepActionItems, in.MeetingID)
	started = time.Now()
	_, err = o.stages.ActionItems.ExtractAndSchedule(ctx, userID, m.ID, in.Schedule)
	o.metrics.ObserveStage(StageActionItems, started)
	return err
}

// finish records the terminal state. It runs detached from the job context
// so a timed out run still reports.
func (o *Orchestrator) finish(runID string, id entities.Identity, meetingID string, runErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if runErr == nil {
		o.setStatus(ctx, id.UserID, meetingID, entities.MeetingProcessed)
		o.notifier.Notify(ctx, id.UserID, entities.NotificationSuccess, notification.MsgAutomationComplete, meetingID)
		o.metrics.RunFinished(metrics.StatusSuccess)
		if o.logger != nil {
			o.logger.Info("✅ Automation complete",
				zap.String("run_id", runID),
				zap.String("user_id", id.UserID),
				zap.String("meeting_id", meetingID),
			)
		}
		return
	}

	o.setStatus(ctx, id.UserID, meetingID, entities.MeetingFailed)
	o.notifier.Notify(ctx, id.UserID, entities.NotificationError, notification.FailedMessage(Reason(runErr)), meetingID)
	o.metrics.RunFinished(metrics.StatusFailed)
	if o.logger != nil {
		fields := []zap.Field{
			zap.String("run_id", runID),
			zap.String("user_id", id.UserID),
			zap.String("meeting_id", meetingID),
			zap.Error(runErr),
		}
		var p *jobcontext.PanicError
		if errors.As(runErr, &p) {
			fields = append(fields, zap.ByteString("stack", p.Stack))
		}
		o.logger.Error("❌ Automation failed", fields...)
	}
}

func (o *Orchestrator) setStatus(ctx context.Context, userID, meetingID string, status entities.MeetingStatus) {
	if err := o.meetings.SetStatus(ctx, userID, meetingID, status); err != nil && o.logger != nil {
		o.logger.Warn("⚠️ Failed to update meeting status",
			zap.String("meeting_id", meetingID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

// Reason renders a run failure for the notification trail
func Reason(err error) string {
	var p *jobcontext.PanicError
	switch {
	case errors.As(err, &p):
		return "internal error"
	case errors.Is(err, context.DeadlineExceeded):
		return "the run timed out"
	case errors.Is(err, ErrShuttingDown), errors.Is(err, context.Canceled):
		return "the server is shutting down"
	}
	return err.Error()
}

// Shutdown stops accepting runs and waits for in-flight ones. When ctx ends
// first the remaining runs are cancelled.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		o.cancel()
		return nil
	case <-ctx.Done():
		o.cancel()
		<-done
		return ctx.Err()
	}
}

// Wait blocks until every started run has finished
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}
