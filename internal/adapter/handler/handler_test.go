package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/errors"
	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/http/middleware"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/meeting"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/minutes"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/notification"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/transcription"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/user"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
	"github.com/Samadhi-12/MinuteMe/pkg/validator"
)

var testLimits = config.QuotaConfig{
	FreeMeetings:       1,
	FreeAutomations:    5,
	FreeTranscriptions: 5,
	FreeMaxVideo:       15 * time.Minute,
	FreeMinutesHistory: 3,
}

type fakeRuns struct {
	err   error
	input pipeline.StartInput
}

func (f *fakeRuns) Start(_ context.Context, _ entities.Identity, in pipeline.StartInput) (*pipeline.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	return &pipeline.Run{RunID: "run-1", MeetingID: "m-1", Status: "running"}, nil
}

// headerAuth trusts X-User, X-Tier and X-Role so tests can pick the caller
func headerAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Request().Header.Get("X-User")
		if userID == "" {
			return errors.ErrUnauthenticated()
		}
		id := entities.Identity{
			UserID: userID,
			Tier:   entities.TierFree,
			Role:   entities.RoleUser,
		}
		if t := c.Request().Header.Get("X-Tier"); t != "" {
			id.Tier = entities.Tier(t)
		}
		if r := c.Request().Header.Get("X-Role"); r != "" {
			id.Role = entities.UserRole(r)
		}
		c.Set(middleware.IdentityKey, id)
		c.Set(middleware.UserIDKey, id.UserID)
		return next(c)
	}
}

type testServer struct {
	e     *echo.Echo
	repos *repositories.Repositories
	users *user.Service
	runs  *fakeRuns
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repos := memory.New()
	q := quota.NewService(repos.Usage, testLimits, nil, nil)
	users := user.NewService(repos.Users, nil)
	runs := &fakeRuns{}

	handlers := Handlers{
		Agenda:        NewAgenda(agenda.NewService(repos.Agendas, repos.Minutes, nil, nil, nil), nil),
		Meeting:       NewMeeting(meeting.NewService(repos, q, meeting.Options{}), nil),
		Transcription: NewTranscription(transcription.NewService(repos.Transcripts, q, nil, nil, nil, transcription.Options{}), 0, nil),
		Minutes:       NewMinutes(minutes.NewService(repos.Minutes, repos.Transcripts, minutes.NewGenerator(nil), nil), q, nil),
		ActionItem:    NewActionItem(actionitem.NewService(repos, actionitem.Options{}), nil),
		Automation:    NewAutomation(runs, nil),
		Notification:  NewNotification(notification.NewService(repos.Notifications, nil), nil),
		Quota:         NewQuota(q, nil),
		Admin:         NewAdmin(users, nil),
	}

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = ErrorHandler(nil)
	NewRouter("test", handlers, headerAuth, nil, nil).Setup(e)

	return &testServer{e: e, repos: repos, users: users, runs: runs}
}

type envelope struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Info    string            `json:"info"`
	Details map[string]string `json:"details"`
}

func (s *testServer) do(t *testing.T, method, path, body string, headers map[string]string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func as(userID string) map[string]string {
	return map[string]string{"X-User": userID}
}

func TestHealthIsPublic(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProtectedRoutesRequireIdentity(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/agendas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, int(errors.ErrorCode_UNAUTHENTICATED), env.Code)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/does-not-exist", "", as("u1"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(errors.ErrorCode_NOT_FOUND), env.Code)
}

func TestAgendaLifecycle(t *testing.T) {
	s := newTestServer(t)
	caller := as("u1")

	status, env := s.do(t, http.MethodPost, "/agenda",
		`{"meeting_name":"Release Sync","meeting_date":"2026-10-20","topics":["Deploy hotfix","Q3 roadmap"],"discussion_points":["Office move"]}`, caller)
	require.Equal(t, http.StatusOK, status, env.Info)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "success", env.Message)

	var created entities.Agenda
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Release Sync", created.MeetingName)
	require.Len(t, created.Items, 3)
	assert.Equal(t, entities.PriorityUrgent, created.Items[0].Priority)
	assert.Equal(t, entities.PriorityDiscussion, created.Items[1].Priority)
	assert.Equal(t, entities.PriorityInfo, created.Items[2].Priority)

	status, env = s.do(t, http.MethodGet, "/agendas", "", caller)
	require.Equal(t, http.StatusOK, status)
	var list []entities.Agenda
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	// Another user cannot see it
	status, _ = s.do(t, http.MethodGet, "/agenda/"+created.ID, "", as("u2"))
	assert.Equal(t, http.StatusNotFound, status)

	status, env = s.do(t, http.MethodPatch, "/agenda/"+created.ID,
		`{"meeting_name":"Renamed","items":[{"topic":"Critical bug triage"}]}`, caller)
	require.Equal(t, http.StatusOK, status, env.Info)
	var updated entities.Agenda
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed", updated.MeetingName)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 20, updated.Items[0].TimeAllocatedMinutes)

	status, _ = s.do(t, http.MethodDelete, "/agenda/"+created.ID, "", caller)
	assert.Equal(t, http.StatusOK, status)
	status, env = s.do(t, http.MethodGet, "/agenda/"+created.ID, "", caller)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int(errors.ErrorCode_NOT_FOUND), env.Code)
}

func TestAgendaRejectsBadDate(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/agenda", `{"topics":["Roadmap"],"meeting_date":"20/10/2026"}`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
	assert.NotEmpty(t, env.Info)
}

func TestAgendaRejectsMalformedJSON(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/agenda", `{"topics":`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_PAYLOAD), env.Code)
}

func TestScheduleAgendaConsumesMeetingQuota(t *testing.T) {
	s := newTestServer(t)
	caller := as("free-1")

	_, env := s.do(t, http.MethodPost, "/agenda", `{"meeting_date":"2026-10-20","topics":["Budget review"]}`, caller)
	var a entities.Agenda
	require.NoError(t, json.Unmarshal(env.Data, &a))

	status, env := s.do(t, http.MethodPost, "/schedule-agenda", `{"agenda_id":"`+a.ID+`"}`, caller)
	require.Equal(t, http.StatusOK, status, env.Info)
	var res meeting.ScheduleResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, a.ID, res.Meeting.AgendaID)
	assert.Empty(t, res.EventIDs)

	status, env = s.do(t, http.MethodPost, "/schedule-agenda", `{"agenda_id":"`+a.ID+`"}`, caller)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int(errors.ErrorCode_QUOTA_EXCEEDED), env.Code)
	assert.Equal(t, env.Message, env.Info)
	assert.Equal(t, map[string]string{"kind": "meeting", "limit": "1", "used": "1"}, env.Details)

	status, env = s.do(t, http.MethodGet, "/quota/meeting", "", caller)
	require.Equal(t, http.StatusOK, status)
	var st entities.QuotaStatus
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.Equal(t, 1, st.Used)
	assert.Equal(t, 0, st.Remaining)
	assert.True(t, st.Exceeded)

	status, _ = s.do(t, http.MethodGet, "/meetings", "", caller)
	assert.Equal(t, http.StatusOK, status)
}

func TestScheduleAgendaValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/schedule-agenda", `{}`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
	assert.NotEmpty(t, env.Info)

	status, env = s.do(t, http.MethodPost, "/schedule-agenda", `{"agenda_id":"404"}`, as("u1"))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "agenda not found", env.Info)
	assert.Equal(t, "404", env.Details["id"])
}

func TestQuotaKindRejectsUnknownKind(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/quota/storage", "", as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)

	status, env = s.do(t, http.MethodGet, "/quota", "", as("u1"))
	require.Equal(t, http.StatusOK, status)
	var all []entities.QuotaStatus
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 3)
}

func TestGenerateMinutesNeedsTranscript(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/generate-minutes", `{}`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)

	status, _ = s.do(t, http.MethodPost, "/generate-minutes", `{"transcript_id":"missing"}`, as("u1"))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTranscribeRequiresSource(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/transcribe", `{"source":"  "}`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, int(errors.ErrorCode_INVALID_ARGUMENT), env.Code)
}

func TestListsAreNeverNull(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/agendas", "/meetings", "/transcripts", "/minutes", "/action-items", "/notifications", "/events"} {
		t.Run(path, func(t *testing.T) {
			status, env := s.do(t, http.MethodGet, path, "", as("fresh"))
			require.Equal(t, http.StatusOK, status, env.Info)
			assert.Equal(t, "[]", string(env.Data))
		})
	}
}

func TestProcessAutomatedAccepted(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodPost, "/process-automated", `{"source":"https://example.com/call.mp4","schedule":false}`, as("u1"))
	require.Equal(t, http.StatusAccepted, status, env.Info)
	assert.Equal(t, 0, env.Code)

	var run pipeline.Run
	require.NoError(t, json.Unmarshal(env.Data, &run))
	assert.Equal(t, "run-1", run.RunID)
	assert.Equal(t, "https://example.com/call.mp4", s.runs.input.Source)
	assert.False(t, s.runs.input.Schedule)

	// Schedule defaults to true
	status, _ = s.do(t, http.MethodPost, "/process-meeting", `{"source":"https://example.com/b.mp4"}`, as("u1"))
	require.Equal(t, http.StatusAccepted, status)
	assert.True(t, s.runs.input.Schedule)
}

func TestProcessAutomatedErrors(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodPost, "/process-automated", `{}`, as("u1"))
	assert.Equal(t, http.StatusBadRequest, status)

	s.runs.err = pipeline.ErrShuttingDown
	status, env := s.do(t, http.MethodPost, "/process-automated", `{"source":"s3://a.mp4"}`, as("u1"))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, int(errors.ErrorCode_UNAVAILABLE), env.Code)
	assert.Empty(t, env.Info)
	assert.Empty(t, env.Details)

	s.runs.err = &entities.QuotaExceededError{Kind: entities.QuotaAutomation, Limit: 5, Used: 5}
	status, env = s.do(t, http.MethodPost, "/process-automated", `{"source":"s3://a.mp4"}`, as("u1"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int(errors.ErrorCode_QUOTA_EXCEEDED), env.Code)
}

func TestCalendarRoutesWithoutOAuth(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, http.MethodGet, "/auth/google/status", "", as("u1"))
	assert.Equal(t, http.StatusNotImplemented, status)
}

func TestAdminRoutes(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	_, err := s.users.Ensure(ctx, "member-1", "member@example.com", "Member")
	require.NoError(t, err)

	status, env := s.do(t, http.MethodGet, "/admin/users", "", as("member-1"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int(errors.ErrorCode_PERMISSION_DENIED), env.Code)

	admin := map[string]string{"X-User": "admin-1", "X-Role": string(entities.RoleAdmin)}
	status, env = s.do(t, http.MethodGet, "/admin/users", "", admin)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), "member@example.com")

	status, _ = s.do(t, http.MethodPatch, "/admin/user/member-1/role", `{"role":"owner"}`, admin)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, http.MethodPatch, "/admin/user/member-1/tier", `{"tier":"premium"}`, admin)
	require.Equal(t, http.StatusOK, status, env.Info)
	assert.Contains(t, string(env.Data), `"tier":"premium"`)

	status, _ = s.do(t, http.MethodPatch, "/admin/user/ghost/tier", `{"tier":"premium"}`, admin)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = s.do(t, http.MethodGet, "/me", "", as("member-1"))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"email":"member@example.com"`)
}
