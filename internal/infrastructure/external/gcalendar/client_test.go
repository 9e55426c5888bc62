package gcalendar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

type staticSourcer struct{}

func (staticSourcer) TokenSource(_ context.Context, t *oauth2.Token) oauth2.TokenSource {
	return oauth2.StaticTokenSource(t)
}

func TestInsertSendsZonedEvent(t *testing.T) {
	var got calendar.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "calendars/primary/events")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"evt-1"}`))
	}))
	defer srv.Close()

	c, err := NewClient(staticSourcer{}, &config.CalendarConfig{TimeZone: "Asia/Colombo", CalendarID: "primary"})
	require.NoError(t, err)
	c.newService = func(ctx context.Context, _ oauth2.TokenSource) (*calendar.Service, error) {
		return calendar.NewService(ctx, option.WithHTTPClient(srv.Client()), option.WithEndpoint(srv.URL+"/"))
	}

	start := time.Date(2026, 10, 15, 9, 0, 0, 0, c.Location())
	id, tok, err := c.Insert(context.Background(), &oauth2.Token{AccessToken: "a"}, entities.CalendarEvent{
		Title:       "Prepare the budget report (John)",
		Description: "Action item assigned to John",
		Start:       start,
		Duration:    60 * time.Minute,
	})
	require.NoError(t, err)
	assert.Equal(t, "evt-1", id)
	assert.Equal(t, "a", tok.AccessToken)

	assert.Equal(t, "Prepare the budget report (John)", got.Summary)
	assert.Equal(t, "Asia/Colombo", got.Start.TimeZone)
	assert.Equal(t, "2026-10-15T09:00:00+05:30", got.Start.DateTime)
	assert.Equal(t, "2026-10-15T10:00:00+05:30", got.End.DateTime)
}
