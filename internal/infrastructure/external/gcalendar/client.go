// Package gcalendar creates Google Calendar events on behalf of a user.
package gcalendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// TokenSourcer builds a refreshing token source for a stored token
type TokenSourcer interface {
	TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource
}

// Client inserts events into one calendar of the token owner
type Client struct {
	sourcer    TokenSourcer
	calendarID string
	timeZone   string
	loc        *time.Location

	newService func(ctx context.Context, ts oauth2.TokenSource) (*calendar.Service, error)
}

// NewClient creates a calendar client for the configured calendar and time zone
func NewClient(sourcer TokenSourcer, cfg *config.CalendarConfig) (*Client, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar time zone: %w", err)
	}
	return &Client{
		sourcer:    sourcer,
		calendarID: cfg.CalendarID,
		timeZone:   cfg.TimeZone,
		loc:        loc,
		newService: func(ctx context.Context, ts oauth2.TokenSource) (*calendar.Service, error) {
			return calendar.NewService(ctx, option.WithTokenSource(ts))
		},
	}, nil
}

// Location is the time zone events are created in
func (c *Client) Location() *time.Location {
	return c.loc
}

// Insert creates the event and returns its id plus the token after any refresh
func (c *Client) Insert(ctx context.Context, token *oauth2.Token, ev entities.CalendarEvent) (string, *oauth2.Token, error) {
	ts := c.sourcer.TokenSource(ctx, token)
	svc, err := c.newService(ctx, ts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	start := ev.Start.In(c.loc)
	end := start.Add(ev.Duration)
	event := &calendar.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.timeZone,
		},
	}

	created, err := svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", nil, err
	}

	current, err := ts.Token()
	if err != nil {
		current = token
	}
	return created.Id, current, nil
}
