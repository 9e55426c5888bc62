package entities

import "time"

// MinutesFinalized is emitted once action items for a minutes record are persisted.
type MinutesFinalized struct {
	UserID                 string
	MinutesID              string
	MeetingID              string
	HasNextMeeting         bool
	NextMeetingDate        string
	FutureDiscussionPoints []string
}

// AgendaGenerationRequested asks the agenda stage to plan the follow-up meeting.
// DiscussionPoints is always empty when derived from MinutesFinalized so that
// extracted action items are not re-surfaced as topics.
type AgendaGenerationRequested struct {
	UserID           string
	SourceMinutesID  string
	MeetingDate      string
	Topics           []string
	DiscussionPoints []string
}

// NextAgenda converts a finalized minutes event into an agenda request.
// The second return value is false when no follow-up meeting is planned.
func (e MinutesFinalized) NextAgenda() (AgendaGenerationRequested, bool) {
	if !e.HasNextMeeting {
		return AgendaGenerationRequested{}, false
	}
	topics := make([]string, len(e.FutureDiscussionPoints))
	copy(topics, e.FutureDiscussionPoints)
	return AgendaGenerationRequested{
		UserID:           e.UserID,
		SourceMinutesID:  e.MinutesID,
		MeetingDate:      e.NextMeetingDate,
		Topics:           topics,
		DiscussionPoints: []string{},
	}, true
}

// CalendarEvent is the payload handed to the calendar service
type CalendarEvent struct {
	Title       string
	Description string
	Start       time.Time
	Duration    time.Duration
}

// EventKind distinguishes entries of the merged events view
type EventKind string

const (
	EventMeeting    EventKind = "meeting"
	EventActionItem EventKind = "action_item"
)

// Event is one entry of the merged calendar view
type Event struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"all_day"`
	Status    string    `json:"status"`
	RelatedID string    `json:"related_id,omitempty"`
}
