package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DateLayout is the calendar-date format used for meeting dates and deadlines
const DateLayout = "2006-01-02"

// ActionItemRef is the summary of an action item embedded in its minutes
type ActionItemRef struct {
	ID       string `json:"id" bson:"id"`
	Task     string `json:"task" bson:"task"`
	Owner    string `json:"owner" bson:"owner"`
	Deadline string `json:"deadline" bson:"deadline"`
}

// Minutes is the structured outcome of a meeting
type Minutes struct {
	ID                     string                             `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID                 string                             `json:"user_id" gorm:"type:varchar(255);not null;index" bson:"user_id"`
	MeetingID              string                             `json:"meeting_id,omitempty" gorm:"type:varchar(64);index" bson:"meeting_id,omitempty"`
	TranscriptID           string                             `json:"transcript_id,omitempty" gorm:"type:varchar(64)" bson:"transcript_id,omitempty"`
	Date                   string                             `json:"date" gorm:"type:varchar(10);not null" bson:"date"`
	Summary                string                             `json:"summary" gorm:"type:text" bson:"summary"`
	Decisions              datatypes.JSONSlice[string]        `json:"decisions" gorm:"type:jsonb" bson:"decisions"`
	FutureDiscussionPoints datatypes.JSONSlice[string]        `json:"future_discussion_points" gorm:"type:jsonb" bson:"future_discussion_points"`
	NextMeetingDate        string                             `json:"next_meeting_date,omitempty" gorm:"type:varchar(10)" bson:"next_meeting_date,omitempty"`
	ActionItems            datatypes.JSONSlice[ActionItemRef] `json:"action_items" gorm:"type:jsonb" bson:"action_items"`
	Automated              bool                               `json:"automated" gorm:"default:false" bson:"automated"`
	CreatedAt              time.Time                          `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt              time.Time                          `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (Minutes) TableName() string {
	return "minutes"
}

// HasNextMeeting reports whether a follow-up meeting date was recorded
func (m *Minutes) HasNextMeeting() bool {
	return m != nil && m.NextMeetingDate != ""
}

// MinutesDraft is the output of minutes generation before it is persisted
type MinutesDraft struct {
	Summary                string   `json:"summary"`
	Decisions              []string `json:"decisions"`
	FutureDiscussionPoints []string `json:"future_discussion_points"`
	NextMeetingDate        string   `json:"next_meeting_date"`
	NextMeetingDefaulted   bool     `json:"next_meeting_defaulted"`
}

// NewMinutes creates a minutes record from a draft
func NewMinutes(userID, meetingID, transcriptID, date string, draft MinutesDraft) *Minutes {
	now := time.Now().UTC()
	return &Minutes{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		MeetingID:              meetingID,
		TranscriptID:           transcriptID,
		Date:                   date,
		Summary:                draft.Summary,
		Decisions:              datatypes.JSONSlice[string](nonNil(draft.Decisions)),
		FutureDiscussionPoints: datatypes.JSONSlice[string](nonNil(draft.FutureDiscussionPoints)),
		NextMeetingDate:        draft.NextMeetingDate,
		ActionItems:            datatypes.JSONSlice[ActionItemRef]{},
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
