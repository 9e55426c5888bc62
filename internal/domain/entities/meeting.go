package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the status of a meeting
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingProcessing MeetingStatus = "processing"
	MeetingProcessed  MeetingStatus = "processed"
	MeetingFailed     MeetingStatus = "failed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

// IsValid checks if the status is known
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingScheduled, MeetingProcessing, MeetingProcessed, MeetingFailed, MeetingCancelled:
		return true
	}
	return false
}

// Meeting links a committed agenda to calendar events and automation runs
type Meeting struct {
	ID               string                      `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID           string                      `json:"user_id" gorm:"type:varchar(255);not null;index" bson:"user_id"`
	MeetingName      string                      `json:"meeting_name" gorm:"type:varchar(255)" bson:"meeting_name"`
	MeetingDate      string                      `json:"meeting_date" gorm:"type:varchar(10)" bson:"meeting_date"`
	AgendaID         string                      `json:"agenda_id,omitempty" gorm:"type:varchar(32)" bson:"agenda_id,omitempty"`
	Status           MeetingStatus               `json:"status" gorm:"type:varchar(20);not null;default:'scheduled'" bson:"status"`
	AutomationUsed   bool                        `json:"automation_used" gorm:"default:false" bson:"automation_used"`
	CalendarEventIDs datatypes.JSONSlice[string] `json:"calendar_event_ids" gorm:"type:jsonb" bson:"calendar_event_ids"`
	CreatedAt        time.Time                   `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a scheduled meeting
func NewMeeting(userID, name, date, agendaID string) *Meeting {
	now := time.Now().UTC()
	return &Meeting{
		ID:               uuid.NewString(),
		UserID:           userID,
		MeetingName:      name,
		MeetingDate:      date,
		AgendaID:         agendaID,
		Status:           MeetingScheduled,
		CalendarEventIDs: datatypes.JSONSlice[string]{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
