package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transcript is the raw text produced by the transcription stage
type Transcript struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID          string    `json:"user_id" gorm:"type:varchar(255);not null;index" bson:"user_id"`
	MeetingID       string    `json:"meeting_id,omitempty" gorm:"type:varchar(64);index" bson:"meeting_id,omitempty"`
	Source          string    `json:"source" gorm:"type:text" bson:"source"`
	Text            string    `json:"text" gorm:"type:text;not null" bson:"text"`
	DurationSeconds int       `json:"duration_seconds" gorm:"type:integer" bson:"duration_seconds"`
	Chunks          int       `json:"chunks" gorm:"type:integer;default:1" bson:"chunks"`
	Automated       bool      `json:"automated" gorm:"default:false;index" bson:"automated"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a transcript with a generated identifier
func NewTranscript(userID, meetingID, source, text string) *Transcript {
	return &Transcript{
		ID:        uuid.NewString(),
		UserID:    userID,
		MeetingID: meetingID,
		Source:    source,
		Text:      text,
		Chunks:    1,
		CreatedAt: time.Now().UTC(),
	}
}
