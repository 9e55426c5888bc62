package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActionItemStatus represents the lifecycle of an action item
type ActionItemStatus string

const (
	ActionItemPending   ActionItemStatus = "pending"
	ActionItemScheduled ActionItemStatus = "scheduled"
	ActionItemDone      ActionItemStatus = "done"
)

// IsValid checks if the status is known
func (s ActionItemStatus) IsValid() bool {
	switch s {
	case ActionItemPending, ActionItemScheduled, ActionItemDone:
		return true
	}
	return false
}

// DefaultActionItemMinutes is used when no agenda time box applies
const DefaultActionItemMinutes = 60

// ActionItem is an extracted task with an owner and a deadline
type ActionItem struct {
	ID              string           `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID          string           `json:"user_id" gorm:"type:varchar(255);not null;index" bson:"user_id"`
	MinutesID       string           `json:"minutes_id" gorm:"type:varchar(64);not null;index" bson:"minutes_id"`
	MeetingID       string           `json:"meeting_id,omitempty" gorm:"type:varchar(64)" bson:"meeting_id,omitempty"`
	Task            string           `json:"task" gorm:"type:text;not null" bson:"task"`
	Owner           string           `json:"owner" gorm:"type:varchar(255)" bson:"owner"`
	Deadline        string           `json:"deadline" gorm:"type:varchar(10)" bson:"deadline"`
	DurationMinutes int              `json:"duration_minutes" gorm:"type:integer;not null" bson:"duration_minutes"`
	StartTime       *time.Time       `json:"start_time,omitempty" gorm:"type:timestamptz" bson:"start_time,omitempty"`
	GoogleEventID   *string          `json:"google_event_id,omitempty" gorm:"type:varchar(255)" bson:"google_event_id,omitempty"`
	Status          ActionItemStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'" bson:"status"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a pending action item
func NewActionItem(userID, minutesID, task, owner, deadline string, duration int) *ActionItem {
	now := time.Now().UTC()
	return &ActionItem{
		ID:              uuid.NewString(),
		UserID:          userID,
		MinutesID:       minutesID,
		Task:            task,
		Owner:           owner,
		Deadline:        deadline,
		DurationMinutes: duration,
		Status:          ActionItemPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Ref returns the summary embedded in the parent minutes
func (a *ActionItem) Ref() ActionItemRef {
	return ActionItemRef{ID: a.ID, Task: a.Task, Owner: a.Owner, Deadline: a.Deadline}
}
