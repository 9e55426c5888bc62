package entities

import (
	"time"

	"gorm.io/datatypes"
)

// Priority is the closed set of agenda item priorities
type Priority string

const (
	PriorityUrgent     Priority = "urgent"
	PriorityDiscussion Priority = "discussion"
	PriorityInfo       Priority = "info"
)

// IsValid checks if the priority is one of the three known values
func (p Priority) IsValid() bool {
	switch p {
	case PriorityUrgent, PriorityDiscussion, PriorityInfo:
		return true
	}
	return false
}

// AllocateTime maps a priority to its fixed time box in minutes.
// Unknown priorities get the info allocation.
func AllocateTime(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 20
	case PriorityDiscussion:
		return 15
	default:
		return 10
	}
}

// AgendaItem is one time-boxed topic of an agenda
type AgendaItem struct {
	Topic                string   `json:"topic" bson:"topic"`
	Source               string   `json:"source,omitempty" bson:"source,omitempty"`
	Priority             Priority `json:"priority" bson:"priority"`
	TimeAllocatedMinutes int      `json:"time_allocated_minutes" bson:"time_allocated_minutes"`
}

// Agenda is keyed by (user_id, id) where id is the per-user sequence number
type Agenda struct {
	ID               string                          `json:"id" gorm:"type:varchar(32);primaryKey" bson:"id"`
	UserID           string                          `json:"user_id" gorm:"type:varchar(255);primaryKey" bson:"user_id"`
	MeetingName      string                          `json:"meeting_name" gorm:"type:varchar(255)" bson:"meeting_name"`
	MeetingDate      string                          `json:"meeting_date" gorm:"type:varchar(10)" bson:"meeting_date"`
	Items            datatypes.JSONSlice[AgendaItem] `json:"items" gorm:"type:jsonb" bson:"items"`
	Topics           datatypes.JSONSlice[string]     `json:"topics" gorm:"type:jsonb" bson:"topics"`
	DiscussionPoints datatypes.JSONSlice[string]     `json:"discussion_points" gorm:"type:jsonb" bson:"discussion_points"`
	SourceMinutesID  string                          `json:"source_minutes_id,omitempty" gorm:"type:varchar(64)" bson:"source_minutes_id,omitempty"`
	CreatedAt        time.Time                       `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt        time.Time                       `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (Agenda) TableName() string {
	return "agendas"
}

// TotalMinutes sums the time boxes of all items
func (a *Agenda) TotalMinutes() int {
	total := 0
	for _, it := range a.Items {
		total += it.TimeAllocatedMinutes
	}
	return total
}
