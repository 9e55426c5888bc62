package entities

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType is the severity of a notification
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// Notification is one entry of the append-only automation audit trail
type Notification struct {
	ID        string           `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID    string           `json:"user_id" gorm:"type:varchar(255);not null;index" bson:"user_id"`
	Message   string           `json:"message" gorm:"type:text;not null" bson:"message"`
	Type      NotificationType `json:"type" gorm:"type:varchar(20);not null" bson:"type"`
	RelatedID string           `json:"related_id,omitempty" gorm:"type:varchar(64)" bson:"related_id,omitempty"`
	Read      bool             `json:"read" gorm:"default:false;index" bson:"read"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification
func NewNotification(userID string, typ NotificationType, message, relatedID string) *Notification {
	return &Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Type:      typ,
		RelatedID: relatedID,
		CreatedAt: time.Now().UTC(),
	}
}
