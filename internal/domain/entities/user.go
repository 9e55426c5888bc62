package entities

import (
	"time"
)

// Tier is the subscription level of a user
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

// IsValid checks if the tier is known
func (t Tier) IsValid() bool {
	return t == TierFree || t == TierPremium
}

// UserRole defines user roles
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// OAuthToken is the persisted calendar credential of a user
type OAuthToken struct {
	AccessToken  string    `json:"access_token" bson:"access_token"`
	RefreshToken string    `json:"refresh_token" bson:"refresh_token"`
	TokenType    string    `json:"token_type" bson:"token_type"`
	Expiry       time.Time `json:"expiry" bson:"expiry"`
}

// User is keyed by the subject issued by the identity provider
type User struct {
	ID          string      `json:"id" gorm:"type:varchar(255);primaryKey" bson:"_id"`
	Email       string      `json:"email" gorm:"type:varchar(255);index" bson:"email"`
	Name        string      `json:"name" gorm:"type:varchar(255)" bson:"name"`
	Role        UserRole    `json:"role" gorm:"type:varchar(20);not null;default:'user'" bson:"role"`
	Tier        Tier        `json:"tier" gorm:"type:varchar(20);not null;default:'free'" bson:"tier"`
	GoogleToken *OAuthToken `json:"-" gorm:"type:jsonb;serializer:json" bson:"google_token,omitempty"`
	CreatedAt   time.Time   `json:"created_at" gorm:"autoCreateTime" bson:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// CalendarConnected reports whether a Google token is stored
func (u *User) CalendarConnected() bool {
	return u != nil && u.GoogleToken != nil && (u.GoogleToken.RefreshToken != "" || u.GoogleToken.AccessToken != "")
}

// Identity is the caller resolved once per request
type Identity struct {
	UserID string
	Email  string
	Name   string
	Tier   Tier
	Role   UserRole
}

// IsPremium reports whether the caller is on the premium tier
func (i Identity) IsPremium() bool {
	return i.Tier == TierPremium
}
