package entities

import "time"

// QuotaKind names a metered monthly resource
type QuotaKind string

const (
	QuotaMeeting       QuotaKind = "meeting"
	QuotaAutomation    QuotaKind = "automation"
	QuotaTranscription QuotaKind = "transcription"

	// QuotaVideoDuration is a per-request cap, not a monthly counter
	QuotaVideoDuration QuotaKind = "video_minutes"
)

// MeteredKinds are the kinds that have monthly counters
var MeteredKinds = []QuotaKind{QuotaMeeting, QuotaAutomation, QuotaTranscription}

// IsMetered reports whether the kind has a monthly counter
func (k QuotaKind) IsMetered() bool {
	for _, m := range MeteredKinds {
		if m == k {
			return true
		}
	}
	return false
}

// UsageCounter counts consumptions of one kind by one user in one month
type UsageCounter struct {
	UserID    string    `json:"user_id" gorm:"type:varchar(255);primaryKey" bson:"user_id"`
	Kind      QuotaKind `json:"kind" gorm:"type:varchar(32);primaryKey" bson:"kind"`
	Period    string    `json:"period" gorm:"type:varchar(7);primaryKey" bson:"period"`
	Count     int       `json:"count" gorm:"type:integer;not null;default:0" bson:"count"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime" bson:"updated_at"`
}

// TableName specifies the table name for GORM
func (UsageCounter) TableName() string {
	return "usage_counters"
}

// UsagePeriod returns the YYYY-MM bucket a timestamp belongs to
func UsagePeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// QuotaStatus is the read model returned for a quota check
type QuotaStatus struct {
	Kind      QuotaKind `json:"kind"`
	Limit     int       `json:"limit"`
	Used      int       `json:"used"`
	Remaining int       `json:"remaining"`
	Exceeded  bool      `json:"exceeded"`
}

// Unlimited marks a limit that does not apply
const Unlimited = -1
