package pipeline

// TranscribeRequest is the JSON form of POST /transcribe. Multipart
// uploads send the media as the "file" field instead of Source.
type TranscribeRequest struct {
	Source    string `json:"source" form:"source"`
	MeetingID string `json:"meeting_id,omitempty" form:"meeting_id"`
}

// GenerateMinutesRequest represents POST /generate-minutes
type GenerateMinutesRequest struct {
	TranscriptID string `json:"transcript_id,omitempty"`
	Transcript   string `json:"transcript,omitempty"`
	MeetingID    string `json:"meeting_id,omitempty"`
	Date         string `json:"date,omitempty" validate:"omitempty,isodate"`
}

// GenerateActionItemsRequest represents POST /generate-action-items
type GenerateActionItemsRequest struct {
	MinutesID string `json:"minutes_id" validate:"required"`
	Schedule  *bool  `json:"schedule,omitempty"`
}

// ProcessAutomatedRequest triggers a background automation run
type ProcessAutomatedRequest struct {
	Source    string `json:"source" validate:"required"`
	MeetingID string `json:"meeting_id,omitempty"`
	Schedule  *bool  `json:"schedule,omitempty"`
}

// UpdateActionItemRequest represents PATCH /action-items/:id
type UpdateActionItemRequest struct {
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending scheduled done"`
	Owner    *string `json:"owner,omitempty" validate:"omitempty,min=1,max=255"`
	Deadline *string `json:"deadline,omitempty" validate:"omitempty,isodate"`
}

// ShouldSchedule resolves the optional schedule flag, defaulting to true
func ShouldSchedule(flag *bool) bool {
	return flag == nil || *flag
}
