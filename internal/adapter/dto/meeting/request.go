package meeting

// ScheduleAgendaRequest commits an agenda as a meeting
type ScheduleAgendaRequest struct {
	AgendaID    string `json:"agenda_id" validate:"required"`
	MeetingDate string `json:"meeting_date,omitempty" validate:"omitempty,isodate"`
}

// UpdateMeetingRequest represents PATCH /meetings/:id
type UpdateMeetingRequest struct {
	MeetingName *string `json:"meeting_name,omitempty" validate:"omitempty,min=1,max=255"`
	MeetingDate *string `json:"meeting_date,omitempty" validate:"omitempty,isodate"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled processing processed failed cancelled"`
}
