package agenda

// CreateAgendaRequest is the optional body of POST /agenda. An empty body
// plans the agenda from the latest minutes.
type CreateAgendaRequest struct {
	MeetingName      string   `json:"meeting_name,omitempty" validate:"omitempty,max=255"`
	MeetingDate      string   `json:"meeting_date,omitempty" validate:"omitempty,isodate"`
	Topics           []string `json:"topics,omitempty" validate:"omitempty,dive,required,max=500"`
	DiscussionPoints []string `json:"discussion_points,omitempty" validate:"omitempty,dive,required,max=500"`
}

// Empty reports whether no field was supplied
func (r *CreateAgendaRequest) Empty() bool {
	return r.MeetingName == "" && r.MeetingDate == "" && len(r.Topics) == 0 && len(r.DiscussionPoints) == 0
}

// AgendaItemRequest replaces one agenda item
type AgendaItemRequest struct {
	Topic    string `json:"topic" validate:"required,max=500"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=urgent discussion info"`
}

// UpdateAgendaRequest represents PATCH /agenda/:id
type UpdateAgendaRequest struct {
	MeetingName *string             `json:"meeting_name,omitempty" validate:"omitempty,min=1,max=255"`
	MeetingDate *string             `json:"meeting_date,omitempty" validate:"omitempty,isodate"`
	Items       []AgendaItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}
