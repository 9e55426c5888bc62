package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/meeting"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/meeting"
)

// Meeting handles scheduled meetings and the merged events view
type Meeting struct {
	meetings *meeting.Service
	logger   *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(meetings *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{meetings: meetings, logger: logger}
}

// Schedule handles POST /schedule-agenda
// @Summary      Commit an agenda as a meeting
// @Description  Consumes one meeting from the monthly quota. Connected premium users also get one calendar event per agenda item.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.ScheduleAgendaRequest  true  "Agenda to schedule"
// @Success      200      {object}  common.SuccessResponse{data=meeting.ScheduleResult}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      403      {object}  common.ErrorResponse  "Monthly meeting quota reached"
// @Failure      404      {object}  common.ErrorResponse
// @Router       /schedule-agenda [post]
func (h *Meeting) Schedule(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ScheduleAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.meetings.ScheduleAgenda(c.Request().Context(), id, meeting.ScheduleInput{
		AgendaID:    req.AgendaID,
		MeetingDate: req.MeetingDate,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// List handles GET /meetings
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.Meeting}
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	meetings, err := h.meetings.List(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if meetings == nil {
		meetings = []*entities.Meeting{}
	}
	return HandleSuccess(h.logger, c, meetings)
}

// Update handles PATCH /meetings/:id
// @Summary      Update a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Meeting ID"
// @Param        request  body      meeting.UpdateMeetingRequest  true  "Fields to change"
// @Success      200      {object}  common.SuccessResponse{data=entities.Meeting}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /meetings/{id} [patch]
func (h *Meeting) Update(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := meeting.UpdateInput{
		MeetingName: req.MeetingName,
		MeetingDate: req.MeetingDate,
	}
	if req.Status != nil {
		status := entities.MeetingStatus(*req.Status)
		in.Status = &status
	}

	m, err := h.meetings.Update(c.Request().Context(), id.UserID, c.Param("id"), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, m)
}

// Delete handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /meetings/{id} [delete]
func (h *Meeting) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.meetings.Delete(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}

// Events handles GET /events
// @Summary      Calendar view
// @Description  Meetings and action items merged into one list sorted by start
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.Event}
// @Router       /events [get]
func (h *Meeting) Events(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	events, err := h.meetings.Events(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if events == nil {
		events = []entities.Event{}
	}
	return HandleSuccess(h.logger, c, events)
}
