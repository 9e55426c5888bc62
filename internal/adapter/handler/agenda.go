package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	agendaDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/agenda"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/agenda"
)

// Agenda handles agenda planning and CRUD requests
type Agenda struct {
	agendas *agenda.Service
	logger  *zap.Logger
}

// NewAgenda creates a new agenda handler
func NewAgenda(agendas *agenda.Service, logger *zap.Logger) *Agenda {
	return &Agenda{agendas: agendas, logger: logger}
}

// Create handles POST /agenda
// @Summary      Plan an agenda
// @Description  Plans and stores a prioritized, time-boxed agenda. Without a body the topics come from the latest minutes.
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      agenda.CreateAgendaRequest  false  "Explicit topics"
// @Success      200      {object}  common.SuccessResponse{data=entities.Agenda}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /agenda [post]
func (h *Agenda) Create(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req agendaDTO.CreateAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	var in *agenda.Input
	if !req.Empty() {
		in = &agenda.Input{
			MeetingName:      req.MeetingName,
			MeetingDate:      req.MeetingDate,
			Topics:           req.Topics,
			DiscussionPoints: req.DiscussionPoints,
		}
	}

	a, err := h.agendas.Generate(c.Request().Context(), id.UserID, in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, a)
}

// List handles GET /agendas
// @Summary      List agendas
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.Agenda}
// @Failure      401  {object}  common.ErrorResponse
// @Router       /agendas [get]
func (h *Agenda) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	agendas, err := h.agendas.List(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if agendas == nil {
		agendas = []*entities.Agenda{}
	}
	return HandleSuccess(h.logger, c, agendas)
}

// Get handles GET /agenda/:id
// @Summary      Get an agenda
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Agenda ID"
// @Success      200  {object}  common.SuccessResponse{data=entities.Agenda}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /agenda/{id} [get]
func (h *Agenda) Get(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	a, err := h.agendas.Get(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, a)
}

// Update handles PATCH /agenda/:id
// @Summary      Update an agenda
// @Description  Renames, redates or replaces the items of an agenda. Time boxes are recomputed from priority.
// @Tags         Agenda
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Agenda ID"
// @Param        request  body      agenda.UpdateAgendaRequest  true  "Fields to change"
// @Success      200      {object}  common.SuccessResponse{data=entities.Agenda}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /agenda/{id} [patch]
func (h *Agenda) Update(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req agendaDTO.UpdateAgendaRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := agenda.UpdateInput{
		MeetingName: req.MeetingName,
		MeetingDate: req.MeetingDate,
	}
	if req.Items != nil {
		in.Items = make([]agenda.ItemInput, 0, len(req.Items))
		for _, it := range req.Items {
			in.Items = append(in.Items, agenda.ItemInput{
				Topic:    it.Topic,
				Priority: entities.Priority(it.Priority),
			})
		}
	}

	a, err := h.agendas.Update(c.Request().Context(), id.UserID, c.Param("id"), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, a)
}

// Delete handles DELETE /agenda/:id
// @Summary      Delete an agenda
// @Tags         Agenda
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Agenda ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /agenda/{id} [delete]
func (h *Agenda) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.agendas.Delete(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}
