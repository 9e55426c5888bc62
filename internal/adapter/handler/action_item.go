package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	pipelineDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/actionitem"
)

// ActionItem handles action item extraction and CRUD
type ActionItem struct {
	items  *actionitem.Service
	logger *zap.Logger
}

// NewActionItem creates a new action item handler
func NewActionItem(items *actionitem.Service, logger *zap.Logger) *ActionItem {
	return &ActionItem{items: items, logger: logger}
}

// Generate handles POST /generate-action-items
// @Summary      Extract action items
// @Description  Extracts action items from stored minutes and, when schedule is true, mirrors agenda topics and items into the calendar. A next meeting date also plans the follow-up agenda.
// @Tags         Action Items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      pipeline.GenerateActionItemsRequest  true  "Minutes to extract from"
// @Success      200      {object}  common.SuccessResponse{data=actionitem.Result}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /generate-action-items [post]
func (h *ActionItem) Generate(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req pipelineDTO.GenerateActionItemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.items.ExtractAndSchedule(c.Request().Context(), id.UserID, req.MinutesID, pipelineDTO.ShouldSchedule(req.Schedule))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, res)
}

// List handles GET /action-items
// @Summary      List action items
// @Tags         Action Items
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.ActionItem}
// @Router       /action-items [get]
func (h *ActionItem) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	list, err := h.items.List(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if list == nil {
		list = []*entities.ActionItem{}
	}
	return HandleSuccess(h.logger, c, list)
}

// Update handles PATCH /action-items/:id
// @Summary      Update an action item
// @Tags         Action Items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "Action item ID"
// @Param        request  body      pipeline.UpdateActionItemRequest  true  "Fields to change"
// @Success      200      {object}  common.SuccessResponse{data=entities.ActionItem}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Router       /action-items/{id} [patch]
func (h *ActionItem) Update(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req pipelineDTO.UpdateActionItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	in := actionitem.UpdateInput{Owner: req.Owner, Deadline: req.Deadline}
	if req.Status != nil {
		status := entities.ActionItemStatus(*req.Status)
		in.Status = &status
	}

	item, err := h.items.Update(c.Request().Context(), id.UserID, c.Param("id"), in)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, item)
}

// Delete handles DELETE /action-items/:id
// @Summary      Delete an action item
// @Tags         Action Items
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Action item ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /action-items/{id} [delete]
func (h *ActionItem) Delete(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.items.Delete(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}
