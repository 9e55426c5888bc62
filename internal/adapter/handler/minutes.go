package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	pipelineDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/pipeline"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/minutes"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
)

// Minutes handles minutes generation and history
type Minutes struct {
	minutes *minutes.Service
	quota   *quota.Service
	logger  *zap.Logger
}

// NewMinutes creates a new minutes handler
func NewMinutes(m *minutes.Service, q *quota.Service, logger *zap.Logger) *Minutes {
	return &Minutes{minutes: m, quota: q, logger: logger}
}

// Generate handles POST /generate-minutes
// @Summary      Generate minutes
// @Description  Summarizes a stored transcript, or raw transcript text, into minutes
// @Tags         Minutes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      pipeline.GenerateMinutesRequest  true  "Transcript to summarize"
// @Success      200      {object}  common.SuccessResponse{data=entities.Minutes}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse
// @Failure      500      {object}  common.ErrorResponse
// @Router       /generate-minutes [post]
func (h *Minutes) Generate(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req pipelineDTO.GenerateMinutesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.TranscriptID == "" && req.Transcript == "" {
		return HandleError(h.logger, c, entities.NewValidation("transcript_id", "transcript_id or transcript is required"))
	}

	m, err := h.minutes.Create(c.Request().Context(), id.UserID, minutes.CreateInput{
		TranscriptID: req.TranscriptID,
		Text:         req.Transcript,
		MeetingID:    req.MeetingID,
		Date:         req.Date,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, m)
}

// List handles GET /minutes
// @Summary      Minutes history
// @Description  Newest first. Free users see only their most recent records.
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of records"
// @Success      200    {object}  common.SuccessResponse{data=[]entities.Minutes}
// @Router       /minutes [get]
func (h *Minutes) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	requested, err := queryInt(c, "limit", 0)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	limit := h.quota.HistoryLimit(id.Tier)
	if requested > 0 && (limit == 0 || requested < limit) {
		limit = requested
	}

	list, err := h.minutes.List(c.Request().Context(), id.UserID, limit)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if list == nil {
		list = []*entities.Minutes{}
	}
	return HandleSuccess(h.logger, c, list)
}

// Get handles GET /minutes/:id
// @Summary      Get minutes
// @Tags         Minutes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Minutes ID"
// @Success      200  {object}  common.SuccessResponse{data=entities.Minutes}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /minutes/{id} [get]
func (h *Minutes) Get(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	m, err := h.minutes.Get(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, m)
}
