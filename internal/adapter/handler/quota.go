package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
)

// Quota reports tier usage
type Quota struct {
	quota  *quota.Service
	logger *zap.Logger
}

// NewQuota creates a new quota handler
func NewQuota(q *quota.Service, logger *zap.Logger) *Quota {
	return &Quota{quota: q, logger: logger}
}

// All handles GET /quota
// @Summary      Quota status
// @Description  Monthly usage of every metered kind. Premium limits are -1.
// @Tags         Quota
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.QuotaStatus}
// @Router       /quota [get]
func (h *Quota) All(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	statuses, err := h.quota.All(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, statuses)
}

// Kind handles GET /quota/:kind
// @Summary      Quota status of one kind
// @Tags         Quota
// @Produce      json
// @Security     BearerAuth
// @Param        kind  path      string  true  "meeting, automation or transcription"
// @Success      200   {object}  common.SuccessResponse{data=entities.QuotaStatus}
// @Failure      400   {object}  common.ErrorResponse
// @Router       /quota/{kind} [get]
func (h *Quota) Kind(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	kind := entities.QuotaKind(c.Param("kind"))
	if !kind.IsMetered() {
		return HandleError(h.logger, c, entities.NewValidation("kind", "must be meeting, automation or transcription"))
	}
	st, err := h.quota.Check(c.Request().Context(), id, kind)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, st)
}
