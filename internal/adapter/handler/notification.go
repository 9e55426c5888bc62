package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/dto/common"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/notification"
)

// Notification serves the automation audit trail
type Notification struct {
	notifications *notification.Service
	logger        *zap.Logger
}

// NewNotification creates a new notification handler
func NewNotification(n *notification.Service, logger *zap.Logger) *Notification {
	return &Notification{notifications: n, logger: logger}
}

// List handles GET /notifications
// @Summary      Recent notifications
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=[]entities.Notification}
// @Router       /notifications [get]
func (h *Notification) List(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	list, err := h.notifications.List(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if list == nil {
		list = []*entities.Notification{}
	}
	return HandleSuccess(h.logger, c, list)
}

// MarkRead handles PATCH /notifications/:id/read
// @Summary      Mark a notification read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Notification ID"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Router       /notifications/{id}/read [patch]
func (h *Notification) MarkRead(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.notifications.MarkRead(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": c.Param("id")})
}

// MarkAllRead handles PATCH /notifications/read-all
// @Summary      Mark all notifications read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=common.CountResponse}
// @Router       /notifications/read-all [patch]
func (h *Notification) MarkAllRead(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	n, err := h.notifications.MarkAllRead(c.Request().Context(), id.UserID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, common.CountResponse{Updated: n})
}
