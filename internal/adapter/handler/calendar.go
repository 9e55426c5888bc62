package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authDTO "github.com/Samadhi-12/MinuteMe/internal/adapter/dto/auth"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/calendar"
)

// Calendar handles the Google Calendar connection of premium users
type Calendar struct {
	calendar *calendar.Service
	logger   *zap.Logger
}

// NewCalendar creates a new calendar handler
func NewCalendar(cal *calendar.Service, logger *zap.Logger) *Calendar {
	return &Calendar{calendar: cal, logger: logger}
}

// Status handles GET /auth/google/status
// @Summary      Calendar connection status
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=calendar.StatusResponse}
// @Router       /auth/google/status [get]
func (h *Calendar) Status(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	st, err := h.calendar.Status(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, st)
}

// URL handles GET /auth/google/url
// @Summary      Calendar consent URL
// @Description  Returns the Google consent URL with a one-time CSRF state
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=calendar.AuthURLResponse}
// @Failure      403  {object}  common.ErrorResponse  "Premium required"
// @Router       /auth/google/url [get]
func (h *Calendar) URL(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	resp, err := h.calendar.AuthURL(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, resp)
}

// Exchange handles POST /auth/google/exchange
// @Summary      Complete the calendar connection
// @Tags         Calendar
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      auth.GoogleExchangeRequest  true  "Authorization code and state"
// @Success      200      {object}  common.SuccessResponse
// @Failure      400      {object}  common.ErrorResponse  "Invalid state"
// @Failure      403      {object}  common.ErrorResponse  "Premium required"
// @Failure      502      {object}  common.ErrorResponse  "Google rejected the code"
// @Router       /auth/google/exchange [post]
func (h *Calendar) Exchange(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req authDTO.GoogleExchangeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.calendar.Exchange(c.Request().Context(), id, req.Code, req.State); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]bool{"connected": true})
}

// Disconnect handles POST /auth/google/disconnect
// @Summary      Remove the calendar connection
// @Tags         Calendar
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse
// @Router       /auth/google/disconnect [post]
func (h *Calendar) Disconnect(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.calendar.Disconnect(c.Request().Context(), id.UserID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]bool{"connected": false})
}
