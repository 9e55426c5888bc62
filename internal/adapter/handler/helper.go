package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/errors"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/http/middleware"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request or the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized 200 response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return HandleStatus(logger, c, http.StatusOK, data)
}

// HandleStatus writes a standardized success response with an explicit status
func HandleStatus(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger.
// Domain errors are mapped onto AppError first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := errors.FromDomain(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	// Causes and details of server errors stay in the logs
	if appErr.HTTPCode < http.StatusInternalServerError {
		body.Info = appErr.Message
		if appErr.Raw != nil {
			body.Info = appErr.Raw.Error()
		}
		body.Details = appErr.Details
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ErrorHandler renders errors returned by middleware and unmatched routes in
// the same envelope as handler errors
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if stdErrors.As(err, &httpErr) {
			appErr := httpErrorToApp(httpErr)
			_ = c.JSON(appErr.HTTPCode, errs{Code: appErr.Code, Message: appErr.Message})
			return
		}
		_ = HandleError(logger, c, err)
	}
}

func httpErrorToApp(e *echo.HTTPError) errors.AppError {
	msg := http.StatusText(e.Code)
	if m, ok := e.Message.(string); ok && m != "" {
		msg = m
	}
	switch e.Code {
	case http.StatusNotFound:
		return errors.AppError{HTTPCode: e.Code, Code: errors.ErrorCode_NOT_FOUND, Message: msg}
	case http.StatusUnauthorized:
		return errors.AppError{HTTPCode: e.Code, Code: errors.ErrorCode_UNAUTHENTICATED, Message: msg}
	case http.StatusTooManyRequests:
		return errors.ErrRateLimited()
	}
	if e.Code < http.StatusInternalServerError {
		return errors.AppError{HTTPCode: e.Code, Code: errors.ErrorCode_INVALID_ARGUMENT, Message: msg}
	}
	return errors.AppError{HTTPCode: e.Code, Code: errors.ErrorCode_INTERNAL, Message: msg}
}

// currentIdentity returns the caller resolved by the auth middleware
func currentIdentity(c echo.Context) (entities.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		return entities.Identity{}, errors.ErrUnauthenticated()
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs its validate tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// queryInt reads a non-negative integer query parameter
func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.ErrInvalidArgument(name + " must be a non-negative integer")
	}
	return v, nil
}
