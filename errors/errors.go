package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// AppError is the error shape returned by the HTTP layer
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_PERMISSION_DENIED,
		Message:  fmt.Sprintf("Permission denied: %s", action),
	}
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_UNAUTHENTICATED,
		Message:  "Authentication required",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Invalid payload",
	}
}

func ErrRateLimited() AppError {
	return AppError{
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCode_RATE_LIMITED,
		Message:  "Too many requests, slow down",
	}
}

func ErrUnavailable(reason string) AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_UNAVAILABLE,
		Message:  reason,
	}
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_INVALID_TOKEN,
		Message:  "Invalid authentication token",
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:  "Authentication token has expired",
	}
}

func ErrOAuthFailed(provider string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_AUTH_OAUTH_FAILED,
		Message:  fmt.Sprintf("OAuth exchange failed with %s", provider),
	}
}

// Tier Errors
func ErrQuotaExceeded(kind string, limit, used int) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_QUOTA_EXCEEDED,
		Message:  fmt.Sprintf("Monthly %s limit reached (%d/%d used)", kind, used, limit),
	}.WithDetail("kind", kind).
		WithDetail("limit", fmt.Sprintf("%d", limit)).
		WithDetail("used", fmt.Sprintf("%d", used))
}

func ErrTierRequired(feature string) AppError {
	return AppError{
		HTTPCode: http.StatusForbidden,
		Code:     ErrorCode_TIER_REQUIRED,
		Message:  fmt.Sprintf("%s requires a premium subscription", feature),
	}.WithDetail("feature", feature)
}

// Pipeline Errors
func ErrTranscriptionFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_TRANSCRIPTION_FAILED,
		Message:  "Media transcription failed",
	}
}

func ErrUnsupportedMedia(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCode_UNSUPPORTED_MEDIA,
		Message:  "Media could not be decoded",
	}
}

func ErrProcessingFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PROCESSING_FAILED,
		Message:  "Processing failed",
	}
}

// Integration Errors
func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:  fmt.Sprintf("External API call failed: %s", service),
	}
}

func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:  fmt.Sprintf("Storage operation failed: %s", operation),
	}
}

func ErrCalendarFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_INTEGRATION_CALENDAR_FAILED,
		Message:  "Calendar operation failed",
	}
}

func ErrCalendarNotConnected() AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_INTEGRATION_CALENDAR_NOT_CONNECTED,
		Message:  "Google Calendar is not connected",
	}
}

// FromDomain maps typed domain errors onto their HTTP-facing AppError.
// Values that are already AppError pass through unchanged.
func FromDomain(err error) AppError {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var notFound *entities.NotFoundError
	if stdErrors.As(err, &notFound) {
		e := ErrNotFound(notFound.Resource)
		if notFound.ID != "" {
			e = e.WithDetail("id", notFound.ID)
		}
		return e
	}

	var validation *entities.ValidationError
	if stdErrors.As(err, &validation) {
		e := ErrInvalidArgument(validation.Error())
		if validation.Field != "" {
			e = e.WithDetail("field", validation.Field)
		}
		return e
	}

	var quota *entities.QuotaExceededError
	if stdErrors.As(err, &quota) {
		return ErrQuotaExceeded(string(quota.Kind), quota.Limit, quota.Used)
	}

	var tier *entities.TierRequiredError
	if stdErrors.As(err, &tier) {
		return ErrTierRequired(tier.Feature)
	}

	var transcription *entities.TranscriptionError
	if stdErrors.As(err, &transcription) {
		if transcription.Phase == entities.PhaseDecode {
			return ErrUnsupportedMedia(err)
		}
		return ErrTranscriptionFailed(err)
	}

	var external *entities.ExternalServiceError
	if stdErrors.As(err, &external) {
		if external.Service == entities.ServiceCalendar {
			return ErrCalendarFailed(err)
		}
		return ErrExternalAPIFailed(external.Service, err)
	}

	switch {
	case stdErrors.Is(err, entities.ErrCalendarNotConnected):
		return ErrCalendarNotConnected()
	case stdErrors.Is(err, entities.ErrOAuthStateMismatch):
		return ErrOAuthFailed("google", err)
	case stdErrors.Is(err, entities.ErrInvalidRole),
		stdErrors.Is(err, entities.ErrInvalidTier),
		stdErrors.Is(err, entities.ErrInvalidStatus):
		return ErrInvalidArgument(err.Error())
	}

	return ErrInternal(err)
}
