package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		httpCode int
		code     ErrorCode
	}{
		{"not found", entities.NewNotFound("minutes", "m1"), http.StatusNotFound, ErrorCode_NOT_FOUND},
		{"validation", entities.NewValidation("source", "is required"), http.StatusBadRequest, ErrorCode_INVALID_ARGUMENT},
		{"quota", &entities.QuotaExceededError{Kind: entities.QuotaAutomation, Limit: 5, Used: 5}, http.StatusForbidden, ErrorCode_QUOTA_EXCEEDED},
		{"tier", &entities.TierRequiredError{Feature: "calendar", Tier: entities.TierPremium}, http.StatusForbidden, ErrorCode_TIER_REQUIRED},
		{"decode", entities.NewTranscriptionError(entities.PhaseDecode, fmt.Errorf("bad header")), http.StatusUnprocessableEntity, ErrorCode_UNSUPPORTED_MEDIA},
		{"transcribe", entities.NewTranscriptionError(entities.PhaseTranscribe, fmt.Errorf("timeout")), http.StatusInternalServerError, ErrorCode_TRANSCRIPTION_FAILED},
		{"calendar", entities.NewExternal(entities.ServiceCalendar, fmt.Errorf("503")), http.StatusBadGateway, ErrorCode_INTEGRATION_CALENDAR_FAILED},
		{"summarizer", entities.NewExternal(entities.ServiceSummarizer, fmt.Errorf("503")), http.StatusInternalServerError, ErrorCode_INTEGRATION_EXTERNAL_API_FAILED},
		{"not connected", fmt.Errorf("schedule: %w", entities.ErrCalendarNotConnected), http.StatusConflict, ErrorCode_INTEGRATION_CALENDAR_NOT_CONNECTED},
		{"state mismatch", entities.ErrOAuthStateMismatch, http.StatusBadRequest, ErrorCode_AUTH_OAUTH_FAILED},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, ErrorCode_INTERNAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomain(tt.err)
			assert.Equal(t, tt.httpCode, got.HTTPCode)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestFromDomainKeepsAppError(t *testing.T) {
	in := ErrRateLimited()
	got := FromDomain(fmt.Errorf("wrapped: %w", in))
	assert.Equal(t, ErrorCode_RATE_LIMITED, got.Code)
}

func TestQuotaMessageCarriesUsage(t *testing.T) {
	got := FromDomain(&entities.QuotaExceededError{Kind: entities.QuotaMeeting, Limit: 5, Used: 5})
	assert.Contains(t, got.Message, "5/5")
	assert.Equal(t, "meeting", got.Details["kind"])
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ErrStorageFailed("upload", cause)
	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, "INTEGRATION_STORAGE_FAILED", err.Code.String())
}

func TestErrorCodeNames(t *testing.T) {
	assert.Equal(t, "PERMISSION_DENIED", ErrPermissionDenied("admin").Code.String())
	assert.Equal(t, "INTEGRATION_CALENDAR_NOT_CONNECTED", ErrCalendarNotConnected().Code.String())
	assert.Equal(t, "UNKNOWN", ErrorCode(1003).String())
	assert.Equal(t, "UNKNOWN", ErrorCode(6000).String())
}
