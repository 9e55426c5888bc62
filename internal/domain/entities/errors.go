package entities

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrEmptyTranscript      = errors.New("transcript is empty")
	ErrCalendarNotConnected = errors.New("google calendar is not connected")
	ErrOAuthStateMismatch   = errors.New("oauth state mismatch")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidTier          = errors.New("invalid tier")
	ErrInvalidStatus        = errors.New("invalid status")
)

// NotFoundError reports a referenced document that does not exist for the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFound builds a NotFoundError.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// QuotaExceededError reports a tier limit that has been reached.
type QuotaExceededError struct {
	Kind  QuotaKind
	Limit int
	Used  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s quota exceeded: %d of %d used", e.Kind, e.Used, e.Limit)
}

// TierRequiredError reports a feature that the caller's tier does not include.
type TierRequiredError struct {
	Feature string
	Tier    Tier
}

func (e *TierRequiredError) Error() string {
	return fmt.Sprintf("%s is not available on the %s tier", e.Feature, e.Tier)
}

// External services named in ExternalServiceError.
const (
	ServiceSpeechToText = "speech-to-text"
	ServiceSummarizer   = "summarizer"
	ServiceClassifier   = "classifier"
	ServiceCalendar     = "calendar"
	ServiceStorage      = "storage"
)

// ExternalServiceError wraps a failure of a speech-to-text, LLM or calendar call.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// NewExternal builds an ExternalServiceError.
func NewExternal(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Err: err}
}

// TranscriptionPhase names the step of the transcription stage that failed.
type TranscriptionPhase string

const (
	PhaseDownload   TranscriptionPhase = "download"
	PhaseDecode     TranscriptionPhase = "decode"
	PhaseExtract    TranscriptionPhase = "extract"
	PhaseTranscribe TranscriptionPhase = "transcribe"
	PhasePersist    TranscriptionPhase = "persist"
)

// TranscriptionError is the only error kind the transcription stage returns.
type TranscriptionError struct {
	Phase TranscriptionPhase
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription %s failed: %v", e.Phase, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// NewTranscriptionError builds a TranscriptionError.
func NewTranscriptionError(phase TranscriptionPhase, err error) *TranscriptionError {
	return &TranscriptionError{Phase: phase, Err: err}
}
