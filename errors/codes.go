package errors

// ErrorCode is the numeric application error code returned in API envelopes.
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007
	ErrorCode_RATE_LIMITED      ErrorCode = 1008
	ErrorCode_UNAVAILABLE       ErrorCode = 1009

	// Auth
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001
	ErrorCode_AUTH_OAUTH_FAILED  ErrorCode = 2002

	// Tier and quota
	ErrorCode_QUOTA_EXCEEDED ErrorCode = 3000
	ErrorCode_TIER_REQUIRED  ErrorCode = 3001

	// Pipeline
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 4000
	ErrorCode_UNSUPPORTED_MEDIA    ErrorCode = 4001
	ErrorCode_PROCESSING_FAILED    ErrorCode = 4002

	// Integrations
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED    ErrorCode = 5000
	ErrorCode_INTEGRATION_STORAGE_FAILED         ErrorCode = 5001
	ErrorCode_INTEGRATION_CALENDAR_FAILED        ErrorCode = 5003
	ErrorCode_INTEGRATION_CALENDAR_NOT_CONNECTED ErrorCode = 5004
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                            "HTTP_OK",
	ErrorCode_INTERNAL:                           "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                   "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                          "NOT_FOUND",
	ErrorCode_PERMISSION_DENIED:                  "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:                    "UNAUTHENTICATED",
	ErrorCode_INVALID_PAYLOAD:                    "INVALID_PAYLOAD",
	ErrorCode_RATE_LIMITED:                       "RATE_LIMITED",
	ErrorCode_UNAVAILABLE:                        "UNAVAILABLE",
	ErrorCode_AUTH_INVALID_TOKEN:                 "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:                 "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_OAUTH_FAILED:                  "AUTH_OAUTH_FAILED",
	ErrorCode_QUOTA_EXCEEDED:                     "QUOTA_EXCEEDED",
	ErrorCode_TIER_REQUIRED:                      "TIER_REQUIRED",
	ErrorCode_TRANSCRIPTION_FAILED:               "TRANSCRIPTION_FAILED",
	ErrorCode_UNSUPPORTED_MEDIA:                  "UNSUPPORTED_MEDIA",
	ErrorCode_PROCESSING_FAILED:                  "PROCESSING_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED:    "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:         "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CALENDAR_FAILED:        "INTEGRATION_CALENDAR_FAILED",
	ErrorCode_INTEGRATION_CALENDAR_NOT_CONNECTED: "INTEGRATION_CALENDAR_NOT_CONNECTED",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
