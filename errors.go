package shipengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dukerupert/shipengine/internal/transport"
	"github.com/dukerupert/shipengine/internal/wire"
)

// ============================================================================
// ERROR CODES
// ============================================================================

const (
	CodeInvalid      = "invalid"
	CodeNotFound     = "not_found"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeRateLimit    = "rate_limit"
	CodeUnavailable  = "unavailable"
	CodeInternal     = "internal"
)

// ============================================================================
// ERROR TYPE
// ============================================================================

// Error is an SDK-level error with a machine-readable code and a message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ErrorCode returns the error code.
func (e *Error) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the human-readable message.
func (e *Error) ErrorMessage() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ============================================================================
// SENTINEL ERRORS
// ============================================================================

var (
	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = newError(CodeInvalid, "ShipEngine API key is required")

	// ErrEmptyRateOptions is returned by GetRates when no carrier ids are given.
	// It is returned before any request is sent.
	ErrEmptyRateOptions = newError(CodeInvalid, "rate options must include at least one carrier id")

	// ErrIDRequired is returned when a carrier, rate or label id is blank.
	ErrIDRequired = newError(CodeInvalid, "resource id is required")

	// ErrNoLabelDownload is returned when a label carries no link for the requested format.
	ErrNoLabelDownload = newError(CodeNotFound, "label has no download link for the requested format")

	// ErrLabelStoreRequired is returned by DownloadLabel when no store is given.
	ErrLabelStoreRequired = newError(CodeInvalid, "a label store is required")

	// ErrMalformedResponse is returned when a successful response cannot be
	// decoded or lacks the field the result is built from.
	ErrMalformedResponse = transport.ErrMalformedResponse
)

// ErrInvalidAddressField creates an error for an address mapping entry of the wrong type.
func ErrInvalidAddressField(key string, got any) error {
	return &Error{
		Code:    CodeInvalid,
		Message: fmt.Sprintf("address field %q must be a string, got %T", key, got),
	}
}

// ErrInvalidConfig wraps a configuration validation failure.
func ErrInvalidConfig(err error) error {
	return &Error{
		Code:    CodeInvalid,
		Message: fmt.Sprintf("invalid shipengine config: %v", err),
	}
}

// ============================================================================
// API ERRORS
// ============================================================================

// ErrorDetail is one entry of the provider's error list.
type ErrorDetail struct {
	Source  string `json:"error_source"`
	Type    string `json:"error_type"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// APIError is returned for any non-2xx response from ShipEngine.
// It wraps the underlying transport error so errors.As reaches both.
type APIError struct {
	Operation  string
	StatusCode int
	RequestID  string
	Errors     []ErrorDetail
	err        error
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("shipengine %s: status %d", e.Operation, e.StatusCode)
	}
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		msgs[i] = d.Message
	}
	return fmt.Sprintf("shipengine %s: status %d: %s", e.Operation, e.StatusCode, strings.Join(msgs, "; "))
}

func (e *APIError) Unwrap() error {
	return e.err
}

// ErrorCode maps the HTTP status onto an SDK error code.
func (e *APIError) ErrorCode() string {
	switch {
	case e.StatusCode == http.StatusBadRequest, e.StatusCode == http.StatusUnprocessableEntity:
		return CodeInvalid
	case e.StatusCode == http.StatusUnauthorized:
		return CodeUnauthorized
	case e.StatusCode == http.StatusForbidden:
		return CodeForbidden
	case e.StatusCode == http.StatusNotFound:
		return CodeNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return CodeRateLimit
	case e.StatusCode >= 500:
		return CodeUnavailable
	default:
		return CodeInternal
	}
}

// ErrorCode extracts a code from any error returned by this package.
// Returns "" for nil and CodeInternal for errors it does not recognise.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return CodeInternal
}

// fromTransport converts a transport status error into an *APIError, decoding
// the provider's error envelope when one is present. Other errors pass through.
func fromTransport(err error) error {
	var statusErr *transport.StatusError
	if !errors.As(err, &statusErr) {
		return err
	}

	apiErr := &APIError{
		Operation:  statusErr.Operation,
		StatusCode: statusErr.StatusCode,
		err:        err,
	}

	var envelope wire.ErrorResponse
	if json.Unmarshal(statusErr.Body, &envelope) == nil {
		apiErr.RequestID = envelope.RequestID
		for _, e := range envelope.Errors {
			apiErr.Errors = append(apiErr.Errors, ErrorDetail{
				Source:  e.ErrorSource,
				Type:    e.ErrorType,
				Code:    e.ErrorCode,
				Message: e.Message,
			})
		}
	}

	return apiErr
}
