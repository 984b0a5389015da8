package storage

import "fmt"

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These mirror the shipengine package codes without importing it.

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// ============================================================================
// STORAGE ERROR TYPE
// ============================================================================

// StorageError represents a storage-specific error with a code and message.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *StorageError) ErrorMessage() string {
	return e.Message
}

func newStorageError(code, message string) *StorageError {
	return &StorageError{Code: code, Message: message}
}

// ============================================================================
// STORAGE DOMAIN ERRORS
// ============================================================================

var (
	// ErrBucketRequired is returned when an S3 or R2 bucket name is missing.
	ErrBucketRequired = newStorageError(codeInvalid, "storage bucket name is required")

	// ErrR2AccountIDRequired is returned when R2 account ID is missing.
	ErrR2AccountIDRequired = newStorageError(codeInvalid, "R2 account ID is required")

	// ErrCredentialsRequired is returned when R2 credentials are missing.
	ErrCredentialsRequired = newStorageError(codeInvalid, "storage credentials are required")
)

// ErrFileNotFound creates an error for when a file is not found.
func ErrFileNotFound(key string) error {
	return &StorageError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("file not found: %s", key),
	}
}

// ErrInvalidKey creates an error for keys that escape the storage root.
func ErrInvalidKey(key string) error {
	return &StorageError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("invalid storage key: %q", key),
	}
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return &StorageError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown storage provider: %s", provider),
	}
}
