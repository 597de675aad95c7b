package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Reference errors
	ErrMalformedReference ErrorCode = "MALFORMED_REFERENCE"
	ErrFormIDMismatch     ErrorCode = "FORMID_MISMATCH"

	// Document errors
	ErrDocumentInvalid ErrorCode = "DOCUMENT_INVALID"
	ErrPresetPath      ErrorCode = "PRESET_PATH"

	// External input errors
	ErrMergeInvalid     ErrorCode = "MERGE_INVALID"
	ErrInventoryInvalid ErrorCode = "INVENTORY_INVALID"
	ErrArchiveInvalid   ErrorCode = "ARCHIVE_INVALID"
	ErrLoadOrder        ErrorCode = "LOAD_ORDER"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrRelocate   ErrorCode = "RELOCATE"
)

// PresetError represents a structured error with code and details
type PresetError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PresetError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PresetError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PresetError carrying the same code.
func (e *PresetError) Is(target error) bool {
	var targetErr *PresetError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PresetError with the given code and message
func New(code ErrorCode, message string) *PresetError {
	return &PresetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PresetError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PresetError {
	return &PresetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PresetError
func Wrap(err error, code ErrorCode, message string) *PresetError {
	if err == nil {
		return nil
	}
	return &PresetError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PresetError {
	if err == nil {
		return nil
	}
	return &PresetError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PresetError) WithDetail(key string, value interface{}) *PresetError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var presetErr *PresetError
	if errors.As(err, &presetErr) {
		return presetErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PresetError
func GetErrorCode(err error) ErrorCode {
	var presetErr *PresetError
	if errors.As(err, &presetErr) {
		return presetErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PresetError
func GetErrorDetails(err error) map[string]interface{} {
	var presetErr *PresetError
	if errors.As(err, &presetErr) {
		return presetErr.Details
	}
	return nil
}
