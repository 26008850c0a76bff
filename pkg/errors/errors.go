package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"

	// Environment errors
	ErrHomeUnavailable ErrorCode = "HOME_UNAVAILABLE"

	// Repository errors
	ErrRepoNotInitialized ErrorCode = "REPO_NOT_INITIALIZED"
	ErrRepoExists         ErrorCode = "REPO_EXISTS"

	// Source file errors (add)
	ErrSourceNotFound   ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceNotFile    ErrorCode = "SOURCE_NOT_FILE"
	ErrInvalidFileName  ErrorCode = "INVALID_FILE_NAME"
	ErrAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	ErrFileMove         ErrorCode = "FILE_MOVE"
	ErrSymlinkCreate    ErrorCode = "SYMLINK_CREATE"
	ErrSymlinkRemove    ErrorCode = "SYMLINK_REMOVE"
	ErrLinkFailed       ErrorCode = "LINK_FAILED"
	ErrDirCreate        ErrorCode = "DIR_CREATE"
	ErrRepositoryAccess ErrorCode = "REPO_ACCESS"

	// Manifest errors
	ErrManifestRead  ErrorCode = "MANIFEST_READ"
	ErrManifestParse ErrorCode = "MANIFEST_PARSE"
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"
)

// DotmanError represents a structured error with code and details
type DotmanError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotmanError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotmanError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DotmanError carrying the same code
func (e *DotmanError) Is(target error) bool {
	var targetErr *DotmanError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotmanError with the given code and message
func New(code ErrorCode, message string) *DotmanError {
	return &DotmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotmanError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotmanError {
	return &DotmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotmanError.
// A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *DotmanError {
	if err == nil {
		return nil
	}
	return &DotmanError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotmanError {
	if err == nil {
		return nil
	}
	return &DotmanError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotmanError) WithDetail(key string, value interface{}) *DotmanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *DotmanError) WithDetails(details map[string]interface{}) *DotmanError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotmanError
func GetErrorCode(err error) ErrorCode {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotmanError
func GetErrorDetails(err error) map[string]interface{} {
	var dotmanErr *DotmanError
	if errors.As(err, &dotmanErr) {
		return dotmanErr.Details
	}
	return nil
}
