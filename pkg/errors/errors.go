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
	ErrInvalidState ErrorCode = "INVALID_STATE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Static resource errors (fatal)
	ErrDirInfoLoad    ErrorCode = "DIRINFO_LOAD"
	ErrDirInfoParse   ErrorCode = "DIRINFO_PARSE"
	ErrKnownFilesLoad ErrorCode = "KNOWN_FILES_LOAD"

	// Mod errors
	ErrInvalidModDir ErrorCode = "INVALID_MOD_DIR"
	ErrInvalidSlot   ErrorCode = "INVALID_SLOT"
	ErrDuplicateSlot ErrorCode = "DUPLICATE_TARGET"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCopy   ErrorCode = "FILE_COPY"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ReslotError represents a structured error with code and details
type ReslotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ReslotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReslotError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ReslotError with the same code
func (e *ReslotError) Is(target error) bool {
	var targetErr *ReslotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ReslotError with the given code and message
func New(code ErrorCode, message string) *ReslotError {
	return &ReslotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ReslotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ReslotError {
	return &ReslotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ReslotError
func Wrap(err error, code ErrorCode, message string) *ReslotError {
	if err == nil {
		return nil
	}
	return &ReslotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ReslotError {
	if err == nil {
		return nil
	}
	return &ReslotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ReslotError) WithDetail(key string, value interface{}) *ReslotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var reslotErr *ReslotError
	if errors.As(err, &reslotErr) {
		return reslotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ReslotError
func GetErrorCode(err error) ErrorCode {
	var reslotErr *ReslotError
	if errors.As(err, &reslotErr) {
		return reslotErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ReslotError
func GetErrorDetails(err error) map[string]interface{} {
	var reslotErr *ReslotError
	if errors.As(err, &reslotErr) {
		return reslotErr.Details
	}
	return nil
}

// IsFatal reports whether err aborts a run rather than being recorded and skipped.
func IsFatal(err error) bool {
	switch GetErrorCode(err) {
	case ErrDirInfoLoad, ErrDirInfoParse, ErrKnownFilesLoad, ErrInvalidModDir:
		return true
	}
	return false
}
