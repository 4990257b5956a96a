// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, missing data, type mismatches
//   - Data/Resource errors (200-299): Data not found, query failures, unavailable resources
//   - Indicator errors (300-399): Technical indicator calculation and lookup errors
//   - Signal errors (400-499): Rule bank configuration errors
//   - Market data errors (700-799): Market data fetching and parsing errors
//   - Export errors (800-899): Scored series export failures
//   - Config errors (900-999): Configuration loading failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeNoDataFound, "no bars returned for symbol %s", symbol)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to execute query", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeDataNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type or one of the
// typed series errors. Returns ErrCodeUnknown otherwise.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError represents an error when there is not enough data
// for a calculation (e.g., indicator calculations requiring a minimum period).
type InsufficientDataError struct {
	Required int    // Minimum data points required
	Actual   int    // Actual data points available
	Symbol   string // Optional: symbol context
	Message  string // Human-readable message
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *InsufficientDataError) Error() string {
	return e.Message
}

// Code returns ErrCodeInsufficientData so callers can branch on GetCode.
func (e *InsufficientDataError) Code() ErrorCode {
	return ErrCodeInsufficientData
}

// IsInsufficientDataError checks if an error is an InsufficientDataError.
// It uses errors.As to check the error chain.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}

// MalformedSeriesError is returned when an input series violates its ingestion
// contract: unordered or duplicate dates, non-finite values or missing fields.
type MalformedSeriesError struct {
	Index  int    // Row index of the offending bar, -1 when not row specific
	Field  string // Offending field (date, open, high, low, close, volume)
	Reason string // What is wrong with the field
	Symbol string // Optional: symbol context
}

// NewMalformedSeriesError creates a new MalformedSeriesError.
func NewMalformedSeriesError(index int, field, symbol, reason string) *MalformedSeriesError {
	return &MalformedSeriesError{
		Index:  index,
		Field:  field,
		Reason: reason,
		Symbol: symbol,
	}
}

// NewMalformedSeriesErrorf creates a new MalformedSeriesError with a formatted reason.
func NewMalformedSeriesErrorf(index int, field, symbol, format string, args ...any) *MalformedSeriesError {
	return NewMalformedSeriesError(index, field, symbol, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *MalformedSeriesError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed series for %s: %s %s", e.Symbol, e.Field, e.Reason)
	}

	return fmt.Sprintf("malformed series for %s: row %d: %s %s", e.Symbol, e.Index, e.Field, e.Reason)
}

// Code returns ErrCodeMalformedSeries so callers can branch on GetCode.
func (e *MalformedSeriesError) Code() ErrorCode {
	return ErrCodeMalformedSeries
}

// IsMalformedSeriesError checks if an error is a MalformedSeriesError.
func IsMalformedSeriesError(err error) bool {
	var malformedErr *MalformedSeriesError

	return errors.As(err, &malformedErr)
}
