package service

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable identifier for logs and metrics
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUpstreamFailed   ErrorCode = "UPSTREAM_FAILED"
)

// Client-facing messages
const (
	MsgValidationFailed = "Brakujące dane w zapytaniu."
	MsgGenerationFailed = "Wystąpił błąd podczas generowania analizy."
)

// ValidationError means the request itself is unusable; it maps to 400.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrCodeValidationFailed, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrCodeValidationFailed, e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Code() ErrorCode { return ErrCodeValidationFailed }

// UpstreamError means the generation backend failed after all attempts
type UpstreamError struct {
	Attempts int
	Status   int // last HTTP status, 0 for transport failures
	Err      error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s after %d attempt(s): %v", ErrCodeUpstreamFailed, e.Attempts, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Code() ErrorCode { return ErrCodeUpstreamFailed }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}

// CodeOf returns the error code carried by err, or "" when it has none
func CodeOf(err error) ErrorCode {
	var coded interface{ Code() ErrorCode }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return ""
}

func validationErr(field, msg string, err error) error {
	return &ValidationError{Field: field, Message: msg, Err: err}
}
