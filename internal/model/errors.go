package model

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes errors returned to the front-end
type ErrorKind int

const (
	// ErrorCustom covers template, browser, dialog and generic failures
	ErrorCustom ErrorKind = iota
	// ErrorInvalidURL covers empty, oversized, wrong-scheme and blocked URLs
	ErrorInvalidURL
	// ErrorFile covers unusable filesystem paths
	ErrorFile
)

// String returns the wire name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrorInvalidURL:
		return "InvalidUrl"
	case ErrorFile:
		return "FileError"
	default:
		return "Custom"
	}
}

// AppError is the structured error every command returns. All kinds are
// recoverable input-shaped failures.
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewInvalidURL creates an InvalidUrl error
func NewInvalidURL(message string) *AppError {
	return &AppError{Kind: ErrorInvalidURL, Message: message}
}

// NewFileError creates a FileError error
func NewFileError(message string) *AppError {
	return &AppError{Kind: ErrorFile, Message: message}
}

// NewCustom creates a Custom error
func NewCustom(message string) *AppError {
	return &AppError{Kind: ErrorCustom, Message: message}
}

// NewCustomf creates a Custom error with a formatted message
func NewCustomf(format string, args ...any) *AppError {
	return NewCustom(fmt.Sprintf(format, args...))
}

// KindOf returns the kind of err, or ErrorCustom when err carries no AppError
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrorCustom
}
