package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryOptions  Category = "options"
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryAssets   Category = "assets"
	CategoryCLI      Category = "cli"
)

// ToastError is a structured error with a code, suggestion and optional cause.
type ToastError struct {
	// Code is a unique error identifier (e.g., "T001").
	Code string

	// Category is the error type (options, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field names the option, config key or message field involved.
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ToastError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Field)
	}
	if e.Detail != "" {
		msg = msg + ": " + e.Detail
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ToastError) Unwrap() error {
	return e.Wrapped
}

// WithField records which option or key the error is about.
func (e *ToastError) WithField(field string) *ToastError {
	e.Field = field
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ToastError) WithSuggestion(s string) *ToastError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *ToastError) WithDetail(d string) *ToastError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *ToastError) WithDetailf(format string, args ...any) *ToastError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *ToastError) Wrap(err error) *ToastError {
	e.Wrapped = err
	return e
}

// New creates a ToastError from a registered error code.
func New(code string) *ToastError {
	template, ok := registry[code]
	if !ok {
		return &ToastError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ToastError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new ToastError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ToastError {
	return &ToastError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ToastError.
func FromError(err error, code string) *ToastError {
	if err == nil {
		return nil
	}
	var te *ToastError
	if stderrors.As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err is, or wraps, a ToastError with the given code.
func HasCode(err error, code string) bool {
	var te *ToastError
	for err != nil {
		if !stderrors.As(err, &te) {
			return false
		}
		if te.Code == code {
			return true
		}
		err = te.Wrapped
	}
	return false
}
