// Package apperror provides structured error handling for the yieldsplit core.
package apperror

import (
	"errors"
	"fmt"
	"time"
)

// Kind classifies an error by how the composing flow must react to it.
type Kind string

const (
	// KindPrecondition rejects before any external call; the user must
	// change their input.
	KindPrecondition Kind = "precondition"

	// KindQuote is a failed quote or simulation. Fatal on a mandatory
	// step, silently degraded on an optional one.
	KindQuote Kind = "quote"

	// KindAbort is an on-chain rejection of a submitted transaction.
	// Never retried automatically.
	KindAbort Kind = "abort"

	// KindTransport is any other failure from an external collaborator.
	KindTransport Kind = "transport"
)

// AppError implements the error interface and carries the code, kind
// and display message for a failure.
type AppError struct {
	Code      Code      `json:"code"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Context   string    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Context)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is implements errors.Is comparison by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Display returns the user-facing message for the terminal notification
// surface.
func (e *AppError) Display() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Context)
	}
	return e.Message
}

// Option is a functional option for AppError.
type Option func(*AppError)

// WithMessage sets a custom message.
func WithMessage(message string) Option {
	return func(e *AppError) {
		e.Message = message
	}
}

// WithContext adds context information.
func WithContext(context string) Option {
	return func(e *AppError) {
		e.Context = context
	}
}

// WithCause wraps an underlying error.
func WithCause(cause error) Option {
	return func(e *AppError) {
		e.cause = cause
	}
}

// New creates a new AppError with the given code and options.
func New(code Code, opts ...Option) *AppError {
	err := &AppError{
		Code:      code,
		Kind:      kindOf(code),
		Message:   messages[code],
		Timestamp: time.Now(),
	}

	for _, opt := range opts {
		opt(err)
	}

	if err.Message == "" {
		err.Message = string(code)
	}

	return err
}

// Precondition creates a precondition error.
func Precondition(code Code, context string) *AppError {
	return New(code, WithContext(context))
}

// Quote creates a quote/simulation failure.
func Quote(code Code, context string, cause error) *AppError {
	return New(code, WithContext(context), WithCause(cause))
}

// Abort creates an on-chain abort error, translating the raw error
// text through the abort-code table.
func Abort(raw string) *AppError {
	return New(CodeOnChainAbort, WithMessage(Translate(raw)))
}

// Transport creates a transport/unknown error.
func Transport(context string, cause error) *AppError {
	return New(CodeTransportError, WithContext(context), WithCause(cause))
}

// Wrap wraps a standard error into an AppError, passing AppErrors through.
func Wrap(err error, code Code, context string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if context != "" && appErr.Context == "" {
			appErr.Context = context
		}
		return appErr
	}

	return New(code, WithContext(context), WithCause(err))
}

// GetCode extracts the error code from an error.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknownError
}

// KindOf extracts the error kind from an error, defaulting to transport.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindTransport
}
