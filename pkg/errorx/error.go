package errorx

import (
	"errors"
	"fmt"
)

// Error is the error type returned across package boundaries. Message is safe
// to show to a client; the wrapped cause is kept for logs and errors.Is/As.
type Error struct {
	Code    Code
	Message string

	cause error
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

// Wrap attaches cause to a new Error. The cause is not part of Message.
func Wrap(code Code, cause error, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...), cause: cause}
}

func (e Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// Is matches any Error with the same code, so sentinel values like
// ErrNotConfigured work with errors.Is regardless of message or cause.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

// Is reports whether err carries an Error with the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

func CodeOf(err error) Code {
	var errx Error
	if errors.As(err, &errx) {
		return errx.Code
	}
	return Unknown.Code
}
