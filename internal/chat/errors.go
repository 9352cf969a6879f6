package chat

import (
	"errors"
	"strings"
)

var (
	ErrInvalidRequest = errors.New("invalid chat request")
	ErrUnavailable    = errors.New("chat service unavailable")
	ErrQuota          = errors.New("chat quota exhausted")
	ErrBlocked        = errors.New("chat response blocked by safety filters")
)

const (
	msgRequired    = "Message is required"
	msgTooLong     = "Message too long"
	msgUnavailable = "AI service not available. Please check your configuration."
	msgQuota       = "I'm currently experiencing high demand. Please try again in a few minutes."
	msgSafety      = "I want to make sure I provide helpful and safe responses. Could you rephrase that?"
	msgDefault     = "I'm having trouble connecting right now. Please try again later."
)

// Error pairs an underlying failure with a message safe to show the user.
type Error struct {
	UserMessage string
	Err         error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.UserMessage
	}
	return e.UserMessage + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the user-facing text for err, or the generic
// connection message when err carries none.
func UserMessage(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.UserMessage
	}
	return msgDefault
}

// classify wraps a generator failure with the matching user message.
func classify(err error) *Error {
	switch {
	case errors.Is(err, ErrQuota):
		return &Error{UserMessage: msgQuota, Err: err}
	case errors.Is(err, ErrBlocked):
		return &Error{UserMessage: msgSafety, Err: err}
	case errors.Is(err, ErrUnavailable):
		return &Error{UserMessage: msgUnavailable, Err: err}
	}
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "quota"), strings.Contains(text, "resource_exhausted"):
		return &Error{UserMessage: msgQuota, Err: err}
	case strings.Contains(text, "safety"):
		return &Error{UserMessage: msgSafety, Err: err}
	}
	return &Error{UserMessage: msgDefault, Err: err}
}
