package dashboard

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures.
type Kind string

const (
	KindNetwork  Kind = "network"
	KindDecode   Kind = "decode"
	KindProvider Kind = "provider"
	KindNotFound Kind = "not_found"
	KindInput    Kind = "input"
)

var (
	// ErrNetwork is matched by errors.Is for any request that could not complete.
	ErrNetwork = &Error{Kind: KindNetwork}
	// ErrDecode is matched when a provider body is not valid JSON.
	ErrDecode = &Error{Kind: KindDecode}
	// ErrProvider is matched when a provider returned an error envelope.
	ErrProvider = &Error{Kind: KindProvider}
	// ErrNotFound is matched when a provider returned an empty or absent result set.
	ErrNotFound = &Error{Kind: KindNotFound}
	// ErrInput is matched for missing or invalid user input.
	ErrInput = &Error{Kind: KindInput}

	// ErrStale is returned when a result arrived after a newer request on the same surface.
	ErrStale = errors.New("result superseded by a newer request")
)

// Error is the uniform failure produced by the pipeline.
// Message is what the surface shows to the user.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so callers can write errors.Is(err, dashboard.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NetworkError(err error) error {
	return &Error{Kind: KindNetwork, Message: "Network error: " + err.Error(), Err: err}
}

func DecodeError(err error) error {
	return &Error{Kind: KindDecode, Message: "Invalid response from provider", Err: err}
}

func ProviderError(message string) error {
	return &Error{Kind: KindProvider, Message: message}
}

func NotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func InputError(format string, args ...any) error {
	return &Error{Kind: KindInput, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err is not a pipeline error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Message returns the user-visible message for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
