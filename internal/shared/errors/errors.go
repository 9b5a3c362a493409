// Package errors holds the sentinel errors shared across modules.
//
// Adapters wrap these with oops.With(...).Wrap so that context travels
// with the error, and callers branch on errors.Is or on Class.
package errors

import "errors"

// Error classes.
const (
	ClassInput      = "input"
	ClassPermission = "permission"
	ClassNotFound   = "not_found"
	ClassTransport  = "transport"
	ClassConflict   = "conflict"
	ClassIntegrity  = "integrity"
	ClassConfig     = "config"
)

var (
	ErrMissingBotToken    = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrUnsupportedStorage = errors.New("unsupported storage driver")

	ErrInvalidInput     = errors.New("invalid input")
	ErrPermissionDenied = errors.New("permission denied")

	ErrChannelNotFound    = errors.New("channel not found")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrFilterNotFound     = errors.New("filter not found")

	ErrTransport = errors.New("transport failure")

	ErrChannelExists = errors.New("channel already exists")

	ErrSessionCorrupted = errors.New("conversation session is missing expected data")

	ErrDispatcherStopped = errors.New("dispatcher stopped")
)

var classes = []struct {
	err   error
	class string
}{
	{ErrMissingBotToken, ClassConfig},
	{ErrUnsupportedStorage, ClassConfig},
	{ErrInvalidInput, ClassInput},
	{ErrPermissionDenied, ClassPermission},
	{ErrChannelNotFound, ClassNotFound},
	{ErrSubscriberNotFound, ClassNotFound},
	{ErrFilterNotFound, ClassNotFound},
	{ErrTransport, ClassTransport},
	{ErrChannelExists, ClassConflict},
	{ErrSessionCorrupted, ClassIntegrity},
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Class returns the class of the first known sentinel found in err's chain,
// or an empty string for unclassified errors.
func Class(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range classes {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return ""
}
