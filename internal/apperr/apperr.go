// Package apperr defines the error taxonomy shared by every backend driver.
// Each vendor SDK returns differently shaped errors; drivers classify them
// into one of these kinds at the boundary where they occur, and nothing above
// the handler layer rethrows them.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Unknown Kind = iota
	// Configuration: backend credentials missing. Fatal to persistence; the
	// app degrades to a static, read-only display.
	Configuration
	// Authentication: no signed-in user at submission time.
	Authentication
	// Input: the user must correct the form (price <= 0 and friends).
	Input
	// Upload: file too large or the storage call failed.
	Upload
	// Persistence: an insert, query or subscribe call failed.
	Persistence
)

func (k Kind) String() string {
	switch k {
	case Configuration:
		return "configuration"
	case Authentication:
		return "authentication"
	case Input:
		return "input"
	case Upload:
		return "upload"
	case Persistence:
		return "persistence"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf classifies any error. Errors that did not come through this package
// are Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// maxDisplayLen caps raw vendor error text shown to the user.
const maxDisplayLen = 50

// DisplayMessage returns the user-facing message for an error. Classified
// errors carry their own message; anything else is raw vendor text truncated
// to 50 characters.
func DisplayMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	msg := err.Error()
	if len(msg) > maxDisplayLen {
		return msg[:maxDisplayLen] + "..."
	}
	return msg
}
