// Package apperr defines the error kinds surfaced by the application core.
// Callers branch on the kind with errors.Is against the sentinels or with
// KindOf; transports map kinds to their own status codes.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidTransition
	KindValidation
	KindStoreFailure
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindValidation:
		return "validation_error"
	case KindStoreFailure:
		return "store_failure"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrValidation        = &Error{Kind: KindValidation}
	ErrStoreFailure      = &Error{Kind: KindStoreFailure}
	ErrTimeout           = &Error{Kind: KindTimeout}
)

// Error carries the kind plus enough context to identify what failed.
type Error struct {
	Kind   Kind
	Op     string // operation, e.g. "update application status"
	Entity string // e.g. "application"
	ID     string // id of the entity, when known
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Entity != "" && e.ID != "":
		fmt.Fprintf(&b, "%s %s %s", e.Entity, e.ID, kindPhrase(e.Kind))
	case e.Entity != "":
		fmt.Fprintf(&b, "%s %s", e.Entity, kindPhrase(e.Kind))
	default:
		b.WriteString(kindPhrase(e.Kind))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind so errors.Is(err, ErrNotFound) works for any
// not-found error regardless of its context.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Op == "" && t.Entity == "" && t.ID == "" && t.Err == nil
}

func kindPhrase(k Kind) string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidTransition:
		return "invalid status transition"
	case KindValidation:
		return "invalid input"
	case KindStoreFailure:
		return "store failure"
	case KindTimeout:
		return "timed out"
	default:
		return "unknown error"
	}
}

// NotFound reports that entity id does not exist.
func NotFound(op, entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Op: op, Entity: entity, ID: fmt.Sprint(id)}
}

// InvalidTransition reports a disallowed status change.
func InvalidTransition(op string, id any, from, to string) *Error {
	return &Error{
		Kind:   KindInvalidTransition,
		Op:     op,
		Entity: "application",
		ID:     fmt.Sprint(id),
		Msg:    fmt.Sprintf("application %v cannot move from %s to %s", id, from, to),
	}
}

// Validation reports malformed input.
func Validation(op, msg string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg, Err: err}
}

// StoreFailure wraps an unexpected persistence error.
func StoreFailure(op string, err error) *Error {
	return &Error{Kind: KindStoreFailure, Op: op, Err: err}
}

// Timeout wraps a deadline hit while waiting on the store.
func Timeout(op string, err error) *Error {
	return &Error{Kind: KindTimeout, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
