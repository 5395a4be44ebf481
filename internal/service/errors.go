package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so the transport layer can pick a status
// code without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a service failure with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

// Forbidden reports a failed role or ownership check.
func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

// Unauthenticated reports a missing or unverifiable credential.
func Unauthenticated(format string, args ...any) *Error {
	return newError(KindUnauthenticated, format, args...)
}

// InvalidInput reports malformed input or a violated business rule.
func InvalidInput(format string, args ...any) *Error {
	return newError(KindInvalidInput, format, args...)
}

// Conflict reports a uniqueness violation.
func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, format, args...)
}
