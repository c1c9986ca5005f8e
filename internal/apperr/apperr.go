// Package apperr carries business-rule failures as tagged values so handlers
// can map them to responses without matching on message text.
package apperr

import "errors"

type Kind int

const (
	KindInvalid Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

// Stable business codes, returned in the response envelope alongside the
// HTTP status.
const (
	CodeInvalidParam = 40001
	CodePrecondition = 40003
	CodeConflict     = 40005
	CodeUnauthorized = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeInternal     = 50001
)

type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func Invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Code: CodeInvalidParam, Message: message}
}

// Precondition reports a state-gated refusal (wrong status, wrong owner
// state) as opposed to a plain permission failure.
func Precondition(message string) *Error {
	return &Error{Kind: KindInvalid, Code: CodePrecondition, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: CodeConflict, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: message}
}

// From extracts the tagged error from err, wrapping infrastructure failures
// as internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err.Error())
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
