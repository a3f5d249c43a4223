package service

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindInvalid
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInvalid:
		return "invalid"
	default:
		return "internal"
	}
}

// Messages surfaced to clients verbatim.
const (
	MsgUserNotFound          = "User does not exist!"
	MsgPasswordIncorrect     = "Password incorrect!"
	MsgUsernameTaken         = "Username already exists!"
	MsgEmailTaken            = "Email already exists!"
	MsgQuizNotFound          = "Quiz does not exist!"
	MsgVersionParentNotFound = "Parent quiz for version is not existing!"
	MsgVersionSuperseded     = "Quiz already has a newer version!"
	MsgQuizCreated           = "Quiz is created"
	MsgQuizUpdated           = "Quiz is updated"
	MsgQuizDone              = "Quiz is done!"
	MsgQuizDeleted           = "Quiz is deleted"
)

// Error is a failure classified for the transport layer. Message is safe to
// show to clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func notFound(message string) *Error { return newError(KindNotFound, message, nil) }

func invalid(message string) *Error { return newError(KindInvalid, message, nil) }

func internal(message string, err error) *Error { return newError(KindInternal, message, err) }

// KindOf reports the kind of err, KindInternal for unclassified errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
