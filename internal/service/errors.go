package service

import "errors"

// Error taxonomy surfaced to handlers. Operation-specific messages are
// attached with the helpers below so callers can match the category with
// errors.Is without parsing strings.
var (
	// ErrDuplicateEmail marks an email that is already registered
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUnauthorized marks bad credentials or an invalid, expired or
	// missing token. Messages are kept generic on purpose so error
	// differences cannot be used for account enumeration.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound marks a resource lookup miss
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput marks malformed input that got past request binding
	ErrInvalidInput = errors.New("invalid input")
)

type taggedError struct {
	tag error
	msg string
}

func (e *taggedError) Error() string { return e.msg }

func (e *taggedError) Is(target error) bool { return target == e.tag }

func unauthorized(msg string) error { return &taggedError{tag: ErrUnauthorized, msg: msg} }

func duplicate(msg string) error { return &taggedError{tag: ErrDuplicateEmail, msg: msg} }

func notFound(msg string) error { return &taggedError{tag: ErrNotFound, msg: msg} }

func invalidInput(msg string) error { return &taggedError{tag: ErrInvalidInput, msg: msg} }
