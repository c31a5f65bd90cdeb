package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors. Every error returned by a handler should wrap one of them so
// that the client gets a stable code.
var (
	// ErrUnauthorized means the transaction lacks a required signature or
	// condition.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg means the message is malformed or of an unexpected type.
	ErrMsg = Register(4, "invalid message")

	// ErrModel means a stored entity is invalid.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate means a unique key or index is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct code never reaches.
	ErrHuman = Register(7, "coding error")

	// ErrImmutable means an immutable value was changed.
	ErrImmutable = Register(8, "cannot be modified")

	// ErrEmpty means a required value is missing.
	ErrEmpty = Register(9, "value is empty")

	ErrState = Register(10, "invalid state")
	ErrType  = Register(11, "invalid type")

	// ErrInsufficientAmount means a balance cannot cover a transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrAmount means an amount is zero, negative or malformed.
	ErrAmount = Register(13, "invalid amount")

	ErrInput = Register(14, "invalid input")

	// ErrExpired means the entity passed its expiration time.
	ErrExpired = Register(15, "expired")

	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrCurrency means a ticker is invalid, unknown or does not match.
	ErrCurrency = Register(17, "invalid currency code")

	// ErrDatabase means the underlying store failed.
	ErrDatabase = Register(18, "database")

	// ErrDenied means a transfer gate refused a transfer.
	ErrDenied = Register(19, "transfer denied")

	// ErrFrozen means the asset cannot be moved.
	ErrFrozen = Register(20, "frozen")

	// ErrPanic is the root of every recovered panic. Redact hides its
	// details from clients.
	ErrPanic = Register(111222, "panic")
)

// Code 1 is reserved for errors that do not wrap a registered root error.
var registry = map[uint32]*Error{1: nil}

// Register declares a new root error. Codes must be unique and registering a
// code twice panics, so call it only from package variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error, a kind that runtime errors are wrapped around.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code clients receive for this kind of error.
func (e Error) ABCICode() uint32 {
	return e.code
}

// New wraps the root error with a description.
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is reports whether err is this root error or wraps it. A nil kind matches
// only a nil error, including a typed nil.
func (e *Error) Is(err error) bool {
	if e == nil {
		return err == nil || reflect.ValueOf(err).IsNil()
	}
	for err != nil {
		if err == e {
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds a description to err and returns nil for a nil err. The innermost
// wrap records the stack trace, which %+v prints.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrapf(err, "%T", obj)
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// with defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Redact returns ErrPanic alone for any recovered panic so that no system
// details leak to the client. Other errors are returned unchanged.
func Redact(err error) error {
	if ErrPanic.Is(err) {
		return ErrPanic
	}
	return err
}

// Code returns the code of the root error err wraps, 0 for nil and 1 for an
// error that wraps no registered root error.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	for {
		if e, ok := err.(*Error); ok {
			return e.code
		}
		c, ok := err.(causer)
		if !ok {
			return 1
		}
		err = c.Cause()
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the first stack trace found in the wrap chain of err.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}
