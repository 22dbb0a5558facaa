package fn

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrArity reports a function whose parameter count does not fit the
	// operation: an empty pipe, a non-unary later step, a variadic function
	// given to Curry, or a call with the wrong number of arguments.
	ErrArity = errors.New("arity error")
	// ErrTypeMismatch reports a step whose input type cannot accept the
	// previous step's output, or an argument of the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrResolved is returned when more arguments are applied to a curried
	// function that has already been invoked.
	ErrResolved = errors.New("curried function already resolved")
	// ErrNilFunc reports a missing function where one is required.
	ErrNilFunc = errors.New("nil function")
	// ErrNoOutcome is the error of a Result made from a nil Outcome.
	ErrNoOutcome = errors.New("no outcome")
)

// ArityError describes an arity violation. Want is negative when the
// expected count is unbounded.
type ArityError struct {
	Op     string
	Want   int
	Got    int
	Reason string
}

func NewArityError(op string, want, got int, reason string) *ArityError {
	return &ArityError{Op: op, Want: want, Got: got, Reason: reason}
}

func (e *ArityError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s: %s (want %d, got %d)", e.Op, ErrArity, e.Reason, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: %s (want %d, got %d)", e.Op, ErrArity, e.Want, e.Got)
}

func (e *ArityError) Unwrap() error {
	return ErrArity
}

// TypeMismatchError describes a step (or argument) Step whose type Got
// does not fit the expected type Want.
type TypeMismatchError struct {
	Op   string
	Step int
	Want reflect.Type
	Got  reflect.Type
}

func NewTypeMismatchError(op string, step int, want, got reflect.Type) *TypeMismatchError {
	return &TypeMismatchError{Op: op, Step: step, Want: want, Got: got}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s at %d: want %v, got %v", e.Op, ErrTypeMismatch, e.Step, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// IsArityError reports whether err is or wraps an arity error.
func IsArityError(err error) bool {
	return errors.Is(err, ErrArity)
}

// IsTypeMismatch reports whether err is or wraps a type mismatch.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
