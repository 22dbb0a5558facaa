package fn

import (
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of a single composed call: a value on success,
// otherwise the error that stopped it.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Of converts a (value, error) pair into a Result. Cancellation errors
// produce a cancelled result.
func Of[T any](r T, err error) Result[T] {
	if err == nil {
		return Success(r)
	}
	if IsCancellationError(err) {
		return Cancel[T](err)
	}
	return Fail[T](err)
}

// CancelFrom carries a failed or cancelled result over to another value
// type, keeping its id and creation time.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:       from.err,
		isSuccess: false,
		isCancel:  from.isCancel,
		createdAt: from.createdAt,
		id:        from.id,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && (r.err != nil || r.isCancel)
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// Unpack returns the value and error, the usual Go pair.
func (r Result[T]) Unpack() (T, error) {
	return r.result, r.err
}
