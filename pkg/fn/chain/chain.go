package chain

import (
	"context"

	"github.com/ib-77/fnkit/pkg/fn"
)

type Chain[T any] struct {
	ctx context.Context
	res fn.Result[T]
}

// Start begins a chain from a Result or any other fn.Outcome.
func Start[T any](ctx context.Context, r fn.Outcome[T]) Chain[T] {
	return Chain[T]{ctx: ctx, res: fn.From(r)}
}

func FromValue[T any](ctx context.Context, v T) Chain[T] {
	return Chain[T]{ctx: ctx, res: fn.Success(v)}
}

func (c Chain[T]) Result() fn.Result[T] {
	return c.res
}

func (c Chain[T]) stopped() bool {
	return !c.res.IsSuccess()
}

// Then composes functions that already return fn.Result[T]
func (c Chain[T]) Then(onSuccess func(ctx context.Context, t T) fn.Result[T]) Chain[T] {
	if c.stopped() {
		return c
	}
	if err := c.ctx.Err(); err != nil {
		return Chain[T]{ctx: c.ctx, res: fn.Cancel[T](err)}
	}
	return Chain[T]{ctx: c.ctx, res: onSuccess(c.ctx, c.res.Result())}
}

// ThenTry composes functions that return (T, error). Context errors become
// a cancelled result, anything else a failure.
func (c Chain[T]) ThenTry(try func(ctx context.Context, t T) (T, error)) Chain[T] {
	return c.Then(func(ctx context.Context, t T) fn.Result[T] {
		return fn.Of(try(ctx, t))
	})
}

// Map transforms the successful value to a new value
func (c Chain[T]) Map(onSuccess func(ctx context.Context, t T) T) Chain[T] {
	return c.Then(func(ctx context.Context, t T) fn.Result[T] {
		return fn.Success(onSuccess(ctx, t))
	})
}

// Ensure triggers side effects for success/failure/cancel without changing
// the result. Nil callbacks are skipped.
func (c Chain[T]) Ensure(onSuccess func(context.Context, T), onFailure func(context.Context, error),
	onCancel func(context.Context, error)) Chain[T] {

	switch {
	case c.res.IsSuccess():
		if onSuccess != nil {
			onSuccess(c.ctx, c.res.Result())
		}
	case c.res.IsCancel():
		if onCancel != nil {
			onCancel(c.ctx, c.res.Err())
		}
	default:
		if onFailure != nil {
			onFailure(c.ctx, c.res.Err())
		}
	}
	return c
}

// Finally collapses the chain to a final value
func Finally[T, U any](c Chain[T],
	onSuccess func(context.Context, T) U,
	onFailure func(context.Context, error) U,
	onCancel func(context.Context, error) U) U {

	if c.res.IsSuccess() {
		return onSuccess(c.ctx, c.res.Result())
	} else if c.res.IsCancel() {
		return onCancel(c.ctx, c.res.Err())
	}
	return onFailure(c.ctx, c.res.Err())
}

// To moves the chain to a new value type.
func To[T, U any](c Chain[T], onSuccess func(context.Context, T) fn.Result[U]) Chain[U] {
	if c.stopped() {
		return Chain[U]{ctx: c.ctx, res: fn.CancelFrom[T, U](c.res)}
	}
	if err := c.ctx.Err(); err != nil {
		return Chain[U]{ctx: c.ctx, res: fn.Cancel[U](err)}
	}
	return Chain[U]{ctx: c.ctx, res: onSuccess(c.ctx, c.res.Result())}
}

// ToTry is To for functions returning (U, error).
func ToTry[T, U any](c Chain[T], try func(context.Context, T) (U, error)) Chain[U] {
	return To(c, func(ctx context.Context, t T) fn.Result[U] {
		return fn.Of(try(ctx, t))
	})
}
