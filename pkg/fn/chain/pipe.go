package chain

import (
	"context"

	"github.com/ib-77/fnkit/pkg/fn"
)

type Step[T any] func(ctx context.Context, in T) fn.Result[T]

// Pipe folds steps left to right into a single step. The result stops at
// the first failed or cancelled step; an empty steps is an
// *fn.ArityError.
func Pipe[T any](steps ...Step[T]) (Step[T], error) {
	if len(steps) == 0 {
		return nil, fn.NewArityError("pipe", 1, 0, "no steps")
	}
	for _, s := range steps {
		if s == nil {
			return nil, fn.ErrNilFunc
		}
	}
	steps = append([]Step[T](nil), steps...)

	return func(ctx context.Context, in T) fn.Result[T] {
		c := FromValue(ctx, in)
		for _, s := range steps {
			c = c.Then(s)
		}
		return c.Result()
	}, nil
}

// Compose returns a step running g and then f.
func Compose[T any](f, g Step[T]) (Step[T], error) {
	return Pipe(g, f)
}
