package flow

import (
	"context"
)

func ToChanFromArgs[T any](ctx context.Context, values ...T) <-chan T {
	in := make(chan T)

	go func() {
		defer close(in)

		for _, v := range values {
			if ctx.Err() != nil {
				return
			}

			select {
			case in <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

func ToChan[T any](ctx context.Context, value T) <-chan T {
	return ToChanFromArgs(ctx, value)
}

func ToChanMany[T any](ctx context.Context, values []T) <-chan T {
	return ToChanFromArgs(ctx, values...)
}

// FromChanMany collects values until out is closed or ctx is done.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}
