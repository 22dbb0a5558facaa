package typed

import (
	"github.com/ib-77/fnkit/pkg/fn"
)

// PipeErr is Pipe for steps that can fail. The first error stops the pipe
// and is returned as is.
func PipeErr[T any](fns ...func(T) (T, error)) (func(T) (T, error), error) {
	if len(fns) == 0 {
		return nil, fn.NewArityError("pipe", 1, 0, "no functions")
	}
	steps := append([]func(T) (T, error)(nil), fns...)

	return func(in T) (T, error) {
		out := in
		for _, step := range steps {
			next, err := step(out)
			if err != nil {
				return next, err
			}
			out = next
		}
		return out, nil
	}, nil
}

func Pipe2Err[A, B, C any](f1 func(A) (B, error), f2 func(B) (C, error)) func(A) (C, error) {
	return func(a A) (C, error) {
		b, err := f1(a)
		if err != nil {
			var zero C
			return zero, err
		}
		return f2(b)
	}
}

// ComposeErr returns h with h(a) = f(g(a)), skipping f when g fails.
func ComposeErr[A, B, C any](f func(B) (C, error), g func(A) (B, error)) func(A) (C, error) {
	return Pipe2Err(g, f)
}

// Lift turns an error-returning function into one producing fn.Result.
func Lift[A, B any](f func(A) (B, error)) func(A) fn.Result[B] {
	return func(a A) fn.Result[B] {
		return fn.Of(f(a))
	}
}
