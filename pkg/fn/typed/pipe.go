package typed

import (
	"github.com/ib-77/fnkit/pkg/fn"
)

// Pipe returns a function applying fns left to right. An empty fns is
// rejected with an *fn.ArityError.
func Pipe[T any](fns ...func(T) T) (func(T) T, error) {
	if len(fns) == 0 {
		return nil, fn.NewArityError("pipe", 1, 0, "no functions")
	}
	steps := append([]func(T) T(nil), fns...)

	return func(in T) T {
		out := in
		for _, step := range steps {
			out = step(out)
		}
		return out
	}, nil
}

// MustPipe is like Pipe but panics on an empty fns.
func MustPipe[T any](fns ...func(T) T) func(T) T {
	p, err := Pipe(fns...)
	if err != nil {
		panic(err)
	}
	return p
}

// PipeV pipes a variadic first step into unary steps.
func PipeV[T any](first func(...T) T, rest ...func(T) T) func(...T) T {
	steps := append([]func(T) T(nil), rest...)

	return func(in ...T) T {
		out := first(in...)
		for _, step := range steps {
			out = step(out)
		}
		return out
	}
}

func Pipe2[A, B, C any](f1 func(A) B, f2 func(B) C) func(A) C {
	return func(a A) C {
		return f2(f1(a))
	}
}

func Pipe3[A, B, C, D any](f1 func(A) B, f2 func(B) C, f3 func(C) D) func(A) D {
	return func(a A) D {
		return f3(f2(f1(a)))
	}
}

func Pipe4[A, B, C, D, E any](f1 func(A) B, f2 func(B) C, f3 func(C) D, f4 func(D) E) func(A) E {
	return func(a A) E {
		return f4(f3(f2(f1(a))))
	}
}

// Compose returns h with h(a) = f(g(a)).
func Compose[A, B, C any](f func(B) C, g func(A) B) func(A) C {
	return Pipe2(g, f)
}

func Identity[T any](v T) T {
	return v
}

func Constant[T any](v T) func() T {
	return func() T {
		return v
	}
}
