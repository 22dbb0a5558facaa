package dyn

import (
	"fmt"
	"reflect"

	"github.com/ib-77/fnkit/pkg/fn"
)

// VariadicArity marks a Func that accepts any number of arguments.
const VariadicArity = -1

// Func is a callable together with its declared arity.
type Func struct {
	Name  string
	Arity int
	// In and Out are optional type information. Out is nil when the
	// function produces no value or its type is unknown.
	In   []reflect.Type
	Out  reflect.Type
	Call func(args ...any) (any, error)
}

func Of(arity int, call func(args ...any) (any, error)) Func {
	return Func{Arity: arity, Call: call}
}

// Unary wraps a one-argument function. A nil f gives a Func without Call,
// which Pipe, Compose and Curry reject with fn.ErrNilFunc.
func Unary(f func(any) (any, error)) Func {
	if f == nil {
		return Func{Arity: 1}
	}
	return Func{
		Arity: 1,
		Call: func(args ...any) (any, error) {
			return f(args[0])
		},
	}
}

func Variadic(call func(args ...any) (any, error)) Func {
	return Func{Arity: VariadicArity, Call: call}
}

// Named returns a copy of f carrying name, used in errors and traces.
func (f Func) Named(name string) Func {
	f.Name = name
	return f
}

func (f Func) IsVariadic() bool {
	return f.Arity < 0
}

func (f Func) String() string {
	name := f.Name
	if name == "" {
		name = "func"
	}
	if f.IsVariadic() {
		return name + "/..."
	}
	return fmt.Sprintf("%s/%d", name, f.Arity)
}

// Invoke calls f after checking the argument count against its arity.
func (f Func) Invoke(args ...any) (any, error) {
	if f.Call == nil {
		return nil, fmt.Errorf("invoke %s: %w", f, fn.ErrNilFunc)
	}
	if !f.IsVariadic() && len(args) != f.Arity {
		return nil, fn.NewArityError("invoke "+f.String(), f.Arity, len(args), "")
	}
	return f.Call(args...)
}

func (f Func) check(op string) error {
	if f.Call == nil {
		return fmt.Errorf("%s %s: %w", op, f, fn.ErrNilFunc)
	}
	return nil
}
