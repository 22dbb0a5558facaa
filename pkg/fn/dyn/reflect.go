package dyn

import (
	"math"
	"reflect"
	"runtime"

	"github.com/ib-77/fnkit/pkg/fn"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Reflect wraps an ordinary Go function. Its arity is the declared
// parameter count, or VariadicArity for a variadic function.
//
// The function may return nothing, a value, an error, or a value followed
// by an error. Arguments are converted to the parameter types: nil becomes
// the zero value and a numeric value converts to another numeric kind when
// it fits exactly. Any other argument that is not assignable, including
// 2.5 for an int or 300 for an int8, yields a *fn.TypeMismatchError.
func Reflect(f any) (Func, error) {
	v := reflect.ValueOf(f)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Func{}, fn.NewArityError("reflect", VariadicArity, 0, "not a function")
	}
	if v.IsNil() {
		return Func{}, fn.ErrNilFunc
	}

	t := v.Type()
	out, hasErr, err := results(t)
	if err != nil {
		return Func{}, err
	}

	in := make([]reflect.Type, t.NumIn())
	for i := range in {
		in[i] = t.In(i)
	}

	arity := t.NumIn()
	if t.IsVariadic() {
		arity = VariadicArity
	}

	return Func{
		Name:  funcName(v),
		Arity: arity,
		In:    in,
		Out:   out,
		Call: func(args ...any) (any, error) {
			argv, err := arguments(t, args)
			if err != nil {
				return nil, err
			}
			return unpack(v.Call(argv), out != nil, hasErr)
		},
	}, nil
}

// MustReflect is like Reflect but panics on error.
func MustReflect(f any) Func {
	r, err := Reflect(f)
	if err != nil {
		panic(err)
	}
	return r
}

func results(t reflect.Type) (out reflect.Type, hasErr bool, err error) {
	switch t.NumOut() {
	case 0:
		return nil, false, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, true, nil
		}
		return t.Out(0), false, nil
	case 2:
		if t.Out(1) != errorType {
			return nil, false, fn.NewArityError("reflect", 2, t.NumOut(), "second result must be an error")
		}
		return t.Out(0), true, nil
	default:
		return nil, false, fn.NewArityError("reflect", 2, t.NumOut(), "too many results")
	}
}

func arguments(t reflect.Type, args []any) ([]reflect.Value, error) {
	n := t.NumIn()
	if t.IsVariadic() {
		if len(args) < n-1 {
			return nil, fn.NewArityError("call", n-1, len(args), "too few arguments")
		}
	} else if len(args) != n {
		return nil, fn.NewArityError("call", n, len(args), "")
	}

	argv := make([]reflect.Value, len(args))
	for i, a := range args {
		var want reflect.Type
		if t.IsVariadic() && i >= n-1 {
			want = t.In(n - 1).Elem()
		} else {
			want = t.In(i)
		}

		av, err := convert(a, want, i)
		if err != nil {
			return nil, err
		}
		argv[i] = av
	}
	return argv, nil
}

func convert(a any, want reflect.Type, pos int) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(want), nil
	}
	av := reflect.ValueOf(a)
	if av.Type().AssignableTo(want) {
		return av, nil
	}
	if isNumeric(want) && isNumeric(av.Type()) && fits(av, want) {
		return av.Convert(want), nil
	}
	return reflect.Value{}, fn.NewTypeMismatchError("call", pos, want, av.Type())
}

// accepts reports whether every value of type got can be passed where
// want is expected without losing anything.
func accepts(want, got reflect.Type) bool {
	if got.AssignableTo(want) {
		return true
	}
	return widens(want, got)
}

func widens(want, got reflect.Type) bool {
	switch {
	case isSigned(got) && isSigned(want):
		return want.Bits() >= got.Bits()
	case isUnsigned(got) && isUnsigned(want):
		return want.Bits() >= got.Bits()
	case isUnsigned(got) && isSigned(want):
		return want.Bits() > got.Bits()
	case (isSigned(got) || isUnsigned(got)) && isFloat(want):
		return true
	case isFloat(got) && isFloat(want):
		return want.Bits() >= got.Bits()
	default:
		return false
	}
}

// fits reports whether the numeric value v converts to want exactly.
func fits(v reflect.Value, want reflect.Type) bool {
	target := reflect.Zero(want)
	switch {
	case isSigned(want):
		switch {
		case isSigned(v.Type()):
			return !target.OverflowInt(v.Int())
		case isUnsigned(v.Type()):
			return v.Uint() <= math.MaxInt64 && !target.OverflowInt(int64(v.Uint()))
		default:
			f := v.Float()
			return f == math.Trunc(f) && f >= -(1<<63) && f < 1<<63 && !target.OverflowInt(int64(f))
		}
	case isUnsigned(want):
		switch {
		case isSigned(v.Type()):
			return v.Int() >= 0 && !target.OverflowUint(uint64(v.Int()))
		case isUnsigned(v.Type()):
			return !target.OverflowUint(v.Uint())
		default:
			f := v.Float()
			return f == math.Trunc(f) && f >= 0 && f < 1<<64 && !target.OverflowUint(uint64(f))
		}
	default:
		switch {
		case isSigned(v.Type()):
			f := v.Convert(want).Float()
			return f >= -(1<<63) && f < 1<<63 && int64(f) == v.Int()
		case isUnsigned(v.Type()):
			f := v.Convert(want).Float()
			return f < 1<<64 && uint64(f) == v.Uint()
		default:
			f := v.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return true
			}
			return !target.OverflowFloat(f) && v.Convert(want).Float() == f
		}
	}
}

func isSigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

func isUnsigned(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

func isNumeric(t reflect.Type) bool {
	return isSigned(t) || isUnsigned(t) || isFloat(t)
}

func unpack(rs []reflect.Value, hasOut, hasErr bool) (any, error) {
	var (
		val any
		err error
	)
	if hasOut {
		val = rs[0].Interface()
	}
	if hasErr {
		if e := rs[len(rs)-1].Interface(); e != nil {
			err = e.(error)
		}
	}
	return val, err
}

func funcName(v reflect.Value) string {
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		return rf.Name()
	}
	return ""
}
