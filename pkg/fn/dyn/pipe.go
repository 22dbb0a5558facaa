package dyn

import (
	"fmt"
	"strings"

	"github.com/ib-77/fnkit/pkg/fn"
	"go.uber.org/zap"
)

// Pipe builds a Func that applies fns left to right. See PipeWith.
func Pipe(fns ...Func) (Func, error) {
	return PipeWith(DefaultOptions(), fns...)
}

// PipeWith builds a Func that applies fns left to right. The first step
// receives the call's arguments, each later step the previous result.
//
// All checks happen here, not at call time: an empty fns or a later step
// that is not unary yields an *fn.ArityError, and a later step whose input
// type cannot take the previous output type yields an *fn.TypeMismatchError.
// The returned Func has the arity of the first step.
func PipeWith(opts Options, fns ...Func) (Func, error) {
	if len(fns) == 0 {
		return Func{}, fn.NewArityError("pipe", 1, 0, "no functions")
	}

	for i, f := range fns {
		if err := f.check("pipe"); err != nil {
			return Func{}, err
		}
		if i == 0 {
			continue
		}
		if f.Arity != 1 {
			return Func{}, fn.NewArityError("pipe", 1, f.Arity, fmt.Sprintf("step %d (%s) must be unary", i, f))
		}
		prev := fns[i-1].Out
		if prev != nil && len(f.In) == 1 && !accepts(f.In[0], prev) {
			return Func{}, fn.NewTypeMismatchError("pipe", i, f.In[0], prev)
		}
	}

	steps := append([]Func(nil), fns...)
	first, last := steps[0], steps[len(steps)-1]
	log := opts.logger().With(zap.String("pipe", pipeName(steps)))

	return Func{
		Name:  pipeName(steps),
		Arity: first.Arity,
		In:    first.In,
		Out:   last.Out,
		Call: func(args ...any) (any, error) {
			out, err := first.Invoke(args...)
			if err != nil {
				log.Debug("step failed", zap.Int("step", 0), zap.Error(err))
				return nil, err
			}
			for i, step := range steps[1:] {
				if out, err = step.Call(out); err != nil {
					log.Debug("step failed", zap.Int("step", i+1), zap.Error(err))
					return nil, err
				}
			}
			log.Debug("pipe done", zap.Int("steps", len(steps)))
			return out, nil
		},
	}, nil
}

// Compose returns h with h(x) = f(g(x)). Both f and g must be unary.
func Compose(f, g Func) (Func, error) {
	return ComposeWith(DefaultOptions(), f, g)
}

func ComposeWith(opts Options, f, g Func) (Func, error) {
	if err := g.check("compose"); err != nil {
		return Func{}, err
	}
	if g.Arity != 1 {
		return Func{}, fn.NewArityError("compose", 1, g.Arity, fmt.Sprintf("%s must be unary", g))
	}
	h, err := PipeWith(opts, g, f)
	if err != nil {
		return Func{}, err
	}
	return h.Named(fmt.Sprintf("compose(%s, %s)", f, g)), nil
}

func pipeName(steps []Func) string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = s.String()
	}
	return "pipe(" + strings.Join(names, ", ") + ")"
}
