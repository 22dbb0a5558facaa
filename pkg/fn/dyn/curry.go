package dyn

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/ib-77/fnkit/pkg/fn"
	"go.uber.org/zap"
)

// State is the position of a curried call in its lifecycle.
type State int

const (
	// Accumulating holds fewer arguments than the arity.
	Accumulating State = iota
	// Resolved is terminal: the function ran and produced a value.
	Resolved
	// Failed is terminal: the function or the curry itself returned an error.
	Failed
)

func (s State) String() string {
	switch s {
	case Accumulating:
		return "accumulating"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Partial is a function waiting for more arguments. It owns its copy of
// the arguments and is never modified after creation.
type Partial struct {
	id        uuid.UUID
	createdAt time.Time
	fn        Func
	args      []any
}

func (p Partial) Id() uuid.UUID {
	return p.id
}

func (p Partial) CreatedAt() time.Time {
	return p.createdAt
}

func (p Partial) Func() Func {
	return p.fn
}

// Args returns a copy of the arguments collected so far.
func (p Partial) Args() []any {
	return append([]any(nil), p.args...)
}

// Remaining is the number of arguments still needed.
func (p Partial) Remaining() int {
	return p.fn.Arity - len(p.args)
}

// Step is the outcome of applying arguments to a curried function.
type Step struct {
	state   State
	fn      Func
	partial Partial
	value   any
	err     error
	opts    Options
}

// Curry starts currying f with args. See CurryWith.
func Curry(f Func, args ...any) Step {
	return CurryWith(DefaultOptions(), f, args...)
}

// CurryWith curries f, which must have a fixed arity. Once at least
// f.Arity arguments have been supplied, across any number of Apply calls,
// f is invoked and the Step is Resolved (or Failed if f returns an error).
// Supplying exactly f.Arity arguments invokes f at once. Extra arguments
// are handled by opts.Overflow.
func CurryWith(opts Options, f Func, args ...any) Step {
	if err := f.check("curry"); err != nil {
		return failed(opts, f, err)
	}
	if f.IsVariadic() {
		return failed(opts, f, fn.NewArityError("curry "+f.String(), VariadicArity, len(args), "variadic functions have no fixed arity"))
	}
	return accumulate(opts, f, nil, args)
}

func accumulate(opts Options, f Func, held, more []any) Step {
	all := make([]any, 0, len(held)+len(more))
	all = append(all, held...)
	all = append(all, more...)

	log := opts.logger()
	if len(all) < f.Arity {
		p := Partial{id: uuid.New(), createdAt: time.Now().UTC(), fn: f, args: all}
		log.Debug("curry accumulating",
			zap.Stringer("func", f),
			zap.Stringer("partial", p.id),
			zap.Int("have", len(all)))
		return Step{state: Accumulating, fn: f, partial: p, opts: opts}
	}

	if len(all) > f.Arity {
		if opts.Overflow == Strict {
			return failed(opts, f, fn.NewArityError("curry "+f.String(), f.Arity, len(all), "too many arguments"))
		}
		log.Debug("curry dropping extra arguments",
			zap.Stringer("func", f),
			zap.Int("dropped", len(all)-f.Arity))
		all = all[:f.Arity]
	}

	v, err := f.Call(all...)
	if err != nil {
		log.Debug("curry failed", zap.Stringer("func", f), zap.Error(err))
		return failed(opts, f, err)
	}
	log.Debug("curry resolved", zap.Stringer("func", f))
	return Step{state: Resolved, fn: f, value: v, opts: opts}
}

func failed(opts Options, f Func, err error) Step {
	return Step{state: Failed, fn: f, err: err, opts: opts}
}

// Apply supplies more arguments. An Accumulating step yields a new Step
// and leaves the receiver usable; applying to a Resolved step fails with
// fn.ErrResolved; a Failed step returns itself.
func (s Step) Apply(more ...any) Step {
	switch s.state {
	case Accumulating:
		return accumulate(s.opts, s.fn, s.partial.args, more)
	case Resolved:
		return failed(s.opts, s.fn, fmt.Errorf("curry %s: %w", s.fn, fn.ErrResolved))
	default:
		return s
	}
}

func (s Step) State() State {
	return s.state
}

func (s Step) IsResolved() bool {
	return s.state == Resolved
}

func (s Step) Value() any {
	return s.value
}

func (s Step) Err() error {
	return s.err
}

// Partial returns the pending call while the step is Accumulating.
func (s Step) Partial() (Partial, bool) {
	return s.partial, s.state == Accumulating
}

// Result converts s into a fn.Result. An Accumulating step is reported as
// a failure, since it has no value yet.
func (s Step) Result() fn.Result[any] {
	switch s.state {
	case Resolved:
		return fn.Success(s.value)
	case Failed:
		return fn.Fail[any](s.err)
	default:
		return fn.Fail[any](fn.NewArityError("curry "+s.fn.String(), s.fn.Arity, len(s.partial.args), "awaiting arguments"))
	}
}

// AsFunc exposes the step as a Func taking the remaining arguments, so a
// partial application can be used as a Pipe step. Terminal steps become
// zero-arity functions returning their value or error.
func (s Step) AsFunc() Func {
	if s.state != Accumulating {
		return Func{
			Name: s.state.String(),
			Call: func(...any) (any, error) {
				return s.value, s.err
			},
		}
	}

	p := s.partial
	var in []reflect.Type
	if len(p.fn.In) == p.fn.Arity {
		in = p.fn.In[len(p.args):]
	}
	return Func{
		Name:  fmt.Sprintf("%s[%d bound]", p.fn, len(p.args)),
		Arity: p.Remaining(),
		In:    in,
		Out:   p.fn.Out,
		Call: func(args ...any) (any, error) {
			next := s.Apply(args...)
			if next.state == Accumulating {
				return nil, fn.NewArityError("call "+p.fn.String(), p.Remaining(), len(args), "too few arguments")
			}
			return next.value, next.err
		},
	}
}

// As returns the value of a Resolved step as a T.
func As[T any](s Step) (T, error) {
	var zero T
	if s.state != Resolved {
		if s.err != nil {
			return zero, s.err
		}
		return zero, s.Result().Err()
	}
	if s.value == nil {
		return zero, nil
	}
	v, ok := s.value.(T)
	if !ok {
		return zero, fn.NewTypeMismatchError("as", 0, reflect.TypeOf((*T)(nil)).Elem(), reflect.TypeOf(s.value))
	}
	return v, nil
}
