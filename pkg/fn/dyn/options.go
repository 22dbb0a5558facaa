package dyn

import "go.uber.org/zap"

// OverflowPolicy decides what Curry does with arguments beyond the arity.
type OverflowPolicy int

const (
	// Truncate invokes the function with the first Arity arguments and
	// drops the rest.
	Truncate OverflowPolicy = iota
	// Strict fails with an *fn.ArityError.
	Strict
)

func (p OverflowPolicy) String() string {
	switch p {
	case Truncate:
		return "truncate"
	case Strict:
		return "strict"
	default:
		return "unknown"
	}
}

type Options struct {
	Overflow OverflowPolicy
	// Logger receives debug traces of pipe steps and curry transitions.
	// Nil means no logging.
	Logger *zap.Logger
}

func DefaultOptions() Options {
	return Options{
		Overflow: Truncate,
		Logger:   zap.NewNop(),
	}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
