package fn

// Outcome is the read side of a Result: anything that ends in a value, an
// error, or a cancellation.
type Outcome[T any] interface {
	Result() T
	Err() error
	IsSuccess() bool
	IsCancel() bool
}

// From turns any Outcome into a Result. A Result is returned as is, so its
// id and creation time survive.
func From[T any](o Outcome[T]) Result[T] {
	switch r := o.(type) {
	case Result[T]:
		return r
	case *Result[T]:
		if r != nil {
			return *r
		}
		return Fail[T](ErrNoOutcome)
	}
	switch {
	case o == nil:
		return Fail[T](ErrNoOutcome)
	case o.IsSuccess():
		return Success(o.Result())
	case o.IsCancel():
		return Cancel[T](o.Err())
	default:
		return Fail[T](o.Err())
	}
}
