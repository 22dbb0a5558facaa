package fn

import (
	"context"
	"errors"
)

// Errors flattens err into the errors it aggregates, following
// errors.Join and any other error with an Unwrap() []error method at every
// depth. A nil err has none.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var leaves []error
	for _, e := range multi.Unwrap() {
		leaves = append(leaves, Errors(e)...)
	}
	return leaves
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
