package flow

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/ib-77/fnkit/pkg/fn"
	"github.com/ib-77/fnkit/pkg/fn/dyn"
	"golang.org/x/sync/errgroup"
)

// Run calls f on every value from inputCh using lines workers, or the
// worker count from ctx when lines is not positive. Results arrive in
// completion order and the output is closed once every worker has stopped.
//
// After ctx is done no new calls start and inputs still in inputCh are
// dropped. With ProcessRemaining enabled a call already running still
// reports its result, and inputs that can be received without waiting are
// reported as cancelled results; such results are sent without regard to
// ctx, so the output must be read until it is closed. inputCh need not be
// closed for the output to close after cancellation.
func Run[In, Out any](ctx context.Context, inputCh <-chan In, f func(In) (Out, error), lines int) <-chan fn.Result[Out] {
	if lines <= 0 {
		lines = GetWorkerMaxCount(ctx, runtime.NumCPU())
	}
	processRemaining := IsProcessRemainingEnabled(ctx, false)

	out := make(chan fn.Result[Out])
	wg := &sync.WaitGroup{}

	for range lines {
		wg.Add(1)
		go locomotive(ctx, inputCh, out, f, processRemaining, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// RunFunc is Run for a dyn.Func; each input is passed as the single
// argument.
func RunFunc[In any](ctx context.Context, inputCh <-chan In, f dyn.Func, lines int) <-chan fn.Result[any] {
	return Run(ctx, inputCh, func(in In) (any, error) {
		return f.Invoke(in)
	}, lines)
}

func locomotive[In, Out any](ctx context.Context, inputCh <-chan In, outCh chan<- fn.Result[Out],
	f func(In) (Out, error), processRemaining bool, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			if processRemaining {
				cancelRemaining(ctx, inputCh, outCh)
			}
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}
			if ctx.Err() != nil {
				if processRemaining {
					outCh <- fn.Cancel[Out](ctx.Err())
					cancelRemaining(ctx, inputCh, outCh)
				}
				return
			}

			r := fn.Of(f(in))
			if processRemaining {
				outCh <- r
				continue
			}
			select {
			case outCh <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

// cancelRemaining reports every input that is ready now as cancelled. It
// returns as soon as inputCh is empty or closed.
func cancelRemaining[In, Out any](ctx context.Context, inputCh <-chan In, outCh chan<- fn.Result[Out]) {
	for {
		select {
		case _, ok := <-inputCh:
			if !ok {
				return
			}
			outCh <- fn.Cancel[Out](ctx.Err())
		default:
			return
		}
	}
}

// Collect reads results until ch is closed or ctx is done. Successful
// values are returned in arrival order; every failure and cancellation is
// joined into the error, with joined errors flattened.
func Collect[T any](ctx context.Context, ch <-chan fn.Result[T]) ([]T, error) {
	var (
		values []T
		errs   []error
	)
	for {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return values, errors.Join(errs...)
		case r, ok := <-ch:
			if !ok {
				return values, errors.Join(errs...)
			}
			v, err := r.Unpack()
			if err != nil {
				errs = append(errs, fn.Errors(err)...)
				continue
			}
			values = append(values, v)
		}
	}
}

// MapAll calls f on every input concurrently and returns the outputs in
// input order. The first error is returned as is and stops calls that have
// not started yet.
func MapAll[In, Out any](ctx context.Context, f func(In) (Out, error), inputs []In) ([]Out, error) {
	out := make([]Out, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(GetWorkerMaxCount(ctx, runtime.NumCPU()))

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := f(in)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

type Handlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, r In) Out
	OnError   func(ctx context.Context, err error) Out
	OnCancel  func(ctx context.Context, err error) Out
}

// Finally maps each result to a value through handlers. A result whose
// handler is nil is skipped. Once ctx is done, values nobody reads are
// discarded while input is still drained, so the output always closes after
// input does.
func Finally[In, Out any](ctx context.Context, input <-chan fn.Result[In], handlers Handlers[In, Out]) <-chan Out {
	out := make(chan Out)

	go func() {
		defer close(out)
		for r := range input {
			var v Out
			switch {
			case r.IsSuccess():
				if handlers.OnSuccess == nil {
					continue
				}
				v = handlers.OnSuccess(ctx, r.Result())
			case r.IsCancel():
				if handlers.OnCancel == nil {
					continue
				}
				v = handlers.OnCancel(ctx, r.Err())
			default:
				if handlers.OnError == nil {
					continue
				}
				v = handlers.OnError(ctx, r.Err())
			}

			select {
			case out <- v:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
