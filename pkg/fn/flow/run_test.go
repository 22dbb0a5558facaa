package flow

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/ib-77/fnkit/pkg/fn"
	"github.com/ib-77/fnkit/pkg/fn/dyn"
	"github.com/ib-77/fnkit/pkg/fn/typed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Equal(t, 5, GetWorkerMaxCount(ctx, 5))
	assert.Equal(t, 2, GetWorkerMaxCount(WithWorkerOptions(ctx, 2), 5))
	assert.Equal(t, 5, GetWorkerMaxCount(WithWorkerOptions(ctx, 0), 5))
	assert.False(t, IsProcessRemainingEnabled(ctx, false))
	assert.True(t, IsProcessRemainingEnabled(WithProcessOptions(ctx, true), false))
}

func TestChanHelpers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	assert.Equal(t, []int{1, 2, 3}, FromChanMany(ctx, ToChanMany(ctx, []int{1, 2, 3})))
	assert.Equal(t, []string{"x"}, FromChanMany(ctx, ToChan(ctx, "x")))
	assert.Empty(t, FromChanMany(ctx, ToChanMany(ctx, []int{})))
}

func TestRun_ComposedFunction(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	p := typed.MustPipe(
		func(x int) int { return x * x },
		func(x int) int { return x / 2 },
		func(x int) int { return x * 3 },
	)
	f := func(x int) (int, error) { return p(x), nil }

	input := []int{10, 2, 4, 6}
	var got []int
	for r := range Run(ctx, ToChanMany(ctx, input), f, 3) {
		require.True(t, r.IsSuccess(), "unexpected error: %v", r.Err())
		got = append(got, r.Result())
	}
	sort.Ints(got)

	if diff := cmp.Diff([]int{6, 24, 54, 150}, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ErrorsBecomeFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")
	f := func(x int) (int, error) {
		if x%2 == 0 {
			return 0, boom
		}
		return x, nil
	}

	failures, successes := 0, 0
	for r := range Run(ctx, ToChanMany(ctx, []int{1, 2, 3, 4, 5}), f, 2) {
		if r.IsSuccess() {
			successes++
			continue
		}
		failures++
		assert.Same(t, boom, r.Err())
	}
	assert.Equal(t, 3, successes)
	assert.Equal(t, 2, failures)
}

func TestRun_WorkersFromContext(t *testing.T) {
	t.Parallel()
	ctx := WithWorkerOptions(context.Background(), 4)

	var active, peak int32
	f := func(x int) (int, error) {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return x, nil
	}

	input := make([]int, 20)
	results := FromChanMany(ctx, Run(ctx, ToChanMany(ctx, input), f, 0))

	assert.Len(t, results, 20)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
}

func TestRun_CancelProcessRemaining(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(WithProcessOptions(context.Background(), true))
	defer cancel()

	input := make(chan int, 4)
	for i := range 4 {
		input <- i
	}

	started, gate := make(chan struct{}), make(chan struct{})
	f := func(x int) (int, error) {
		if x == 0 {
			close(started)
			<-gate
		}
		return x, nil
	}
	out := Run(ctx, input, f, 1)

	<-started
	cancel()
	close(gate)

	successes, cancelled := 0, 0
	for r := range out {
		if r.IsSuccess() {
			assert.Equal(t, 0, r.Result())
			successes++
			continue
		}
		require.True(t, r.IsCancel())
		assert.ErrorIs(t, r.Err(), context.Canceled)
		cancelled++
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 3, cancelled)
	assert.Empty(t, input)
}

func TestRun_CancelWithOpenInput(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(WithProcessOptions(context.Background(), true))
	cancel()

	input := make(chan int)
	out := Run(ctx, input, func(x int) (int, error) { return x, nil }, 3)

	assert.Empty(t, FromChanMany(context.Background(), out))
}

func TestRun_CancelDropsRemaining(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := make(chan int)
	out := Run(ctx, input, func(x int) (int, error) { return x, nil }, 2)

	assert.Empty(t, FromChanMany(context.Background(), out))
}

func TestRunFunc_Curried(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	add := dyn.MustReflect(func(prefix, s string) string { return prefix + s })
	greet := dyn.Curry(add, "hi ").AsFunc()

	var got []string
	for r := range RunFunc(ctx, ToChanMany(ctx, []string{"a", "b", "c"}), greet, 3) {
		require.True(t, r.IsSuccess())
		got = append(got, r.Result().(string))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"hi a", "hi b", "hi c"}, got)
}

func TestMapAll_KeepsOrder(t *testing.T) {
	t.Parallel()
	ctx := WithWorkerOptions(context.Background(), 3)
	upper := func(s string) (string, error) {
		time.Sleep(time.Duration(len(s)) * time.Millisecond)
		return strings.ToUpper(s), nil
	}

	got, err := MapAll(ctx, upper, []string{"ccc", "a", "bb"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CCC", "A", "BB"}, got)
}

func TestMapAll_FirstError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	f := func(x int) (int, error) {
		if x == 3 {
			return 0, boom
		}
		return x, nil
	}

	got, err := MapAll(WithWorkerOptions(context.Background(), 1), f, []int{1, 2, 3, 4})
	assert.Nil(t, got)
	assert.Same(t, boom, err)
}

func TestMapAll_ConcurrentCurriedCalls(t *testing.T) {
	t.Parallel()
	add := dyn.MustReflect(func(x, y, z int) int { return x + y + z })
	base := dyn.Curry(add, 1)

	inputs := make([]int, 200)
	for i := range inputs {
		inputs[i] = i
	}
	got, err := MapAll(context.Background(), func(i int) (int, error) {
		return dyn.As[int](base.Apply(i).Apply(i * 2))
	}, inputs)
	require.NoError(t, err)

	for i, v := range got {
		assert.Equal(t, 1+3*i, v)
	}
}

func TestFinally(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	results := ToChanMany(ctx, []fn.Result[int]{
		fn.Success(1),
		fn.Fail[int](errors.New("bad")),
		fn.Cancel[int](context.Canceled),
	})

	out := FromChanMany(ctx, Finally(ctx, results, Handlers[int, string]{
		OnSuccess: func(_ context.Context, v int) string { return "ok" },
		OnError:   func(_ context.Context, err error) string { return "err" },
		OnCancel:  func(_ context.Context, err error) string { return "cancel" },
	}))
	assert.Equal(t, []string{"ok", "err", "cancel"}, out)
}

func TestFinally_NilHandlerSkipsResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	results := ToChanMany(ctx, []fn.Result[int]{
		fn.Success(1),
		fn.Fail[int](errors.New("bad")),
		fn.Cancel[int](context.Canceled),
		fn.Success(2),
	})

	out := FromChanMany(ctx, Finally(ctx, results, Handlers[int, int]{
		OnSuccess: func(_ context.Context, v int) int { return v * 10 },
	}))
	assert.Equal(t, []int{10, 20}, out)
}

func TestFinally_StopsSendingAfterCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := make(chan fn.Result[int])
	out := Finally(ctx, input, Handlers[int, int]{
		OnSuccess: func(_ context.Context, v int) int { return v },
	})
	for i := range 3 {
		input <- fn.Success(i)
	}
	close(input)

	assert.LessOrEqual(t, len(FromChanMany(context.Background(), out)), 1)
}

func TestCollect(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bad, worse := errors.New("bad"), errors.New("worse")

	got, err := Collect(ctx, ToChanMany(ctx, []fn.Result[int]{
		fn.Success(1),
		fn.Fail[int](errors.Join(bad, worse)),
		fn.Success(2),
		fn.Cancel[int](context.Canceled),
	}))
	assert.Equal(t, []int{1, 2}, got)
	require.Error(t, err)
	assert.Len(t, fn.Errors(err), 3)
	assert.ErrorIs(t, err, bad)
	assert.ErrorIs(t, err, worse)
	assert.ErrorIs(t, err, context.Canceled)

	got, err = Collect(ctx, ToChanMany(ctx, []fn.Result[string]{fn.Success("a")}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

func TestCollect_RunResults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("boom")
	f := func(x int) (int, error) {
		if x < 0 {
			return 0, boom
		}
		return x * 2, nil
	}

	got, err := Collect(ctx, Run(ctx, ToChanMany(ctx, []int{1, -1, 2}), f, 2))
	sort.Ints(got)
	assert.Equal(t, []int{2, 4}, got)
	assert.Equal(t, []error{boom}, fn.Errors(err))
}

func TestCollect_StopsOnDone(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Collect(ctx, make(chan fn.Result[int]))
	assert.Empty(t, got)
	assert.ErrorIs(t, err, context.Canceled)
}
