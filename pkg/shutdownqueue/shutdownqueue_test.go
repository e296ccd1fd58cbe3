package shutdownqueue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fastprodman/vendingmachine/internal/infra/logging"
)

func newQueue() *Queue {
	return New().WithLogger(logging.Discard())
}

func TestAddNilTaskIsNoop(t *testing.T) {
	t.Parallel()

	q := newQueue()
	q.Add("nil", nil)

	if q.Len() != 0 {
		t.Fatalf("expected empty queue, got %d", q.Len())
	}

	err := q.Shutdown(t.Context())
	if err != nil {
		t.Fatalf("expected nil after adding nil task; got %v", err)
	}
}

func TestLIFOOrder(t *testing.T) {
	t.Parallel()

	q := newQueue()

	var (
		orderMu sync.Mutex
		order   []int
	)

	makeTask := func(n int) Task {
		return func(ctx context.Context) error {
			orderMu.Lock()
			order = append(order, n)
			orderMu.Unlock()

			return nil
		}
	}

	for i := 1; i <= 3; i++ {
		q.Add("task", makeTask(i))
	}

	err := q.Shutdown(t.Context())
	if err != nil {
		t.Fatalf("Shutdown error: %v", err)
	}

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("order len mismatch: got %v, want %v", order, want)
	}

	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v, want %v", i, order, want)
		}
	}
}

func TestPanicRecoveryIncludedAndContinues(t *testing.T) {
	t.Parallel()

	q := newQueue()

	var ranAfterPanic atomic.Bool

	q.Add("after", func(ctx context.Context) error {
		ranAfterPanic.Store(true)
		return nil
	})
	q.Add("close db", func(ctx context.Context) error { panic("boom") })

	shErr := q.Shutdown(t.Context())
	if shErr == nil {
		t.Fatalf("expected aggregated error with panic; got nil")
	}

	if !strings.Contains(shErr.Error(), `panic in shutdown task "close db": boom`) {
		t.Fatalf("expected panic message in error; got: %q", shErr.Error())
	}

	if !ranAfterPanic.Load() {
		t.Fatalf("expected tasks registered before the panicking one to still run")
	}
}

func TestAggregatedErrorsAndEarlyCancel(t *testing.T) {
	t.Parallel()

	q := newQueue()
	errA := errors.New("taskA")

	var ranB atomic.Bool

	gateReady := make(chan struct{})

	q.Add("a", func(ctx context.Context) error { return errA })
	q.Add("b", func(ctx context.Context) error {
		ranB.Store(true)
		return nil
	})
	q.Add("gate", func(ctx context.Context) error {
		close(gateReady)
		<-ctx.Done()

		return nil
	})

	ctx, cancel := context.WithCancel(t.Context())
	errCh := make(chan error, 1)

	go func() {
		errCh <- q.Shutdown(ctx)
	}()

	<-gateReady
	cancel()

	shErr := <-errCh
	if !errors.Is(shErr, context.Canceled) {
		t.Fatalf("expected errors.Is(err, context.Canceled); got: %v", shErr)
	}

	if ranB.Load() {
		t.Fatalf("expected task b not to run after cancel")
	}

	if errors.Is(shErr, errA) {
		t.Fatalf("did not expect joined error to include taskA")
	}
}

func TestIdempotentAndRunsOnce(t *testing.T) {
	t.Parallel()

	q := newQueue()

	var count atomic.Int32

	q.Add("count", func(ctx context.Context) error {
		count.Add(1)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := range 2 {
		err := q.Shutdown(ctx)
		if err != nil {
			t.Fatalf("Shutdown #%d error: %v", i+1, err)
		}
	}

	if got := count.Load(); got != 1 {
		t.Fatalf("expected count=1; got %d", got)
	}
}

func TestAddAfterShutdownStartedIsIgnored(t *testing.T) {
	t.Parallel()

	q := newQueue()
	started := make(chan struct{})
	unblock := make(chan struct{})

	q.Add("noop", func(ctx context.Context) error { return nil })
	q.Add("blocker", func(ctx context.Context) error {
		close(started)
		<-unblock

		return nil
	})

	done := make(chan struct{})

	go func() {
		_ = q.Shutdown(context.Background())

		close(done)
	}()

	<-started

	var ran atomic.Bool

	q.Add("late", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	close(unblock)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Shutdown did not finish")
	}

	if ran.Load() {
		t.Fatalf("task added after shutdown should not run")
	}
}

func TestTaskErrorsAreJoinedWithNames(t *testing.T) {
	t.Parallel()

	q := newQueue()
	err1 := errors.New("alpha")
	err2 := errors.New("beta")

	q.Add("first", func(ctx context.Context) error { return err1 })
	q.Add("second", func(ctx context.Context) error { return err2 })

	shErr := q.Shutdown(t.Context())
	if !errors.Is(shErr, err1) || !errors.Is(shErr, err2) {
		t.Fatalf("expected joined error to contain both; got: %v", shErr)
	}

	s := shErr.Error()
	if !strings.Contains(s, "first: alpha") || !strings.Contains(s, "second: beta") {
		t.Fatalf("expected task names in error; got: %q", s)
	}
}
