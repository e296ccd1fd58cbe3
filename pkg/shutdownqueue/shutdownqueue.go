// Package shutdownqueue provides a LIFO queue of named cleanup tasks.
//
// Register tasks as resources are opened, and drain them once at the end of
// main:
//
//	q := shutdownqueue.New()
//	q.Add("close db", func(ctx context.Context) error { return db.Close() })
//	...
//	err := q.Shutdown(ctx)
//
// A process-wide queue is available through the package-level Add and
// Shutdown functions. Tasks run once, in reverse order of registration.
// Panics are recovered. Shutdown is idempotent and returns an aggregated
// error via errors.Join.
package shutdownqueue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Task is a shutdown function. It should honor ctx and return an error
// if it can't finish (or ctx is canceled).
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	run  Task
}

// Queue collects tasks until Shutdown drains it.
type Queue struct {
	mu     sync.Mutex
	tasks  []namedTask
	closed bool
	logger *slog.Logger
}

// New returns an empty queue that logs through slog.Default.
func New() *Queue {
	return &Queue{tasks: make([]namedTask, 0, 8)}
}

// WithLogger sets the logger used to report each task.
func (q *Queue) WithLogger(l *slog.Logger) *Queue {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.logger = l

	return q
}

// Add registers a task to be run on Shutdown, in LIFO order.
// Safe to call from any goroutine. If t is nil or shutdown has already
// started, Add does nothing.
func (q *Queue) Add(name string, t Task) {
	if t == nil {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.tasks = append(q.tasks, namedTask{name: name, run: t})
}

// Len reports how many tasks are waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.tasks)
}

// Shutdown drains all registered tasks in LIFO order.
// It is safe to call multiple times; after the first run subsequent calls
// are no-ops.
//
// If ctx is canceled mid-drain, Shutdown stops early and returns an error
// that includes both the context error and any task errors so far.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.mu.Lock()

	if q.closed && len(q.tasks) == 0 {
		q.mu.Unlock()

		return nil
	}

	q.closed = true
	tasks := q.tasks
	q.tasks = nil
	logger := q.logger

	q.mu.Unlock()

	if logger == nil {
		logger = slog.Default()
	}

	var errs []error

	for i := len(tasks) - 1; i >= 0; i-- {
		select {
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("shutdown canceled: %w", ctx.Err()))

			return errors.Join(errs...)
		default:
		}

		err := runTask(ctx, tasks[i])
		if err != nil {
			logger.Error("shutdown task failed", "task", tasks[i].name, "error", err)
			errs = append(errs, err)

			continue
		}

		logger.Debug("shutdown task done", "task", tasks[i].name)
	}

	return errors.Join(errs...)
}

func runTask(ctx context.Context, t namedTask) (err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("panic in shutdown task %q: %v", t.name, r)
		}
	}()

	err = t.run(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", t.name, err)
	}

	return nil
}

var defaultQueue = New()

// Add registers t on the process-wide queue.
func Add(name string, t Task) {
	defaultQueue.Add(name, t)
}

// Shutdown drains the process-wide queue.
func Shutdown(ctx context.Context) error {
	return defaultQueue.Shutdown(ctx)
}
