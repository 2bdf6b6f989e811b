package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// Handler executes one task. A non-nil error triggers a retry.
type Handler interface {
	Handle(ctx context.Context, task domain.Task) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, task domain.Task) error

func (f HandlerFunc) Handle(ctx context.Context, task domain.Task) error { return f(ctx, task) }

const (
	defaultQueueSize  = 256
	defaultMaxRetries = 3
	retryBackoff      = 2 * time.Second
)

// Dispatcher runs tasks on a background worker inside the process. Enqueue
// never blocks the request path; when the queue is full the task is dropped
// and logged, matching the best-effort character of the work it carries.
type Dispatcher struct {
	logger  *slog.Logger
	handler Handler
	queue   chan domain.Task
	done    chan struct{}
	once    sync.Once

	// mu orders Enqueue against Stop so no send can race the queue close.
	mu     sync.Mutex
	closed bool
}

// NewDispatcher creates a Dispatcher and starts its worker.
func NewDispatcher(logger *slog.Logger, handler Handler) *Dispatcher {
	d := &Dispatcher{
		logger:  logger,
		handler: handler,
		queue:   make(chan domain.Task, defaultQueueSize),
		done:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue implements domain.TaskDispatcher. Tasks enqueued after Stop are
// dropped and logged.
func (d *Dispatcher) Enqueue(task domain.Task) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("dispatcher stopped, dropping task", "kind", task.Kind)
		return
	}
	select {
	case d.queue <- task:
	default:
		d.logger.Error("task queue full, dropping task", "kind", task.Kind)
	}
}

// Stop drains queued tasks and stops the worker. Safe to call more than once.
func (d *Dispatcher) Stop() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()
		close(d.queue)
		<-d.done
	})
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for task := range d.queue {
		d.execute(task)
	}
}

func (d *Dispatcher) execute(task domain.Task) {
	for attempt := 1; ; attempt++ {
		err := d.handler.Handle(context.Background(), task)
		if err == nil {
			return
		}
		if attempt >= defaultMaxRetries {
			d.logger.Error("task failed, giving up", "kind", task.Kind, "attempts", attempt, "err", err)
			return
		}
		d.logger.Warn("task failed, retrying", "kind", task.Kind, "attempt", attempt, "err", err)
		time.Sleep(retryBackoff)
	}
}
