package workspace

import (
	"context"
	"errors"
	"fmt"
)

// ErrStopped is returned by Do once the dispatcher's Run has returned.
var ErrStopped = errors.New("dispatcher stopped")

// Dispatcher serializes access to a Workspace. Tasks are executed one at a
// time on the goroutine calling Run; a task that has started always runs to
// completion.
type Dispatcher struct {
	ws      *Workspace
	tasks   chan *task
	stopped chan struct{}
}

type task struct {
	fn   func(*Workspace)
	err  error
	done chan struct{}
}

// NewDispatcher creates a dispatcher for ws.
func NewDispatcher(ws *Workspace) *Dispatcher {
	return &Dispatcher{
		ws:      ws,
		tasks:   make(chan *task),
		stopped: make(chan struct{}),
	}
}

// Run executes submitted tasks until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.stopped)
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-d.tasks:
			d.exec(t)
		}
	}
}

func (d *Dispatcher) exec(t *task) {
	defer close(t.done)
	defer func() {
		if r := recover(); r != nil {
			d.ws.log.Error("task panicked", "panic", r)
			t.err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	t.fn(d.ws)
}

// Do runs fn on the dispatcher goroutine and waits for it to finish. It
// returns without running fn if ctx is done or the dispatcher has stopped
// before fn starts.
func (d *Dispatcher) Do(ctx context.Context, fn func(*Workspace)) error {
	t := &task{fn: fn, done: make(chan struct{})}
	select {
	case d.tasks <- t:
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrStopped
	}
	<-t.done
	return t.err
}
