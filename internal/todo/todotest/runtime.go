package todotest

import (
	"context"
	"time"

	"todolists/internal/todo"
)

// ManualRuntime is a deterministic todo.Runtime. Service calls run inline
// unless Hold is set, in which case they queue until Flush. Timers only fire
// from Advance.
type ManualRuntime struct {
	// Hold queues service calls instead of running them immediately.
	Hold bool

	now     time.Duration
	pending []pendingCall
	timers  []*manualTimer
	ops     []string
}

type pendingCall struct {
	call func(ctx context.Context) error
	done func(err error)
}

type manualTimer struct {
	at      time.Duration
	every   time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() { t.stopped = true }

// Go implements todo.Runtime.
func (r *ManualRuntime) Go(op string, call func(ctx context.Context) error, done func(err error)) {
	r.ops = append(r.ops, op)
	c := pendingCall{call: call, done: done}
	if r.Hold {
		r.pending = append(r.pending, c)
		return
	}
	r.run(c)
}

// After implements todo.Runtime.
func (r *ManualRuntime) After(d time.Duration, fn func()) todo.Timer {
	t := &manualTimer{at: r.now + d, fn: fn}
	r.timers = append(r.timers, t)
	return t
}

// Every implements todo.Runtime.
func (r *ManualRuntime) Every(d time.Duration, fn func()) todo.Timer {
	t := &manualTimer{at: r.now + d, every: d, fn: fn}
	r.timers = append(r.timers, t)
	return t
}

// Flush runs every queued service call and its continuation in order.
func (r *ManualRuntime) Flush() {
	for len(r.pending) > 0 {
		c := r.pending[0]
		r.pending = r.pending[1:]
		r.run(c)
	}
}

// Pending reports how many service calls are queued.
func (r *ManualRuntime) Pending() int { return len(r.pending) }

// Ops returns the operation names passed to Go, in order.
func (r *ManualRuntime) Ops() []string { return append([]string(nil), r.ops...) }

// Timers reports how many timers are still scheduled.
func (r *ManualRuntime) Timers() int {
	n := 0
	for _, t := range r.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due timers in time order.
func (r *ManualRuntime) Advance(d time.Duration) {
	target := r.now + d
	for {
		next := r.nextDue(target)
		if next == nil {
			break
		}
		r.now = next.at
		if next.every > 0 {
			next.at += next.every
		} else {
			next.stopped = true
		}
		next.fn()
	}
	r.now = target

	live := r.timers[:0]
	for _, t := range r.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	r.timers = live
}

func (r *ManualRuntime) nextDue(target time.Duration) *manualTimer {
	var next *manualTimer
	for _, t := range r.timers {
		if t.stopped || t.at > target {
			continue
		}
		if next == nil || t.at < next.at {
			next = t
		}
	}
	return next
}

func (r *ManualRuntime) run(c pendingCall) {
	err := c.call(context.Background())
	if c.done != nil {
		c.done(err)
	}
}
