package todo

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Runtime schedules work for the Board. All continuations it delivers run on
// one logical thread, so Board state needs no locking.
type Runtime interface {
	// Go runs call off the loop and delivers its result to done on the loop.
	Go(op string, call func(ctx context.Context) error, done func(err error))
	// After runs fn on the loop once d has elapsed.
	After(d time.Duration, fn func()) Timer
	// Every runs fn on the loop each time d elapses until stopped.
	Every(d time.Duration, fn func()) Timer
}

// Timer is a cancellable scheduled action.
type Timer interface {
	Stop()
}

// EventLoop is the production Runtime. Continuations are handed to post when
// one is configured (the TUI forwards them into its program); otherwise they
// queue until Run drains them.
type EventLoop struct {
	post    func(func())
	timeout time.Duration
	events  chan func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEventLoop creates a loop whose service calls are bounded by timeout
// (zero means unbounded).
func NewEventLoop(timeout time.Duration, post func(func())) *EventLoop {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLoop{
		post:    post,
		timeout: timeout,
		events:  make(chan func(), 64),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Post schedules fn on the loop.
func (l *EventLoop) Post(fn func()) {
	if l.post != nil {
		l.post(fn)
		return
	}
	select {
	case l.events <- fn:
	case <-l.ctx.Done():
	}
}

// Run executes queued continuations until ctx is done or the loop is closed.
func (l *EventLoop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-l.events:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		case <-l.ctx.Done():
			return nil
		}
	}
}

// Close cancels in-flight calls and waits for their goroutines to return.
func (l *EventLoop) Close() {
	l.cancel()
	l.wg.Wait()
}

func (l *EventLoop) Go(op string, call func(ctx context.Context) error, done func(err error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx := l.ctx
		if l.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, l.timeout)
			defer cancel()
		}
		err := call(ctx)
		if done != nil {
			l.Post(func() { done(err) })
		}
	}()
}

func (l *EventLoop) After(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if !t.stopped.Load() {
				fn()
			}
		})
	})
	return t
}

func (l *EventLoop) Every(d time.Duration, fn func()) Timer {
	t := &loopTimer{quit: make(chan struct{})}
	ticker := time.NewTicker(d)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Post(func() {
					if !t.stopped.Load() {
						fn()
					}
				})
			case <-t.quit:
				return
			case <-l.ctx.Done():
				return
			}
		}
	}()
	return t
}

// loopTimer drops deliveries that were already posted when Stop ran.
type loopTimer struct {
	stopped atomic.Bool
	timer   *time.Timer
	quit    chan struct{}
}

func (t *loopTimer) Stop() {
	if t.stopped.Swap(true) {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	if t.quit != nil {
		close(t.quit)
	}
}
