// Package loop runs a single-goroutine reactive event loop and provides
// timers whose callbacks execute on it. The player is confined to a loop
// goroutine: the host posts every call onto the loop, and the loop's
// timers drive the player's ticks, so no player state ever crosses a
// goroutine boundary.
package loop

import (
	"context"
	"sync"
	"time"
)

// Loop executes posted functions one at a time on its Run goroutine.
type Loop struct {
	funcs chan func()
}

// New creates a loop. Run must be called for posted functions to execute.
func New() *Loop {
	return &Loop{funcs: make(chan func(), 64)}
}

// Run processes posted functions until ctx is cancelled. It must be
// called from exactly one goroutine.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.funcs:
			fn()
		}
	}
}

// Post queues fn for execution on the loop goroutine. It blocks only
// when the queue is full.
func (l *Loop) Post(fn func()) {
	l.funcs <- fn
}

// Do posts fn and waits for it to finish. Calling Do from the loop
// goroutine itself would deadlock; it is for outside callers.
func (l *Loop) Do(fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		fn()
		close(done)
	})
	<-done
}

// NewTimer returns an idle timer bound to this loop. Its callback always
// runs on the loop goroutine.
func (l *Loop) NewTimer() *Timer {
	return &Timer{loop: l}
}

// Timer fires a callback at a fixed interval on its loop's goroutine.
// It implements the player's Timer capability.
type Timer struct {
	loop *Loop

	mu   sync.Mutex
	gen  int // bumped on every Start/Stop; stale posted ticks check it
	stop chan struct{}
}

// Start schedules fn at the given interval, replacing any previous
// schedule. A wall-clock ticker runs on its own goroutine, but fn is
// always posted to and executed on the loop goroutine.
func (t *Timer) Start(interval time.Duration, fn func(now time.Time)) {
	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.stop != nil {
		close(t.stop)
	}
	t.stop = make(chan struct{})
	stop := t.stop
	t.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				t.loop.Post(func() {
					// A tick posted before Stop may arrive after it;
					// the generation check drops it, so no callback
					// runs after Stop as seen from the loop goroutine.
					t.mu.Lock()
					live := gen == t.gen
					t.mu.Unlock()
					if live {
						fn(now)
					}
				})
			}
		}
	}()
}

// Stop cancels the schedule. Safe to call from the loop goroutine and
// from timer callbacks; stopping an idle timer is a no-op.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.gen++
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.mu.Unlock()
}
