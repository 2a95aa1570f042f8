package loop

import (
	"context"
	"sync"
	"time"
)

const taskQueueSize = 64

// EventLoop is a Scheduler backed by a goroutine and real timers.
type EventLoop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// New returns a stopped EventLoop; call Run to start executing tasks.
func New() *EventLoop {
	return &EventLoop{
		tasks:  make(chan func(), taskQueueSize),
		done:   make(chan struct{}),
		timers: make(map[Handle]*time.Timer),
	}
}

// Run executes tasks until ctx is cancelled. Pending timers are stopped and
// later Posts are dropped.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

func (l *EventLoop) stop() {
	l.once.Do(func() {
		close(l.done)

		l.mu.Lock()
		defer l.mu.Unlock()
		for h, t := range l.timers {
			t.Stop()
			delete(l.timers, h)
		}
	})
}

// Schedule implements Scheduler.
func (l *EventLoop) Schedule(delay time.Duration, fn func()) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := l.next
	l.timers[h] = time.AfterFunc(delay, func() {
		l.Post(func() {
			// The timer may have fired just before Cancel ran on the loop.
			if l.take(h) {
				fn()
			}
		})
	})
	return h
}

// take reports whether h is still live and retires it.
func (l *EventLoop) take(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.timers[h]; !ok {
		return false
	}
	delete(l.timers, h)
	return true
}

// Cancel implements Scheduler.
func (l *EventLoop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Post implements Scheduler. It blocks while the queue is full and drops fn
// once the loop has stopped.
func (l *EventLoop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}

	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}
