package loop

import (
	"sort"
	"sync"
	"time"
)

// Virtual is a Scheduler driven by a manual clock. Nothing runs until the
// caller advances time or drains posted tasks, which makes timer behaviour
// deterministic in tests.
type Virtual struct {
	mu     sync.Mutex
	cond   *sync.Cond
	now    time.Duration
	next   Handle
	timers []virtualTimer
	posted []func()
}

type virtualTimer struct {
	handle Handle
	at     time.Duration
	fn     func()
}

// NewVirtual returns a Virtual scheduler at time zero.
func NewVirtual() *Virtual {
	v := &Virtual{}
	v.cond = sync.NewCond(&v.mu)
	return v
}

// Now returns the virtual time elapsed since creation.
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Pending returns the number of scheduled tasks that have not run.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Schedule implements Scheduler.
func (v *Virtual) Schedule(delay time.Duration, fn func()) Handle {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.next++
	v.timers = append(v.timers, virtualTimer{handle: v.next, at: v.now + delay, fn: fn})
	// Stable so equal deadlines fire in scheduling order.
	sort.SliceStable(v.timers, func(i, j int) bool {
		return v.timers[i].at < v.timers[j].at
	})
	return v.next
}

// Cancel implements Scheduler.
func (v *Virtual) Cancel(h Handle) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, t := range v.timers {
		if t.handle == h {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return
		}
	}
}

// Post implements Scheduler.
func (v *Virtual) Post(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.posted = append(v.posted, fn)
	v.cond.Broadcast()
}

// Advance moves the clock forward by d, running every task that comes due
// in deadline order along with anything they post.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now + d
	v.mu.Unlock()

	for {
		v.mu.Lock()
		if len(v.timers) == 0 || v.timers[0].at > target {
			v.now = target
			v.mu.Unlock()
			break
		}
		t := v.timers[0]
		v.timers = v.timers[1:]
		v.now = t.at
		v.mu.Unlock()

		t.fn()
		v.Drain()
	}
	v.Drain()
}

// Drain runs posted tasks until none are left and returns how many ran.
func (v *Virtual) Drain() int {
	n := 0
	for {
		v.mu.Lock()
		if len(v.posted) == 0 {
			v.mu.Unlock()
			return n
		}
		fn := v.posted[0]
		v.posted = v.posted[1:]
		v.mu.Unlock()

		fn()
		n++
	}
}

// WaitPost blocks until at least one task has been posted or timeout
// elapses, and reports whether a task is waiting. Use it to wait for work
// finishing on another goroutine before calling Drain.
func (v *Virtual) WaitPost(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.cond.Broadcast()
	})
	defer timer.Stop()

	v.mu.Lock()
	defer v.mu.Unlock()
	for len(v.posted) == 0 && time.Now().Before(deadline) {
		v.cond.Wait()
	}
	return len(v.posted) > 0
}
