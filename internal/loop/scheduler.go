// Package loop provides the single-threaded task loop the omnibox session
// runs on, with cancellable delayed tasks.
//
// All session state is mutated from tasks run by a Scheduler. Work done on
// other goroutines hands its result back with Post.
package loop

import "time"

// Handle identifies a scheduled task. The zero Handle is never issued and
// cancelling it is a no-op.
type Handle uint64

// Scheduler runs tasks one at a time.
type Scheduler interface {
	// Schedule runs fn on the loop after delay unless cancelled first.
	Schedule(delay time.Duration, fn func()) Handle
	// Cancel stops a scheduled task. Cancelling a task that already ran or
	// was already cancelled does nothing.
	Cancel(h Handle)
	// Post queues fn to run on the loop. Safe to call from any goroutine.
	Post(fn func())
}
