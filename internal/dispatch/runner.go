package dispatch

import (
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// Target receives deferred presses. *registry.Registry satisfies it.
type Target interface {
	Trigger(id string, programmatic bool) bool
}

// Guard reports whether a deferred press may still run.
type Guard func(id string) bool

// Stats counts runner outcomes.
type Stats struct {
	Dispatched uint64
	Succeeded  uint64
	Discarded  uint64
}

// Runner drains a Queue into a Target once per tick.
type Runner struct {
	queue  *Queue
	target Target
	guard  Guard
	logger hclog.Logger

	dispatched atomic.Uint64
	succeeded  atomic.Uint64
	discarded  atomic.Uint64
}

// NewRunner creates a runner. A nil guard always allows.
func NewRunner(queue *Queue, target Target, guard Guard) *Runner {
	return &Runner{
		queue:  queue,
		target: target,
		guard:  guard,
		logger: queue.logger,
	}
}

// Queue returns the queue the runner drains.
func (r *Runner) Queue() *Queue {
	return r.queue
}

// Tick advances the queue. When an id comes due and the guard still allows
// it, the id is triggered; ran reports whether the trigger succeeded.
func (r *Runner) Tick() (id string, ran bool) {
	id, ok := r.queue.Update()
	if !ok {
		return "", false
	}

	if r.guard != nil && !r.guard(id) {
		r.discarded.Add(1)
		r.logger.Debug("deferred dispatch discarded", "id", id)
		return id, false
	}

	r.dispatched.Add(1)
	ran = r.target.Trigger(id, false)
	if ran {
		r.succeeded.Add(1)
	}
	return id, ran
}

// Stats returns a snapshot of the counters.
func (r *Runner) Stats() Stats {
	return Stats{
		Dispatched: r.dispatched.Load(),
		Succeeded:  r.succeeded.Load(),
		Discarded:  r.discarded.Load(),
	}
}
