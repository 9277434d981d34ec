// Package dispatch defers control presses by a fixed number of frames.
//
// A press that arrives from the overlay may also dismiss the overlay in the
// same frame. The Queue holds at most one pending id and releases it only
// after a tick countdown driven by the host loop, and the Runner re-checks a
// guard right before the press reaches the registry.
package dispatch

import (
	"sync"

	"github.com/hashicorp/go-hclog"
)

// DefaultTicks is the countdown used when none is configured.
const DefaultTicks = 2

// Queue is a single-slot countdown queue. The last Enqueue wins.
type Queue struct {
	mu        sync.Mutex
	id        string
	remaining int
	ticks     int
	logger    hclog.Logger
}

// NewQueue creates an empty queue with the given countdown. Values below
// one are clamped to one.
func NewQueue(ticks int, logger hclog.Logger) *Queue {
	if ticks < 1 {
		ticks = 1
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Queue{ticks: ticks, logger: logger}
}

// Ticks returns the configured countdown.
func (q *Queue) Ticks() int {
	return q.ticks
}

// Enqueue makes id the pending entry and restarts the countdown.
// It returns false for an empty id.
func (q *Queue) Enqueue(id string) bool {
	if id == "" {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.id != "" && q.id != id {
		q.logger.Debug("pending dispatch replaced", "previous", q.id, "id", id)
	}
	q.id = id
	q.remaining = q.ticks
	return true
}

// Update advances the countdown by one tick. It returns the pending id on
// the tick the countdown reaches zero, after which the queue is empty.
func (q *Queue) Update() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.id == "" {
		return "", false
	}
	q.remaining--
	if q.remaining > 0 {
		return "", false
	}
	id := q.id
	q.id = ""
	q.remaining = 0
	return id, true
}

// Cancel drops the pending id. It returns false if nothing was pending.
func (q *Queue) Cancel() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.id == "" {
		return false
	}
	q.logger.Debug("pending dispatch cancelled", "id", q.id)
	q.id = ""
	q.remaining = 0
	return true
}

// Reset empties the queue.
func (q *Queue) Reset() {
	q.mu.Lock()
	q.id = ""
	q.remaining = 0
	q.mu.Unlock()
}

// Pending returns the pending id and its remaining ticks.
func (q *Queue) Pending() (string, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.id == "" {
		return "", 0, false
	}
	return q.id, q.remaining, true
}
