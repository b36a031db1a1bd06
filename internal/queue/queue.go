package queue

import (
	"sync"
	"time"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

// Queue is the shared ordered collection of pending requests. Entries are
// kept ascending by absolute expiry, with one exception: a Schedule request
// replacing an earlier one with the same message number keeps the replaced
// entry's slot until ordinary insert/removal traffic restores full order.
type Queue struct {
	mu sync.Mutex

	// items is the pending sequence, head first.
	items []*alarm.Request

	// waitActive reports whether the worker is committed to a deadline.
	// False means idle: the queue was empty, or the worker has not yet
	// picked its next target.
	waitActive bool
	// waitTarget is the expiry the worker is currently sleeping until.
	// Meaningful only while waitActive is true.
	waitTarget time.Time

	// wake carries at most one pending signal to the worker. Sends never
	// block, so an insert causes at most one redundant wake.
	wake chan struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

// InsertResult describes what Insert did.
type InsertResult struct {
	// Replaced is true when the request took over an existing Schedule
	// entry with the same message number instead of being inserted.
	Replaced bool
	// Signaled is true when the worker was woken to re-evaluate its
	// deadline.
	Signaled bool
}

// Insert adds the request to the queue and decides whether to wake the
// worker. A Schedule request whose message number matches a queued Schedule
// entry replaces that entry in place; every other request is inserted before
// the first entry with an expiry at or after its own, or appended at the
// tail.
func (q *Queue) Insert(r *alarm.Request) InsertResult {
	q.mu.Lock()
	defer q.mu.Unlock()

	var result InsertResult

	if r.Kind == alarm.KindSchedule {
		for i, cur := range q.items {
			if cur.Kind == alarm.KindSchedule && cur.MessageNumber == r.MessageNumber {
				q.items[i] = r
				result.Replaced = true

				break
			}
		}
	}

	if !result.Replaced {
		pos := len(q.items)

		for i, cur := range q.items {
			if !cur.AbsoluteExpiry.Before(r.AbsoluteExpiry) {
				pos = i

				break
			}
		}

		q.items = append(q.items, nil)
		copy(q.items[pos+1:], q.items[pos:])
		q.items[pos] = r
	}

	// Wake the worker if it is idle or the new request comes before the
	// deadline it is sleeping until.
	if !q.waitActive || r.AbsoluteExpiry.Before(q.waitTarget) {
		q.waitActive = true
		q.waitTarget = r.AbsoluteExpiry

		select {
		case q.wake <- struct{}{}:
			result.Signaled = true
		default:
			// A signal is already pending; one wake is enough.
		}
	}

	return result
}

// Acquire pops the head of the queue and commits the worker to its expiry as
// the current wait target. When the queue is empty it records the worker as
// idle and returns false; the worker then blocks on Wake.
func (q *Queue) Acquire() (*alarm.Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		q.waitActive = false

		return nil, false
	}

	head := q.items[0]
	q.items = q.items[1:]

	q.waitActive = true
	q.waitTarget = head.AbsoluteExpiry

	return head, true
}

// Wake returns the channel the worker blocks on while idle or waiting.
func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

// Preempted reports whether the wait target no longer matches the expiry the
// worker committed to in Acquire, meaning an insert claimed an earlier
// deadline and the held request must be put back.
func (q *Queue) Preempted(expiry time.Time) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return !q.waitActive || !q.waitTarget.Equal(expiry)
}

// WaitTarget returns the worker's current wait target, if any.
func (q *Queue) WaitTarget() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.waitTarget, q.waitActive
}

// Len returns the number of queued requests.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Snapshot returns a copy of the queued requests in queue order. Validation
// predicates run over snapshots so they never mutate or hold the queue.
func (q *Queue) Snapshot() []*alarm.Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	snap := make([]*alarm.Request, len(q.items))
	for i, r := range q.items {
		snap[i] = r.Clone()
	}

	return snap
}
