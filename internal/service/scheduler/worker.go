package scheduler

import (
	"context"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
	"github.com/arminghobadi/alarm-scheduler/internal/logger"
)

// runWorker is the single consumer of the queue. It moves between three
// states: idle while the queue is empty, waiting on the head item's expiry,
// and firing once that expiry elapses. An insert with a nearer deadline
// preempts the wait; the held item goes back into the queue and the worker
// re-evaluates against the new head.
func (s *Service) runWorker(ctx context.Context) {
	ctx = logger.WithName(ctx, "worker")

	for {
		held, ok := s.queue.Acquire()
		if !ok {
			// Idle: block until an insert signals or we shut down.
			select {
			case <-ctx.Done():
				return
			case <-s.queue.Wake():
				continue
			}
		}

		now := s.clock.Now()
		if !held.AbsoluteExpiry.After(now) {
			s.fire(ctx, held)

			continue
		}

		timer := s.clock.NewTimer(held.AbsoluteExpiry.Sub(now))

	waiting:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()

				return
			case <-timer.C():
				s.fire(ctx, held)

				break waiting
			case <-s.queue.Wake():
				if !s.queue.Preempted(held.AbsoluteExpiry) {
					// Redundant wake; the held item is still the
					// nearest deadline.
					continue
				}

				// A nearer request was inserted. The held item is
				// not yet due, so it goes back in line.
				timer.Stop()
				s.queue.Insert(held)

				logger.DebugKV(ctx, "wait preempted, request requeued",
					"kind", held.Kind.String(),
					"identifier", held.Identifier(),
					"expiry", held.AbsoluteExpiry)

				break waiting
			}
		}
	}
}

// fire acts on a due request and discards it. Only Schedule requests emit
// the fire event line; control requests are logged and dropped.
func (s *Service) fire(ctx context.Context, r *alarm.Request) {
	if r.Kind == alarm.KindSchedule {
		s.events.fired(r)
	}

	logger.InfoKV(ctx, "request fired",
		"kind", r.Kind.String(),
		"identifier", r.Identifier(),
		"delay_seconds", r.DelaySeconds)
}
