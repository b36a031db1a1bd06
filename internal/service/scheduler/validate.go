package scheduler

import (
	"fmt"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

// validate applies the per-kind acceptance rules against the queue's current
// contents. It returns nil when the request may be inserted, or the reason
// for rejection. It never mutates anything.
//
// Every rule is a full scan over the snapshot: "exactly one entry satisfies
// P" and "no entry satisfies Q" predicates.
func validate(snapshot []*alarm.Request, r *alarm.Request) error {
	switch r.Kind {
	case alarm.KindSchedule:
		// Structurally valid Schedule requests are always accepted;
		// a duplicate message number replaces the queued entry.
		return nil
	case alarm.KindCreateThread:
		return validateTypeTargeted(snapshot, r, alarm.KindCreateThread)
	case alarm.KindCancel:
		return validateCancel(snapshot, r)
	case alarm.KindPause:
		return validateTypeTargeted(snapshot, r, alarm.KindPause)
	case alarm.KindResume:
		return validateResume(snapshot, r)
	default:
		return fmt.Errorf("unknown request kind %d", r.Kind)
	}
}

// validateTypeTargeted covers Create_Thread and Pause_Thread: exactly one
// Schedule entry must carry the message type, and no earlier request of the
// same kind may already target it.
func validateTypeTargeted(snapshot []*alarm.Request, r *alarm.Request, kind alarm.Kind) error {
	n := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == alarm.KindSchedule && e.MessageType == r.MessageType
	})
	if n != 1 {
		return scheduleCountError("message type", r.MessageType, n)
	}

	dup := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == kind && e.MessageType == r.MessageType
	})
	if dup > 0 {
		return fmt.Errorf("a %s request for message type %d is already queued", kind, r.MessageType)
	}

	return nil
}

// validateCancel requires exactly one Schedule entry with the message number
// and no queued Cancel already targeting it.
func validateCancel(snapshot []*alarm.Request, r *alarm.Request) error {
	n := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == alarm.KindSchedule && e.MessageNumber == r.MessageNumber
	})
	if n != 1 {
		return scheduleCountError("message number", r.MessageNumber, n)
	}

	dup := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == alarm.KindCancel && e.MessageNumber == r.MessageNumber
	})
	if dup > 0 {
		return fmt.Errorf("a %s request for message number %d is already queued", alarm.KindCancel, r.MessageNumber)
	}

	return nil
}

// validateResume requires exactly one Pause entry with the message type and
// no queued Resume already targeting it.
func validateResume(snapshot []*alarm.Request, r *alarm.Request) error {
	n := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == alarm.KindPause && e.MessageType == r.MessageType
	})

	switch {
	case n == 0:
		return fmt.Errorf("no queued %s request with message type %d", alarm.KindPause, r.MessageType)
	case n > 1:
		return fmt.Errorf("%d queued %s requests with message type %d, expected exactly one",
			n, alarm.KindPause, r.MessageType)
	}

	dup := countWhere(snapshot, func(e *alarm.Request) bool {
		return e.Kind == alarm.KindResume && e.MessageType == r.MessageType
	})
	if dup > 0 {
		return fmt.Errorf("a %s request for message type %d is already queued", alarm.KindResume, r.MessageType)
	}

	return nil
}

func scheduleCountError(idKind string, id, n int) error {
	if n == 0 {
		return fmt.Errorf("no queued %s request with %s %d", alarm.KindSchedule, idKind, id)
	}

	return fmt.Errorf("%d queued %s requests with %s %d, expected exactly one",
		n, alarm.KindSchedule, idKind, id)
}

func countWhere(snapshot []*alarm.Request, pred func(*alarm.Request) bool) int {
	n := 0

	for _, e := range snapshot {
		if pred(e) {
			n++
		}
	}

	return n
}
