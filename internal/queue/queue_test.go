package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

func schedule(number int, expiry time.Time) *alarm.Request {
	return &alarm.Request{
		Kind:           alarm.KindSchedule,
		MessageNumber:  number,
		AbsoluteExpiry: expiry,
	}
}

func expiries(rs []*alarm.Request) []time.Time {
	out := make([]time.Time, len(rs))
	for i, r := range rs {
		out[i] = r.AbsoluteExpiry
	}

	return out
}

// TestInsertKeepsExpiryOrder verifies the sort invariant over a mix of
// insert positions: head, middle, tail and equal expiries.
func TestInsertKeepsExpiryOrder(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	q.Insert(schedule(1, base.Add(10*time.Second)))
	q.Insert(schedule(2, base.Add(2*time.Second)))
	q.Insert(schedule(3, base.Add(6*time.Second)))
	q.Insert(schedule(4, base.Add(6*time.Second)))
	q.Insert(schedule(5, base.Add(20*time.Second)))

	snap := q.Snapshot()
	require.Len(t, snap, 5)

	got := expiries(snap)
	for i := 1; i < len(got); i++ {
		require.False(t, got[i].Before(got[i-1]), "queue out of order at %d", i)
	}

	// Equal expiry inserts before the existing equal entry.
	require.Equal(t, 4, snap[1].MessageNumber)
	require.Equal(t, 3, snap[2].MessageNumber)
}

// TestInsertReplacesSameMessageNumber checks that a Schedule with a queued
// message number takes over that entry's slot, leaving exactly one entry
// for the number and carrying the newer request's data.
func TestInsertReplacesSameMessageNumber(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	q.Insert(schedule(1, base.Add(2*time.Second)))
	q.Insert(schedule(7, base.Add(5*time.Second)))
	q.Insert(schedule(3, base.Add(9*time.Second)))

	replacement := schedule(7, base.Add(30*time.Second))
	replacement.MessageText = "newer"

	res := q.Insert(replacement)
	require.True(t, res.Replaced)

	snap := q.Snapshot()
	require.Len(t, snap, 3)

	// Same slot, second position, despite the later expiry.
	require.Equal(t, 7, snap[1].MessageNumber)
	require.Equal(t, "newer", snap[1].MessageText)
	require.Equal(t, base.Add(30*time.Second), snap[1].AbsoluteExpiry)

	count := 0
	for _, r := range snap {
		if r.MessageNumber == 7 {
			count++
		}
	}
	require.Equal(t, 1, count)
}

// TestReplacementDoesNotMatchControlEntries ensures only Schedule entries
// participate in the replacement rule.
func TestReplacementDoesNotMatchControlEntries(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	cancel := &alarm.Request{
		Kind:           alarm.KindCancel,
		MessageNumber:  7,
		AbsoluteExpiry: base,
	}
	q.Insert(cancel)

	res := q.Insert(schedule(7, base.Add(time.Second)))
	require.False(t, res.Replaced)
	require.Equal(t, 2, q.Len())
}

// TestInsertWakeDecision covers the three signalling cases: idle worker,
// earlier deadline, and a later deadline that must not wake.
func TestInsertWakeDecision(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	// Idle: insert always signals.
	res := q.Insert(schedule(1, base.Add(10*time.Second)))
	require.True(t, res.Signaled)
	<-q.Wake()

	// Worker commits to the head.
	r, ok := q.Acquire()
	require.True(t, ok)
	require.Equal(t, 1, r.MessageNumber)

	target, active := q.WaitTarget()
	require.True(t, active)
	require.Equal(t, base.Add(10*time.Second), target)

	// Later deadline: no wake, target unchanged.
	res = q.Insert(schedule(2, base.Add(20*time.Second)))
	require.False(t, res.Signaled)
	require.False(t, q.Preempted(r.AbsoluteExpiry))

	// Earlier deadline: wake and retarget.
	res = q.Insert(schedule(3, base.Add(2*time.Second)))
	require.True(t, res.Signaled)
	require.True(t, q.Preempted(r.AbsoluteExpiry))

	target, active = q.WaitTarget()
	require.True(t, active)
	require.Equal(t, base.Add(2*time.Second), target)
}

// TestInsertSignalIsNotDuplicated verifies at most one pending wake exists
// no matter how many earlier inserts arrive.
func TestInsertSignalIsNotDuplicated(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	require.True(t, q.Insert(schedule(1, base.Add(30*time.Second))).Signaled)
	require.False(t, q.Insert(schedule(2, base.Add(20*time.Second))).Signaled)
	require.False(t, q.Insert(schedule(3, base.Add(10*time.Second))).Signaled)

	<-q.Wake()
	select {
	case <-q.Wake():
		t.Fatal("second pending wake; inserts must coalesce signals")
	default:
	}
}

// TestAcquireEmptyMarksIdle checks the empty queue transitions the worker
// to idle so the next insert signals it.
func TestAcquireEmptyMarksIdle(t *testing.T) {
	t.Parallel()

	q := New()

	_, ok := q.Acquire()
	require.False(t, ok)

	_, active := q.WaitTarget()
	require.False(t, active)

	res := q.Insert(schedule(1, time.Unix(2000, 0)))
	require.True(t, res.Signaled)
}

// TestAcquirePopsEarliest verifies the head is always the next item due.
func TestAcquirePopsEarliest(t *testing.T) {
	t.Parallel()

	base := time.Unix(1000, 0)
	q := New()

	q.Insert(schedule(1, base.Add(9*time.Second)))
	q.Insert(schedule(2, base.Add(3*time.Second)))
	q.Insert(schedule(3, base.Add(6*time.Second)))

	var order []int
	for {
		r, ok := q.Acquire()
		if !ok {
			break
		}
		order = append(order, r.MessageNumber)
	}

	require.Equal(t, []int{2, 3, 1}, order)
}

// TestSnapshotIsDetached ensures mutations of a snapshot never reach the
// queue's own entries.
func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	q := New()
	r := schedule(1, time.Unix(1000, 0))
	r.MessageText = "original"
	q.Insert(r)

	snap := q.Snapshot()
	snap[0].MessageText = "mutated"

	again := q.Snapshot()
	require.Equal(t, "original", again[0].MessageText)
}
