// Package alarm defines the request values flowing through the scheduler.
//
// A Request is built by the parser, stamped with its absolute expiry when the
// dispatcher accepts it, and owned exclusively by the queue (and later the
// worker) from then on.
package alarm

import "time"

// MaxMessageBytes is the upper bound on the message payload carried by a
// Schedule request.
const MaxMessageBytes = 127

// Kind identifies which of the five request forms a Request represents.
type Kind uint8

// The five request kinds understood by the scheduler.
const (
	KindSchedule Kind = iota + 1
	KindCreateThread
	KindCancel
	KindPause
	KindResume
)

// String returns the human-readable name of the kind, used in output events
// and diagnostics.
func (k Kind) String() string {
	switch k {
	case KindSchedule:
		return "Schedule"
	case KindCreateThread:
		return "Create_Thread"
	case KindCancel:
		return "Cancel"
	case KindPause:
		return "Pause_Thread"
	case KindResume:
		return "Resume_Thread"
	default:
		return "Unknown"
	}
}

// UsesMessageNumber reports whether the kind is identified by a message
// number (Schedule, Cancel) rather than a message type group.
func (k Kind) UsesMessageNumber() bool {
	return k == KindSchedule || k == KindCancel
}

// Request is the scheduler's unit of work. It is immutable once queued.
type Request struct {
	// Kind is the request form, one of the Kind* constants.
	Kind Kind
	// DelaySeconds is the non-negative offset from creation time.
	DelaySeconds int
	// AbsoluteExpiry is the wall-clock time the request becomes due.
	// It is the queue's sort key and is stamped by WithExpiryAt.
	AbsoluteExpiry time.Time
	// MessageType identifies a logical worker-thread group
	// (Create_Thread, Pause_Thread, Resume_Thread).
	MessageType int
	// MessageNumber identifies a specific scheduled alarm instance
	// (Schedule, Cancel).
	MessageNumber int
	// MessageText is the payload printed when a Schedule request fires.
	// At most MaxMessageBytes bytes.
	MessageText string
}

// WithExpiryAt returns a copy of the request stamped with its absolute
// expiry, computed as now plus DelaySeconds. The receiver is not modified.
func (r *Request) WithExpiryAt(now time.Time) *Request {
	stamped := *r
	stamped.AbsoluteExpiry = now.Add(time.Duration(r.DelaySeconds) * time.Second)

	return &stamped
}

// Identifier returns the identifier relevant to the kind: the message number
// for Schedule and Cancel, the message type for the thread-control kinds.
func (r *Request) Identifier() int {
	if r.Kind.UsesMessageNumber() {
		return r.MessageNumber
	}

	return r.MessageType
}

// Clone returns a copy of the request to avoid leaking internal references.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}

	cloned := *r

	return &cloned
}
