package scheduler

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/arminghobadi/alarm-scheduler/internal/domain/alarm"
)

// eventTimeFormat renders the wall-clock insertion time in event lines.
const eventTimeFormat = time.DateTime

// eventWriter serialises the output event lines. The dispatcher and worker
// both write through it, so it carries its own mutex.
type eventWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newEventWriter(w io.Writer) *eventWriter {
	if w == nil {
		w = io.Discard
	}

	return &eventWriter{w: w}
}

func (e *eventWriter) printf(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = fmt.Fprintf(e.w, format, args...)
}

// prompt writes the interactive prompt without a trailing newline.
func (e *eventWriter) prompt(p string) {
	if p == "" {
		return
	}

	e.printf("%s", p)
}

// inserted announces an accepted request: kind, identifier and wall-clock
// insertion time.
func (e *eventWriter) inserted(r *alarm.Request, replaced bool, now time.Time) {
	form := "%s request with %s %d inserted into alarm list at %s\n"
	if replaced {
		form = "%s replacement request with %s %d inserted into alarm list at %s\n"
	}

	e.printf(form, r.Kind, identifierPhrase(r.Kind), r.Identifier(), now.Format(eventTimeFormat))
}

// rejected announces a validation failure and the precondition it violated.
func (e *eventWriter) rejected(r *alarm.Request, reason error) {
	e.printf("%s request with %s %d rejected: %v\n",
		r.Kind, identifierPhrase(r.Kind), r.Identifier(), reason)
}

// badCommand announces a line that failed the grammar.
func (e *eventWriter) badCommand(err error) {
	e.printf("bad command: %v\n", err)
}

// fired prints the firing line for a due Schedule request.
func (e *eventWriter) fired(r *alarm.Request) {
	e.printf("(%d) %s\n", r.DelaySeconds, r.MessageText)
}

func identifierPhrase(k alarm.Kind) string {
	if k.UsesMessageNumber() {
		return "message number"
	}

	return "message type"
}
