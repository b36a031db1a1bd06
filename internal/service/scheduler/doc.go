// Package scheduler wires the alarm queue, the request intake path and the
// single worker into a running service.
//
// Exactly two logical threads of control exist: the dispatcher, which reads
// lines, validates them against the queue's contents and inserts accepted
// requests; and the worker, which sleeps until the nearest expiry, fires it,
// or is preempted by a nearer insert and re-evaluates. They share one queue
// and coordinate through its wake channel.
package scheduler
