// Package queue implements the shared alarm queue: an expiry-ordered
// sequence of pending requests plus the wait-target bookkeeping that
// coordinates the single worker with the request intake path.
//
// All state is owned by Queue and guarded by its mutex. The worker is the
// only party that blocks on the wake channel; inserts only ever signal it.
package queue
