package engine

import (
	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/physics"
)

// MutationQueue buffers structural changes requested during a physics step
// Written by ContactListener (inside Step), drained by Reconciler (outside Step)
type MutationQueue struct {
	creates int

	// Removal set: membership map plus insertion order for deterministic draining
	marked   map[physics.BodyID]event.Cause
	removals []*physics.Body
}

// NewMutationQueue creates an empty queue
func NewMutationQueue() *MutationQueue {
	return &MutationQueue{
		marked: make(map[physics.BodyID]event.Cause),
	}
}

// AddCreate adds n creation credits, n <= 0 is ignored
func (q *MutationQueue) AddCreate(n int) {
	if n > 0 {
		q.creates += n
	}
}

// TakeCreate consumes one creation credit if any
func (q *MutationQueue) TakeCreate() bool {
	if q.creates == 0 {
		return false
	}
	q.creates--
	return true
}

// PendingCreates returns the outstanding creation credits
func (q *MutationQueue) PendingCreates() int {
	return q.creates
}

// MarkRemove queues the body for destruction
// Returns false when the body is already queued; repeated contacts are harmless
func (q *MutationQueue) MarkRemove(b *physics.Body, cause event.Cause) bool {
	if _, ok := q.marked[b.ID]; ok {
		return false
	}
	q.marked[b.ID] = cause
	q.removals = append(q.removals, b)
	return true
}

// IsMarked reports whether the body is queued for destruction
func (q *MutationQueue) IsMarked(id physics.BodyID) bool {
	_, ok := q.marked[id]
	return ok
}

// Cause returns why the body was queued
func (q *MutationQueue) Cause(id physics.BodyID) event.Cause {
	return q.marked[id]
}

// PendingRemovals returns the number of queued bodies
func (q *MutationQueue) PendingRemovals() int {
	return len(q.removals)
}

// Removals returns a copy of the queued bodies in insertion order
func (q *MutationQueue) Removals() []*physics.Body {
	out := make([]*physics.Body, len(q.removals))
	copy(out, q.removals)
	return out
}

// Unmark drops a single body from the removal set
func (q *MutationQueue) Unmark(id physics.BodyID) {
	if _, ok := q.marked[id]; !ok {
		return
	}
	delete(q.marked, id)
	for i, b := range q.removals {
		if b.ID == id {
			q.removals = append(q.removals[:i], q.removals[i+1:]...)
			return
		}
	}
}

// Reset drops all credits and queued removals
func (q *MutationQueue) Reset() {
	q.creates = 0
	clear(q.marked)
	q.removals = q.removals[:0]
}
