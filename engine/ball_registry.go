package engine

import (
	"fmt"

	"github.com/lixenwraith/bounce/physics"
)

// Registry is the ordered set of live balls, insertion order = creation order
// Every entry exists in the World; removal always precedes world destruction
type Registry struct {
	balls []*physics.Body
	index map[physics.BodyID]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		index: make(map[physics.BodyID]struct{}),
	}
}

// Add appends a ball; panics on duplicates or non-ball bodies
func (r *Registry) Add(b *physics.Body) {
	if b.Tag != physics.TagBall {
		panic(fmt.Errorf("%w: register %s body %d", ErrRegistryDesync, b.Tag, b.ID))
	}
	if _, ok := r.index[b.ID]; ok {
		panic(fmt.Errorf("%w: ball %d registered twice", ErrRegistryDesync, b.ID))
	}
	r.index[b.ID] = struct{}{}
	r.balls = append(r.balls, b)
}

// Remove drops a ball preserving the order of the rest; panics if absent
func (r *Registry) Remove(b *physics.Body) {
	if _, ok := r.index[b.ID]; !ok {
		panic(fmt.Errorf("%w: ball %d not registered", ErrRegistryDesync, b.ID))
	}
	delete(r.index, b.ID)
	for i, e := range r.balls {
		if e.ID == b.ID {
			r.balls = append(r.balls[:i], r.balls[i+1:]...)
			break
		}
	}
}

// Contains reports membership by ID
func (r *Registry) Contains(id physics.BodyID) bool {
	_, ok := r.index[id]
	return ok
}

// Len returns the number of live balls
func (r *Registry) Len() int {
	return len(r.balls)
}

// Balls returns the live balls in creation order
// The slice is owned by the registry; callers must not modify or retain it across reconciliation
func (r *Registry) Balls() []*physics.Body {
	return r.balls
}

// Fastest returns the ball with the highest speed, nil when empty
// Ties resolve to the earliest created ball
func (r *Registry) Fastest() (*physics.Body, float64) {
	var best *physics.Body
	bestSpeed := 0.0
	for _, b := range r.balls {
		if s := b.Speed(); best == nil || s > bestSpeed {
			best, bestSpeed = b, s
		}
	}
	return best, bestSpeed
}

// Clear drops every entry without touching the World
func (r *Registry) Clear() {
	r.balls = r.balls[:0]
	clear(r.index)
}
