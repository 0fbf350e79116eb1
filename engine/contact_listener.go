package engine

import (
	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

var _ box2d.B2ContactListenerInterface = (*ContactListener)(nil)

// ContactCounts tallies classified begin-contacts
type ContactCounts struct {
	Boundary uint64
	Ball     uint64
	Other    uint64
}

// ContactListener classifies begin-contacts by body tag and records intents
// Runs inside World.Step: it only touches the MutationQueue, never the World
type ContactListener struct {
	queue  *MutationQueue
	emit   Emitter
	policy config.RemovalPolicy
	rng    *vmath.FastRand

	// creditsPerContact is added per ball-boundary contact
	creditsPerContact int

	counts ContactCounts
}

// NewContactListener creates a listener writing into queue
// rng is only consulted by the random removal policy
func NewContactListener(queue *MutationQueue, policy config.RemovalPolicy, creditsPerContact int, rng *vmath.FastRand, emit Emitter) *ContactListener {
	if emit == nil {
		emit = nopEmitter{}
	}
	return &ContactListener{
		queue:             queue,
		emit:              emit,
		policy:            policy,
		rng:               rng,
		creditsPerContact: creditsPerContact,
	}
}

// BeginContact implements box2d.B2ContactListenerInterface
func (l *ContactListener) BeginContact(contact box2d.B2ContactInterface) {
	a, okA := physics.BodyOf(contact.GetFixtureA())
	b, okB := physics.BodyOf(contact.GetFixtureB())
	if !okA || !okB {
		l.counts.Other++
		return
	}
	l.Classify(a, b)
}

// Classify applies the pair rules to two touching bodies, a being the first fixture's body
func (l *ContactListener) Classify(a, b *physics.Body) {
	switch {
	case a.Tag == physics.TagBall && b.Tag.IsBoundary():
		l.boundaryHit(a, b)
	case b.Tag == physics.TagBall && a.Tag.IsBoundary():
		l.boundaryHit(b, a)
	case a.Tag == physics.TagBall && b.Tag == physics.TagBall:
		l.ballHit(a, b)
	default:
		l.counts.Other++
	}
}

func (l *ContactListener) boundaryHit(ball, boundary *physics.Body) {
	l.counts.Boundary++
	l.queue.AddCreate(l.creditsPerContact)
	l.emit.Emit(event.EventBoundaryHit, &event.ContactPayload{
		Ball:  uint64(ball.ID),
		Other: uint64(boundary.ID),
	})
}

func (l *ContactListener) ballHit(a, b *physics.Body) {
	l.counts.Ball++

	victim, survivor := a, b
	if l.policy == config.RemoveRandom && l.rng.Bool() {
		victim, survivor = b, a
	}
	l.queue.MarkRemove(victim, event.CauseBallContact)

	l.emit.Emit(event.EventBallHit, &event.ContactPayload{
		Ball:  uint64(victim.ID),
		Other: uint64(survivor.ID),
	})
}

// EndContact implements box2d.B2ContactListenerInterface
func (l *ContactListener) EndContact(box2d.B2ContactInterface) {}

// PreSolve implements box2d.B2ContactListenerInterface
func (l *ContactListener) PreSolve(box2d.B2ContactInterface, box2d.B2Manifold) {}

// PostSolve implements box2d.B2ContactListenerInterface
func (l *ContactListener) PostSolve(box2d.B2ContactInterface, *box2d.B2ContactImpulse) {}

// Counts returns the running contact tallies
func (l *ContactListener) Counts() ContactCounts {
	return l.counts
}
