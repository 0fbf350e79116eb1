package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// LifecycleStats counts ball lifecycle outcomes since the last reset
type LifecycleStats struct {
	Created    int
	Destroyed  int
	Culled     int
	Suppressed int
}

// Bounds is an axis-aligned rectangle in world meters
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Contains reports whether the point lies inside
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Reconciler applies queued mutations to the World at safe points
// All methods must be called outside World.Step
type Reconciler struct {
	world    *physics.World
	registry *Registry
	queue    *MutationQueue
	emit     Emitter
	log      *zap.Logger

	ballSpec physics.BallSpec
	rng      *vmath.FastRand
	maxBalls int

	stats  LifecycleStats
	capped bool
}

// NewReconciler wires the reconciler to its collaborators
// maxBalls <= 0 disables the cap
func NewReconciler(world *physics.World, registry *Registry, queue *MutationQueue, ballSpec physics.BallSpec, maxBalls int, rng *vmath.FastRand, emit Emitter, log *zap.Logger) *Reconciler {
	if emit == nil {
		emit = nopEmitter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		world:    world,
		registry: registry,
		queue:    queue,
		emit:     emit,
		log:      log,
		ballSpec: ballSpec,
		rng:      rng,
		maxBalls: maxBalls,
	}
}

// SetBallSpec replaces the spawn parameters used for subsequent balls
func (r *Reconciler) SetBallSpec(spec physics.BallSpec) {
	r.ballSpec = spec
}

// AtCapacity reports whether the registry has reached the ball cap
func (r *Reconciler) AtCapacity() bool {
	return r.maxBalls > 0 && r.registry.Len() >= r.maxBalls
}

// Spawn creates one ball and registers it; returns nil when at capacity
func (r *Reconciler) Spawn(cause event.Cause) *physics.Body {
	if r.AtCapacity() {
		r.suppress(cause)
		return nil
	}
	r.capped = false

	b := physics.CreateBall(r.world, r.ballSpec, r.rng)
	r.registry.Add(b)
	r.stats.Created++

	x, y := b.Position()
	r.emit.Emit(event.EventBallSpawned, &event.BallPayload{
		ID:     uint64(b.ID),
		X:      x,
		Y:      y,
		Radius: b.Radius,
		Cause:  cause,
	})
	r.log.Debug("ball spawned",
		zap.Uint64("id", uint64(b.ID)),
		zap.Stringer("cause", cause),
		zap.Float64("radius", b.Radius),
		zap.Int("balls", r.registry.Len()),
	)
	return b
}

func (r *Reconciler) suppress(cause event.Cause) {
	r.stats.Suppressed++
	r.emit.Emit(event.EventCapReached, nil)
	if !r.capped {
		r.capped = true
		r.log.Warn("ball cap reached, discarding spawns",
			zap.Int("max_balls", r.maxBalls),
			zap.Stringer("cause", cause),
		)
	}
}

// DrainCreate spends at most one creation credit
// Throttled to one spawn per call so a burst of contacts cannot spawn a burst of balls;
// leftover credits persist to later frames. Returns true if a ball was created
func (r *Reconciler) DrainCreate() bool {
	if !r.queue.TakeCreate() {
		return false
	}
	return r.Spawn(event.CauseBoundaryContact) != nil
}

// DrainRemovals destroys every queued body
// Each body leaves the registry before the World so no reader sees a half-destroyed ball
func (r *Reconciler) DrainRemovals() int {
	if r.world.Stepping() {
		panic(fmt.Errorf("%w: drain removals", physics.ErrWorldLocked))
	}

	removed := 0
	for _, b := range r.queue.Removals() {
		cause := r.queue.Cause(b.ID)
		x, y := b.Position()

		r.registry.Remove(b)
		r.world.DestroyBody(b)
		r.queue.Unmark(b.ID)

		removed++
		r.stats.Destroyed++
		if cause == event.CauseOutOfBounds {
			r.stats.Culled++
		}

		r.emit.Emit(event.EventBallDestroyed, &event.BallPayload{
			ID:     uint64(b.ID),
			X:      x,
			Y:      y,
			Radius: b.Radius,
			Cause:  cause,
		})
		r.log.Debug("ball destroyed",
			zap.Uint64("id", uint64(b.ID)),
			zap.Stringer("cause", cause),
			zap.Int("balls", r.registry.Len()),
		)
	}
	return removed
}

// Cull queues balls that left the bounds for removal; returns the number newly queued
func (r *Reconciler) Cull(bounds Bounds) int {
	n := 0
	for _, b := range r.registry.Balls() {
		if x, y := b.Position(); !bounds.Contains(x, y) {
			if r.queue.MarkRemove(b, event.CauseOutOfBounds) {
				n++
			}
		}
	}
	return n
}

// Verify checks that the registry holds exactly the World's balls
func (r *Reconciler) Verify() error {
	worldBalls := r.world.Bodies(physics.TagBall)
	if len(worldBalls) != r.registry.Len() {
		return fmt.Errorf("%w: world has %d balls, registry %d", ErrRegistryDesync, len(worldBalls), r.registry.Len())
	}
	for _, b := range worldBalls {
		if !r.registry.Contains(b.ID) {
			return fmt.Errorf("%w: world ball %d missing from registry", ErrRegistryDesync, b.ID)
		}
	}
	return nil
}

// MustVerify panics when Verify fails
func (r *Reconciler) MustVerify() {
	if err := r.Verify(); err != nil {
		panic(err)
	}
}

// Stats returns the lifecycle counters
func (r *Reconciler) Stats() LifecycleStats {
	return r.stats
}

// Reset destroys all balls, drops queued work and zeroes the counters
func (r *Reconciler) Reset() {
	for _, b := range r.world.Bodies(physics.TagBall) {
		r.world.DestroyBody(b)
	}
	r.registry.Clear()
	r.queue.Reset()
	r.stats = LifecycleStats{}
	r.capped = false
}
