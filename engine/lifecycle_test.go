package engine

import (
	"errors"
	"testing"

	"github.com/ByteArena/box2d"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// recorder captures emitted event types in order
type recorder struct {
	types []event.EventType
}

func (r *recorder) Emit(t event.EventType, _ any) {
	r.types = append(r.types, t)
}

func (r *recorder) count(t event.EventType) int {
	n := 0
	for _, e := range r.types {
		if e == t {
			n++
		}
	}
	return n
}

var testMaterial = physics.Material{Density: 1, Friction: 0, Restitution: 1}

// rig is a minimal lifecycle stack over a real World with zero gravity
type rig struct {
	world      *physics.World
	registry   *Registry
	queue      *MutationQueue
	listener   *ContactListener
	reconciler *Reconciler
	events     *recorder
	rng        *vmath.FastRand
}

func newRig(t *testing.T, maxBalls int) *rig {
	t.Helper()
	r := &rig{
		world:    physics.NewWorld(0, 0),
		registry: NewRegistry(),
		queue:    NewMutationQueue(),
		events:   &recorder{},
		rng:      vmath.NewFastRand(7),
	}
	spec := physics.BallSpec{
		Spawn:     physics.Region{CX: 0, CY: 0},
		RadiusMin: 0.05,
		Material:  testMaterial,
	}
	r.listener = NewContactListener(r.queue, config.RemoveFirst, 1, r.rng, r.events)
	r.world.SetContactListener(r.listener)
	r.reconciler = NewReconciler(r.world, r.registry, r.queue, spec, maxBalls, r.rng, r.events, nil)
	return r
}

// ballAt creates and registers a ball centred at (x, y)
func (r *rig) ballAt(x, y, radius float64) *physics.Body {
	b := physics.CreateBall(r.world, physics.BallSpec{
		Spawn:     physics.Region{CX: x, CY: y},
		RadiusMin: radius,
		Material:  testMaterial,
	}, r.rng)
	r.registry.Add(b)
	return b
}

func (r *rig) step() {
	r.world.Step(NewTestConfig().Physics.TimeStep, 8, 3)
}

func recoverError(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		e, ok := v.(error)
		if !ok {
			t.Fatalf("Expected error panic value, got %T: %v", v, v)
		}
		err = e
	}()
	fn()
	return nil
}

func TestBoundaryContactSpawnsOneBall(t *testing.T) {
	r := newRig(t, 0)
	physics.CreateCircleBoundary(r.world, physics.CircleSpec{Radius: 1, Segments: 64, Material: testMaterial})
	a := r.ballAt(0, -0.95, 0.1)

	r.step()
	if r.queue.PendingCreates() == 0 {
		t.Fatal("Expected creation credit after boundary contact")
	}
	if r.registry.Len() != 1 {
		t.Fatalf("Expected no creation inside step, got %d balls", r.registry.Len())
	}

	if !r.reconciler.DrainCreate() {
		t.Fatal("Expected DrainCreate to spawn")
	}

	balls := r.registry.Balls()
	if len(balls) != 2 {
		t.Fatalf("Expected registry {A, C}, got %d balls", len(balls))
	}
	if balls[0].ID != a.ID {
		t.Errorf("Expected A first, got %d", balls[0].ID)
	}
	if balls[1].ID == a.ID {
		t.Error("Expected a new ball C")
	}
	if r.events.count(event.EventBoundaryHit) == 0 {
		t.Error("Expected boundary hit event")
	}
	if err := r.reconciler.Verify(); err != nil {
		t.Errorf("Expected consistent registry, got %v", err)
	}
}

func TestBallContactRemovesExactlyOne(t *testing.T) {
	r := newRig(t, 0)
	r.ballAt(0, 0, 0.1)
	r.ballAt(0.15, 0, 0.1)

	r.step()
	if r.queue.PendingRemovals() != 1 {
		t.Fatalf("Expected one queued removal, got %d", r.queue.PendingRemovals())
	}
	if r.registry.Len() != 2 {
		t.Fatalf("Expected no destruction inside step, got %d balls", r.registry.Len())
	}

	if n := r.reconciler.DrainRemovals(); n != 1 {
		t.Errorf("Expected 1 removal, got %d", n)
	}
	if r.registry.Len() != 1 || r.world.Count(physics.TagBall) != 1 {
		t.Errorf("Expected one ball left, got registry=%d world=%d", r.registry.Len(), r.world.Count(physics.TagBall))
	}
	if r.queue.PendingRemovals() != 0 {
		t.Errorf("Expected empty removal set, got %d", r.queue.PendingRemovals())
	}
	if r.reconciler.Stats().Destroyed != 1 {
		t.Errorf("Expected Destroyed 1, got %d", r.reconciler.Stats().Destroyed)
	}
}

func TestClassifyRules(t *testing.T) {
	r := newRig(t, 0)
	circle := physics.CreateCircleBoundary(r.world, physics.CircleSpec{CX: 10, Radius: 1, Segments: 8, Material: testMaterial})
	upper, lower := physics.CreateTunnel(r.world, physics.TunnelSpec{CX: 30, Length: 2, Gap: 1, Thickness: 0.1, Material: testMaterial})
	a := r.ballAt(0, 0, 0.1)
	b := r.ballAt(5, 0, 0.1)

	r.listener.Classify(a, circle)
	r.listener.Classify(lower, b)
	if r.queue.PendingCreates() != 2 {
		t.Errorf("Expected 2 credits from ball/boundary in either order, got %d", r.queue.PendingCreates())
	}

	r.listener.Classify(upper, circle)
	r.listener.Classify(upper, lower)
	if r.queue.PendingCreates() != 2 || r.queue.PendingRemovals() != 0 {
		t.Error("Expected boundary/boundary contacts to be ignored")
	}

	r.listener.Classify(a, b)
	if !r.queue.IsMarked(a.ID) || r.queue.IsMarked(b.ID) {
		t.Error("Expected first policy to mark body A only")
	}
	if r.queue.Cause(a.ID) != event.CauseBallContact {
		t.Errorf("Expected ball contact cause, got %s", r.queue.Cause(a.ID))
	}

	c := r.listener.Counts()
	if c.Boundary != 2 || c.Ball != 1 || c.Other != 2 {
		t.Errorf("Expected counts 2/1/2, got %d/%d/%d", c.Boundary, c.Ball, c.Other)
	}
}

func TestRepeatedContactQueuesOnce(t *testing.T) {
	r := newRig(t, 0)
	a := r.ballAt(0, 0, 0.1)
	b := r.ballAt(1, 0, 0.1)
	c := r.ballAt(2, 0, 0.1)

	r.listener.Classify(a, b)
	r.listener.Classify(a, b)
	r.listener.Classify(a, c)
	if r.queue.PendingRemovals() != 1 {
		t.Fatalf("Expected A queued once, got %d removals", r.queue.PendingRemovals())
	}

	r.reconciler.DrainRemovals()
	if r.registry.Contains(a.ID) || r.world.Has(a) {
		t.Error("Expected A destroyed")
	}
	if r.registry.Len() != 2 {
		t.Errorf("Expected B and C to survive, got %d", r.registry.Len())
	}
}

func TestRandomPolicyPicksEitherBody(t *testing.T) {
	r := newRig(t, 0)
	r.listener = NewContactListener(r.queue, config.RemoveRandom, 1, vmath.NewFastRand(3), nil)

	first, second := 0, 0
	for i := 0; i < 200; i++ {
		a := r.ballAt(float64(i), 0, 0.05)
		b := r.ballAt(float64(i), 1, 0.05)
		r.listener.Classify(a, b)
		switch {
		case r.queue.IsMarked(a.ID) && !r.queue.IsMarked(b.ID):
			first++
		case r.queue.IsMarked(b.ID) && !r.queue.IsMarked(a.ID):
			second++
		default:
			t.Fatalf("Expected exactly one of the pair marked at %d", i)
		}
	}
	if first == 0 || second == 0 {
		t.Errorf("Expected both sides chosen, got first=%d second=%d", first, second)
	}
}

func TestZeroCreditsPerContact(t *testing.T) {
	r := newRig(t, 0)
	r.listener = NewContactListener(r.queue, config.RemoveFirst, 0, r.rng, nil)
	circle := physics.CreateCircleBoundary(r.world, physics.CircleSpec{Radius: 1, Segments: 8, Material: testMaterial})
	r.listener.Classify(r.ballAt(0, 0, 0.1), circle)
	if r.queue.PendingCreates() != 0 {
		t.Errorf("Expected no credits, got %d", r.queue.PendingCreates())
	}
}

func TestDrainCreateThrottle(t *testing.T) {
	r := newRig(t, 0)
	r.queue.AddCreate(5)

	if !r.reconciler.DrainCreate() {
		t.Fatal("Expected spawn")
	}
	if r.registry.Len() != 1 {
		t.Errorf("Expected one ball per drain, got %d", r.registry.Len())
	}
	if r.queue.PendingCreates() != 4 {
		t.Errorf("Expected 4 credits to persist, got %d", r.queue.PendingCreates())
	}

	for r.reconciler.DrainCreate() {
	}
	if r.registry.Len() != 5 || r.queue.PendingCreates() != 0 {
		t.Errorf("Expected 5 balls and no credits, got %d/%d", r.registry.Len(), r.queue.PendingCreates())
	}
}

func TestSpawnRespectsCap(t *testing.T) {
	r := newRig(t, 2)
	r.queue.AddCreate(3)
	r.reconciler.DrainCreate()
	r.reconciler.DrainCreate()
	if r.reconciler.DrainCreate() {
		t.Error("Expected third spawn suppressed")
	}

	if r.registry.Len() != 2 {
		t.Errorf("Expected 2 balls at cap, got %d", r.registry.Len())
	}
	if r.reconciler.Stats().Suppressed != 1 {
		t.Errorf("Expected Suppressed 1, got %d", r.reconciler.Stats().Suppressed)
	}
	if r.queue.PendingCreates() != 0 {
		t.Errorf("Expected credit consumed, got %d", r.queue.PendingCreates())
	}
	if r.events.count(event.EventCapReached) != 1 {
		t.Errorf("Expected cap event, got %d", r.events.count(event.EventCapReached))
	}
}

func TestDrainRemovalsUntrackedPanics(t *testing.T) {
	r := newRig(t, 0)
	stray := physics.CreateBall(r.world, physics.BallSpec{RadiusMin: 0.1, Material: testMaterial}, r.rng)
	r.queue.MarkRemove(stray, event.CauseManual)

	err := recoverError(t, func() { r.reconciler.DrainRemovals() })
	if !errors.Is(err, ErrRegistryDesync) {
		t.Errorf("Expected ErrRegistryDesync, got %v", err)
	}
}

// drainingListener attempts reconciliation from inside a contact callback
type drainingListener struct {
	*ContactListener
	reconciler *Reconciler
}

func (d drainingListener) BeginContact(box2d.B2ContactInterface) {
	d.reconciler.DrainRemovals()
}

func TestDrainRemovalsInsideStepPanics(t *testing.T) {
	r := newRig(t, 0)
	r.world.SetContactListener(drainingListener{ContactListener: r.listener, reconciler: r.reconciler})
	r.ballAt(0, 0, 0.1)
	r.ballAt(0.15, 0, 0.1)

	err := recoverError(t, r.step)
	if !errors.Is(err, physics.ErrWorldLocked) {
		t.Errorf("Expected ErrWorldLocked, got %v", err)
	}
	if r.world.Stepping() {
		t.Error("Expected stepping flag cleared after panic")
	}
}

func TestCullQueuesEscapedBalls(t *testing.T) {
	r := newRig(t, 0)
	inside := r.ballAt(1, 1, 0.1)
	outside := r.ballAt(50, 1, 0.1)

	bounds := Bounds{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	if n := r.reconciler.Cull(bounds); n != 1 {
		t.Fatalf("Expected 1 culled, got %d", n)
	}
	if n := r.reconciler.Cull(bounds); n != 0 {
		t.Errorf("Expected repeat cull to queue nothing, got %d", n)
	}

	r.reconciler.DrainRemovals()
	if r.registry.Contains(outside.ID) || !r.registry.Contains(inside.ID) {
		t.Error("Expected only the escaped ball removed")
	}
	if r.reconciler.Stats().Culled != 1 {
		t.Errorf("Expected Culled 1, got %d", r.reconciler.Stats().Culled)
	}
}

func TestVerifyDetectsDesync(t *testing.T) {
	r := newRig(t, 0)
	b := r.ballAt(0, 0, 0.1)
	if err := r.reconciler.Verify(); err != nil {
		t.Fatalf("Expected consistent state, got %v", err)
	}

	r.world.DestroyBody(b)
	if err := r.reconciler.Verify(); !errors.Is(err, ErrRegistryDesync) {
		t.Errorf("Expected ErrRegistryDesync, got %v", err)
	}

	r2 := newRig(t, 0)
	physics.CreateBall(r2.world, physics.BallSpec{RadiusMin: 0.1, Material: testMaterial}, r2.rng)
	if err := r2.reconciler.Verify(); !errors.Is(err, ErrRegistryDesync) {
		t.Errorf("Expected unregistered world ball reported, got %v", err)
	}
}

func TestReconcilerReset(t *testing.T) {
	r := newRig(t, 0)
	r.ballAt(0, 0, 0.1)
	r.ballAt(1, 0, 0.1)
	r.queue.AddCreate(3)
	r.reconciler.DrainCreate()

	r.reconciler.Reset()
	if r.registry.Len() != 0 || r.world.Count(physics.TagBall) != 0 {
		t.Error("Expected all balls gone")
	}
	if r.queue.PendingCreates() != 0 || r.reconciler.Stats() != (LifecycleStats{}) {
		t.Error("Expected queue and stats cleared")
	}
}
