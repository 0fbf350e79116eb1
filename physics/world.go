package physics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ByteArena/box2d"
)

var (
	// ErrWorldLocked is raised when structure is mutated from inside Step
	ErrWorldLocked = errors.New("physics: world is stepping")

	// ErrUnknownBody is raised when destroying a body the world does not own
	ErrUnknownBody = errors.New("physics: unknown body")
)

// BodyDef describes a body and its fixtures before creation
type BodyDef struct {
	Tag        Tag
	Def        box2d.B2BodyDef
	Fixtures   []box2d.B2FixtureDef
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
}

// World owns every body and advances the engine
// Structural mutation (CreateBody/DestroyBody) is forbidden while Step runs;
// contact callbacks fire synchronously inside Step
type World struct {
	b2       box2d.B2World
	bodies   map[BodyID]*Body
	nextID   BodyID
	stepping bool
	steps    uint64
}

// NewWorld creates an empty world with the given gravity
func NewWorld(gravityX, gravityY float64) *World {
	return &World{
		b2:     box2d.MakeB2World(box2d.MakeB2Vec2(gravityX, gravityY)),
		bodies: make(map[BodyID]*Body),
		nextID: 1,
	}
}

// SetContactListener registers the engine contact callback receiver
func (w *World) SetContactListener(l box2d.B2ContactListenerInterface) {
	w.b2.SetContactListener(l)
}

// CreateBody builds the body and its fixtures
// Panics with ErrWorldLocked when called during Step
func (w *World) CreateBody(def BodyDef) *Body {
	if w.stepping {
		panic(fmt.Errorf("%w: create %s", ErrWorldLocked, def.Tag))
	}

	b := &Body{
		ID:         w.nextID,
		Tag:        def.Tag,
		Radius:     def.Radius,
		HalfWidth:  def.HalfWidth,
		HalfHeight: def.HalfHeight,
	}
	w.nextID++

	bd := def.Def
	b.b2 = w.b2.CreateBody(&bd)
	for i := range def.Fixtures {
		b.b2.CreateFixtureFromDef(&def.Fixtures[i])
	}
	b.b2.SetUserData(b)

	w.bodies[b.ID] = b
	return b
}

// DestroyBody removes the body from the engine
// Panics with ErrWorldLocked during Step and ErrUnknownBody for untracked bodies
func (w *World) DestroyBody(b *Body) {
	if w.stepping {
		panic(fmt.Errorf("%w: destroy body %d", ErrWorldLocked, b.ID))
	}
	if b == nil || w.bodies[b.ID] != b {
		id := BodyID(0)
		if b != nil {
			id = b.ID
		}
		panic(fmt.Errorf("%w: destroy body %d", ErrUnknownBody, id))
	}

	delete(w.bodies, b.ID)
	w.b2.DestroyBody(b.b2)
	b.b2 = nil
}

// Step advances the simulation by exactly dt
func (w *World) Step(dt time.Duration, velocityIterations, positionIterations int) {
	w.stepping = true
	defer func() { w.stepping = false }()

	w.b2.Step(dt.Seconds(), velocityIterations, positionIterations)
	w.steps++
}

// Stepping reports whether Step is currently executing
func (w *World) Stepping() bool {
	return w.stepping
}

// StepCount returns the number of completed steps
func (w *World) StepCount() uint64 {
	return w.steps
}

// Has reports whether the body is live in this world
func (w *World) Has(b *Body) bool {
	return b != nil && w.bodies[b.ID] == b
}

// Count returns the number of live bodies with the tag
func (w *World) Count(tag Tag) int {
	n := 0
	for _, b := range w.bodies {
		if b.Tag == tag {
			n++
		}
	}
	return n
}

// Len returns the total number of live bodies
func (w *World) Len() int {
	return len(w.bodies)
}

// Bodies returns live bodies with the tag ordered by ID
func (w *World) Bodies(tag Tag) []*Body {
	result := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		if b.Tag == tag {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Clear destroys every body
func (w *World) Clear() {
	all := make([]*Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		all = append(all, b)
	}
	for _, b := range all {
		w.DestroyBody(b)
	}
}
