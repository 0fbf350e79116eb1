package engine

import (
	"time"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/physics"
)

// HUD is the read-only status shown above the scene
type HUD struct {
	Variant config.Variant

	FastestSpeed float64
	FastestID    physics.BodyID

	Balls      int
	Created    int
	Destroyed  int
	Culled     int
	Suppressed int
	MaxBalls   int

	PendingCreates  int
	PendingRemovals int

	StepsLastFrame int
	TotalSteps     uint64
	Accumulated    time.Duration
	Contacts       ContactCounts

	Tilt     float64
	Elapsed  time.Duration
	Spawning bool
	Paused   bool
	Debug    bool
}

// Scene is a read-only snapshot of the bodies to draw
type Scene struct {
	Variant       config.Variant
	Width, Height float64
	Boundary      []physics.BodySnapshot
	Balls         []physics.BodySnapshot
	FastestID     physics.BodyID
}

// HUD returns the current status readout
func (g *Game) HUD() HUD {
	stats := g.reconciler.Stats()
	return HUD{
		Variant:         g.cfg.World.Variant,
		FastestSpeed:    g.fastestSpeed,
		FastestID:       g.fastestID,
		Balls:           g.registry.Len(),
		Created:         stats.Created,
		Destroyed:       stats.Destroyed,
		Culled:          stats.Culled,
		Suppressed:      stats.Suppressed,
		MaxBalls:        g.cfg.Rules.MaxBalls,
		PendingCreates:  g.queue.PendingCreates(),
		PendingRemovals: g.queue.PendingRemovals(),
		StepsLastFrame:  g.lastSteps,
		TotalSteps:      g.stepper.Total(),
		Accumulated:     g.stepper.Accumulated(),
		Contacts:        g.listener.Counts(),
		Tilt:            g.tilt,
		Elapsed:         g.elapsed,
		Spawning:        g.spawning,
		Paused:          g.paused,
		Debug:           g.debug,
	}
}

// Scene copies body state for rendering
func (g *Game) Scene() Scene {
	s := Scene{
		Variant:   g.cfg.World.Variant,
		Width:     g.cfg.World.Width,
		Height:    g.cfg.World.Height,
		Boundary:  make([]physics.BodySnapshot, 0, len(g.boundary)),
		Balls:     make([]physics.BodySnapshot, 0, g.registry.Len()),
		FastestID: g.fastestID,
	}
	for _, b := range g.boundary {
		s.Boundary = append(s.Boundary, b.Snapshot())
	}
	for _, b := range g.registry.Balls() {
		s.Balls = append(s.Balls, b.Snapshot())
	}
	return s
}
