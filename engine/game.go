package engine

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/input"
	"github.com/lixenwraith/bounce/parameter"
	"github.com/lixenwraith/bounce/physics"
	"github.com/lixenwraith/bounce/vmath"
)

// cullMargin is how far outside the world rectangle a ball may travel before removal
const cullMargin = 1.0

// FrameResult summarizes one Update call
type FrameResult struct {
	Steps     int
	Spawned   int
	Destroyed int
	Quit      bool
}

// Game owns the World, the mutation queues and the ball registry, and orchestrates
// one frame at a time: input, fixed steps with removal drains, one creation drain,
// manual spawning and HUD sampling. Single-threaded; not safe for concurrent use
type Game struct {
	cfg *config.Config
	log *zap.Logger

	world      *physics.World
	registry   *Registry
	queue      *MutationQueue
	listener   *ContactListener
	reconciler *Reconciler
	stepper    *Stepper
	rng        *vmath.FastRand
	emit       Emitter

	boundary []*physics.Body
	bounds   Bounds

	frame         int64
	spawning      bool
	spawnCooldown time.Duration
	paused        bool
	debug         bool
	elapsed       time.Duration
	tilt          float64

	lastSteps    int
	sampleAcc    time.Duration
	fastestSpeed float64
	fastestID    physics.BodyID
}

// NewGame builds the world for cfg and spawns the initial balls
// events may be nil when nothing consumes lifecycle events
func NewGame(cfg *config.Config, events *event.EventQueue, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}

	seed := cfg.Rules.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		world:    physics.NewWorld(cfg.World.GravityX, cfg.World.GravityY),
		registry: NewRegistry(),
		queue:    NewMutationQueue(),
		stepper:  NewStepper(cfg.Physics.TimeStep, cfg.Physics.MaxFrameDelta),
		rng:      vmath.NewFastRand(seed),
		bounds: Bounds{
			MinX: -cullMargin,
			MinY: -cullMargin,
			MaxX: cfg.World.Width + cullMargin,
			MaxY: cfg.World.Height + cullMargin,
		},
	}

	if events != nil {
		g.emit = queueEmitter{queue: events, frame: &g.frame}
	} else {
		g.emit = nopEmitter{}
	}

	g.listener = NewContactListener(g.queue, cfg.Rules.RemovalPolicy, cfg.Rules.SpawnPerContact, g.rng, g.emit)
	g.world.SetContactListener(g.listener)
	g.reconciler = NewReconciler(g.world, g.registry, g.queue, g.ballSpec(), cfg.Rules.MaxBalls, g.rng, g.emit, log)

	g.build()

	log.Info("world ready",
		zap.String("variant", string(cfg.World.Variant)),
		zap.Uint64("seed", seed),
		zap.Duration("time_step", cfg.Physics.TimeStep),
		zap.Int("max_balls", cfg.Rules.MaxBalls),
		zap.String("removal_policy", string(cfg.Rules.RemovalPolicy)),
	)
	return g
}

func (g *Game) center() (x, y float64) {
	return g.cfg.World.Width / 2, g.cfg.World.Height / 2
}

// ballSpec derives spawn parameters from the active variant
func (g *Game) ballSpec() physics.BallSpec {
	cx, cy := g.center()
	b := g.cfg.Ball

	var region physics.Region
	switch g.cfg.World.Variant {
	case config.VariantTunnel:
		region = tunnelRegion(g.cfg.Tunnel, cx, cy, g.tilt, b.RadiusMin+b.RadiusRange)
	default:
		region = physics.Region{CX: cx, CY: cy, Radius: g.cfg.Circle.Radius / b.SpawnSpread}
	}

	return physics.BallSpec{
		Spawn:       region,
		RadiusMin:   b.RadiusMin,
		RadiusRange: b.RadiusRange,
		Material: physics.Material{
			Density:     b.Density,
			Friction:    b.Friction,
			Restitution: b.Restitution,
		},
	}
}

// tunnelRegion is the spawn box between the slabs at the given tilt
// Each slab turns about its own centre, so the gap measured along the slab normal
// narrows to (gap+thickness)*cos(tilt) - thickness and the midline stays on the tunnel centre
func tunnelRegion(t config.TunnelConfig, cx, cy, tilt, maxRadius float64) physics.Region {
	sin, cos := math.Sincos(tilt)
	offset := t.Gap/2 + t.Thickness/2

	halfGap := ((t.Gap+t.Thickness)*cos - t.Thickness) / 2
	halfW := min(t.Length/4, t.Length/2-offset*math.Abs(sin)-maxRadius)

	return physics.Region{
		CX:         cx,
		CY:         cy,
		HalfWidth:  max(halfW, 0),
		HalfHeight: max(halfGap-maxRadius, 0),
		Angle:      tilt,
	}
}

// build creates the boundary and the initial balls
func (g *Game) build() {
	cx, cy := g.center()

	switch g.cfg.World.Variant {
	case config.VariantTunnel:
		t := g.cfg.Tunnel
		upper, lower := physics.CreateTunnel(g.world, physics.TunnelSpec{
			CX:        cx,
			CY:        cy,
			Length:    t.Length,
			Gap:       t.Gap,
			Thickness: t.Thickness,
			Material:  physics.Material{Density: 1, Friction: t.Friction, Restitution: t.Restitution},
		})
		g.boundary = []*physics.Body{upper, lower}
	default:
		c := g.cfg.Circle
		g.boundary = []*physics.Body{physics.CreateCircleBoundary(g.world, physics.CircleSpec{
			CX:       cx,
			CY:       cy,
			Radius:   c.Radius,
			Segments: c.Segments,
			Material: physics.Material{Density: c.Density, Friction: c.Friction, Restitution: c.Restitution},
		})}
	}

	g.reconciler.SetBallSpec(g.ballSpec())
	for i := 0; i < g.cfg.Rules.InitialBalls; i++ {
		g.reconciler.Spawn(event.CauseStartup)
	}

	// Sample on the first frame
	g.sampleAcc = parameter.StatsSampleInterval
	g.refreshFastest()
}

// Reset rebuilds the scene from scratch, keeping configuration and RNG state
func (g *Game) Reset() {
	g.reconciler.Reset()
	for _, b := range g.boundary {
		g.world.DestroyBody(b)
	}
	g.boundary = nil
	g.stepper.Reset()

	g.spawning = false
	g.spawnCooldown = 0
	g.elapsed = 0
	g.tilt = 0
	g.fastestSpeed = 0

	g.build()
	g.emit.Emit(event.EventWorldReset, nil)
	g.log.Info("world reset", zap.Int64("frame", g.frame))
}

// Update advances one rendered frame
func (g *Game) Update(in input.Snapshot, dt time.Duration) FrameResult {
	g.frame++
	var res FrameResult

	if in.Quit {
		res.Quit = true
		return res
	}
	if in.Reset {
		g.Reset()
	}
	if in.TogglePause {
		g.paused = !g.paused
		g.log.Debug("pause toggled", zap.Bool("paused", g.paused))
	}
	if in.ToggleDebug {
		g.debug = !g.debug
	}
	if in.ToggleSpawn {
		g.spawning = !g.spawning
		g.spawnCooldown = 0
	}

	if g.paused {
		g.lastSteps = 0
		return res
	}

	if in.Tilt != 0 {
		g.applyTilt(in.Tilt)
	}

	before := g.reconciler.Stats()

	g.lastSteps = g.stepper.Advance(dt, g.step)
	res.Steps = g.lastSteps

	g.reconciler.DrainCreate()
	g.manualSpawn(dt)
	if g.cfg.Rules.Strict {
		g.reconciler.MustVerify()
	}

	after := g.reconciler.Stats()
	res.Spawned = after.Created - before.Created
	res.Destroyed = after.Destroyed - before.Destroyed

	g.elapsed += dt
	if limit := g.cfg.Rules.SessionLimit; limit > 0 && g.elapsed >= limit {
		g.log.Info("session limit reached", zap.Duration("elapsed", g.elapsed))
		res.Quit = true
	}

	g.sample(dt)
	return res
}

// step runs one fixed physics step followed by the removal drain
func (g *Game) step() {
	g.world.Step(g.cfg.Physics.TimeStep, g.cfg.Physics.VelocityIterations, g.cfg.Physics.PositionIterations)
	g.reconciler.Cull(g.bounds)
	g.reconciler.DrainRemovals()
	if g.cfg.Rules.Strict {
		g.reconciler.MustVerify()
	}
}

func (g *Game) manualSpawn(dt time.Duration) {
	if !g.spawning {
		return
	}
	g.spawnCooldown -= dt
	if g.spawnCooldown <= 0 {
		g.reconciler.Spawn(event.CauseManual)
		g.spawnCooldown = g.cfg.Rules.SpawnInterval
	}
}

func (g *Game) applyTilt(steps int) {
	if g.cfg.World.Variant != config.VariantTunnel {
		return
	}
	delta := float64(steps) * g.cfg.Tunnel.TiltStep
	for _, b := range g.boundary {
		g.tilt = g.world.Tilt(b, delta, g.cfg.Tunnel.TiltMax)
	}
	g.reconciler.SetBallSpec(g.ballSpec())
}

// sample refreshes the fastest-ball readout at StatsSampleInterval
// The highlighted ball is tracked every frame, the displayed speed is throttled
func (g *Game) sample(dt time.Duration) {
	g.sampleAcc += dt
	if g.sampleAcc >= parameter.StatsSampleInterval {
		g.sampleAcc = 0
		g.refreshFastest()
		return
	}
	if b, _ := g.registry.Fastest(); b != nil {
		g.fastestID = b.ID
	} else {
		g.fastestID = 0
	}
}

func (g *Game) refreshFastest() {
	b, speed := g.registry.Fastest()
	if b == nil {
		g.fastestID, g.fastestSpeed = 0, 0
		return
	}
	g.fastestID, g.fastestSpeed = b.ID, speed
}

// Frame returns the number of Update calls so far
func (g *Game) Frame() int64 {
	return g.frame
}

// Paused reports whether simulation is suspended
func (g *Game) Paused() bool {
	return g.paused
}

// Debug reports whether the debug overlay is enabled
func (g *Game) Debug() bool {
	return g.debug
}

// Spawning reports whether manual spawning is toggled on
func (g *Game) Spawning() bool {
	return g.spawning
}

// Verify checks registry/world consistency
func (g *Game) Verify() error {
	return g.reconciler.Verify()
}
