package parameter

import "time"

// World geometry in meters
const (
	// PixelsPerMeter maps the 800x600 reference window onto world meters
	PixelsPerMeter = 100.0

	WorldWidth  = 800 / PixelsPerMeter
	WorldHeight = 600 / PixelsPerMeter

	GravityX = 0.0
	GravityY = -10.0
)

// Ball material and size
const (
	BallRadiusMin   = 0.05
	BallRadiusRange = 0.10

	BallDensity     = 1.0
	BallFriction    = 0.0
	BallRestitution = 1.0

	// BallSpawnSpread divides the containment radius when picking spawn points
	BallSpawnSpread = 1.5
)

// Circle boundary
const (
	CircleRadius      = 2.5
	CircleSegments    = 360
	CircleDensity     = 1.0
	CircleFriction    = 0.2
	CircleRestitution = 0.6
)

// Tunnel boundary, two slabs above and below the centre line
const (
	TunnelLength      = 7.0
	TunnelGap         = 2.0
	TunnelThickness   = 0.2
	TunnelFriction    = 0.0
	TunnelRestitution = 0.0

	// TiltStep is the angular increment (radians) applied per tilt input
	TiltStep = 0.05

	// TiltMax bounds the absolute slab angle
	TiltMax = 0.6
)

// Spawn rules
const (
	// SpawnInterval is the cooldown between manual spawns while spawning is toggled on
	SpawnInterval = 200 * time.Millisecond

	// MaxBalls caps the ball registry; creation credits beyond it are discarded
	MaxBalls = 400

	// InitialBalls is the number of balls created at startup
	InitialBalls = 1
)
