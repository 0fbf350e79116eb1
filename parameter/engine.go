package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// PhysicsTimeStep is the fixed simulation step, decoupled from frame time
	PhysicsTimeStep = time.Millisecond

	// MaxFrameDelta clamps a single frame's elapsed time before accumulation, 0 = off
	// A non-zero clamp drops simulated time on stalled frames, so step counts
	// stop matching elapsed time
	MaxFrameDelta time.Duration = 0

	// VelocityIterations and PositionIterations are the Box2D solver passes per step
	VelocityIterations = 6 * 4 * 2
	PositionIterations = 2 * 4 * 2

	// StatsSampleInterval is how often the fastest-ball speed readout refreshes
	StatsSampleInterval = 100 * time.Millisecond

	// SessionLimit closes the game after this much unpaused time, 0 = unlimited
	SessionLimit time.Duration = 0
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
