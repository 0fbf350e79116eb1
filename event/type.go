package event

// EventType represents the type of game event
type EventType int

const (
	// EventBallSpawned signals a ball entered the world
	// Trigger: Reconciler, startup, spawn key | Payload: *BallPayload
	EventBallSpawned EventType = iota

	// EventBallDestroyed signals a ball left the world
	// Trigger: Reconciler removal drain | Payload: *BallPayload
	EventBallDestroyed

	// EventBoundaryHit signals a ball touched the circle or a tunnel wall
	// Trigger: ContactListener | Payload: *ContactPayload
	EventBoundaryHit

	// EventBallHit signals two balls touched
	// Trigger: ContactListener | Payload: *ContactPayload
	EventBallHit

	// EventCapReached signals a creation credit was discarded at MaxBalls
	// Trigger: Reconciler creation drain | Payload: nil
	EventCapReached

	// EventWorldReset signals all balls were cleared and the scene rebuilt
	// Trigger: reset key | Payload: nil
	EventWorldReset
)

var eventNames = map[EventType]string{
	EventBallSpawned:   "ball_spawned",
	EventBallDestroyed: "ball_destroyed",
	EventBoundaryHit:   "boundary_hit",
	EventBallHit:       "ball_hit",
	EventCapReached:    "cap_reached",
	EventWorldReset:    "world_reset",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// GameEvent is a single queued notification
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
