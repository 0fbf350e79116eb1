package audio

import "github.com/lixenwraith/bounce/event"

// SoundType represents different sound effects
type SoundType int

const (
	SoundSpawn SoundType = iota // Ball created
	SoundPop                    // Ball destroyed
	SoundThud                   // Ball touched the boundary
	SoundCap                    // Spawn discarded at the ball cap
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundSpawn:
		return "spawn"
	case SoundPop:
		return "pop"
	case SoundThud:
		return "thud"
	case SoundCap:
		return "cap"
	default:
		return "unknown"
	}
}

// SoundFor maps a lifecycle event to its effect
func SoundFor(t event.EventType) (SoundType, bool) {
	switch t {
	case event.EventBallSpawned:
		return SoundSpawn, true
	case event.EventBallDestroyed:
		return SoundPop, true
	case event.EventBoundaryHit:
		return SoundThud, true
	case event.EventCapReached:
		return SoundCap, true
	default:
		return 0, false
	}
}
