package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap between consecutive sounds of the same kind
	MinSoundGap = 40 * time.Millisecond
)

// Spawn blip, rising sine
const (
	SpawnSoundDuration = 60 * time.Millisecond
	SpawnSoundFreq     = 880.0
	SpawnSoundVolume   = -1.5
)

// Pop, short noise burst on ball removal
const (
	PopSoundDuration = 45 * time.Millisecond
	PopSoundVolume   = -2.0
)

// Thud, low square on boundary contact
const (
	ThudSoundDuration = 30 * time.Millisecond
	ThudSoundFreq     = 110.0
	ThudSoundVolume   = -3.0
)

// Cap buzz, low saw when the ball cap discards a spawn
const (
	CapSoundDuration = 120 * time.Millisecond
	CapSoundFreq     = 100.0
	CapSoundVolume   = -3.0
)

// Envelope timings shared by all effects
const (
	SoundAttack  = 4 * time.Millisecond
	SoundRelease = 20 * time.Millisecond
)
