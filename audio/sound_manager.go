package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/bounce/event"
	"github.com/lixenwraith/bounce/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays lifecycle effects through the beep speaker
// Safe for use from the frame loop while the speaker goroutine mixes
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool

	now        func() time.Time
	lastPlayed [soundTypeCount]time.Time

	played  uint64
	skipped uint64
}

// NewSoundManager creates an idle manager; Initialize opens the device
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences playing sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker close; an empty mixer is silent
	sm.initialized = false
}

// ToggleMute flips the mute state and returns the new value
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// SetMuted sets the mute state
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// Muted reports whether playback is suppressed
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// allow applies the per-sound minimum gap
func (sm *SoundManager) allow(st SoundType) bool {
	now := sm.now()
	if last := sm.lastPlayed[st]; !last.IsZero() && now.Sub(last) < parameter.MinSoundGap {
		sm.skipped++
		return false
	}
	sm.lastPlayed[st] = now
	return true
}

// Play starts one effect; returns false when muted, uninitialized or throttled
func (sm *SoundManager) Play(st SoundType) bool {
	if st < 0 || st >= soundTypeCount || sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.allow(st) {
		return false
	}

	streamer := GetSoundEffect(st, sampleRate)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	sm.played++
	return true
}

// EventTypes lists the lifecycle events that have a sound
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBallSpawned,
		event.EventBallDestroyed,
		event.EventBoundaryHit,
		event.EventCapReached,
	}
}

// HandleEvent plays the effect for one lifecycle event
// Bursts collapse through the minimum gap, so a frame with many contacts plays once
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	if st, ok := SoundFor(ev.Type); ok {
		sm.Play(st)
	}
}

// Stats returns played and throttled counts
func (sm *SoundManager) Stats() (played, skipped uint64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played, sm.skipped
}
