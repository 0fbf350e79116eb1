package engine

import (
	"time"

	"github.com/lixenwraith/bounce/config"
	"github.com/lixenwraith/bounce/event"
)

// NewTestConfig returns a small, fast, seeded configuration with registry verification enabled
func NewTestConfig() *config.Config {
	cfg := config.Default()
	cfg.Physics.TimeStep = 2 * time.Millisecond
	cfg.Physics.VelocityIterations = 8
	cfg.Physics.PositionIterations = 3
	cfg.Rules.Seed = 1
	cfg.Rules.Strict = true
	cfg.Audio.Enabled = false
	return cfg
}

// NewTestGame creates a game with an attached event queue for inspection
func NewTestGame(cfg *config.Config) (*Game, *event.EventQueue) {
	if cfg == nil {
		cfg = NewTestConfig()
	}
	events := event.NewEventQueue()
	return NewGame(cfg, events, nil), events
}
