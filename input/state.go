package input

import "github.com/gdamore/tcell/v2"

// Snapshot is the input observed during one frame
// Passed by value into the simulation update so the step never reads shared key state
type Snapshot struct {
	Quit        bool
	TogglePause bool
	ToggleDebug bool
	ToggleMute  bool
	Reset       bool
	ToggleSpawn bool

	// Tilt is the net tilt steps requested, negative = left
	Tilt int
}

// IsZero reports whether no input was observed
func (s Snapshot) IsZero() bool {
	return s == Snapshot{}
}

// Collector accumulates key events between frames
// Toggles pressed an even number of times within a frame cancel out
type Collector struct {
	table   *KeyTable
	pending Snapshot
}

// NewCollector creates a collector using the given key table, DefaultKeyTable when nil
func NewCollector(table *KeyTable) *Collector {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Collector{table: table}
}

// HandleEvent records a terminal event; returns the resolved intent
func (c *Collector) HandleEvent(ev tcell.Event) IntentType {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return IntentNone
	}
	intent := c.table.Lookup(key)
	c.Apply(intent)
	return intent
}

// Apply folds a single intent into the pending snapshot
func (c *Collector) Apply(intent IntentType) {
	switch intent {
	case IntentQuit:
		c.pending.Quit = true
	case IntentTogglePause:
		c.pending.TogglePause = !c.pending.TogglePause
	case IntentToggleDebug:
		c.pending.ToggleDebug = !c.pending.ToggleDebug
	case IntentToggleMute:
		c.pending.ToggleMute = !c.pending.ToggleMute
	case IntentReset:
		c.pending.Reset = true
	case IntentToggleSpawn:
		c.pending.ToggleSpawn = !c.pending.ToggleSpawn
	case IntentTiltLeft:
		c.pending.Tilt--
	case IntentTiltRight:
		c.pending.Tilt++
	}
}

// Drain returns the accumulated snapshot and starts a new frame
func (c *Collector) Drain() Snapshot {
	s := c.pending
	c.pending = Snapshot{}
	return s
}
