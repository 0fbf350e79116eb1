package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit        // Esc, q, Ctrl+C
	IntentTogglePause // p
	IntentToggleDebug // g
	IntentToggleMute  // m
	IntentReset       // r

	// Simulation intents
	IntentToggleSpawn // l
	IntentTiltLeft    // Left, a
	IntentTiltRight   // Right, d
)

var intentNames = map[IntentType]string{
	IntentNone:        "none",
	IntentQuit:        "quit",
	IntentTogglePause: "toggle_pause",
	IntentToggleDebug: "toggle_debug",
	IntentToggleMute:  "toggle_mute",
	IntentReset:       "reset",
	IntentToggleSpawn: "toggle_spawn",
	IntentTiltLeft:    "tilt_left",
	IntentTiltRight:   "tilt_right",
}

func (i IntentType) String() string {
	if name, ok := intentNames[i]; ok {
		return name
	}
	return "unknown"
}
