package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Esc)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
// Terminals report presses only, so spawning is a toggle rather than hold-to-spawn
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyLeft:   IntentTiltLeft,
			tcell.KeyRight:  IntentTiltRight,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'l': IntentToggleSpawn,
			'L': IntentToggleSpawn,
			'a': IntentTiltLeft,
			'd': IntentTiltRight,
			'p': IntentTogglePause,
			' ': IntentTogglePause,
			'g': IntentToggleDebug,
			'm': IntentToggleMute,
			'r': IntentReset,
		},
	}
}

// Lookup resolves a key event to an intent
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	return kt.Resolve(ev.Key(), ev.Rune())
}

// Resolve maps a key code and rune to an intent, r is consulted only for KeyRune
func (kt *KeyTable) Resolve(k tcell.Key, r rune) IntentType {
	if k == tcell.KeyRune {
		return kt.Runes[r]
	}
	return kt.SpecialKeys[k]
}
