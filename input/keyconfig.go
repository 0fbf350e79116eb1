package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Rune aliases for keys that can't be bare single-char config keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyByName indexes tcell's key names case-insensitively ("esc", "left", "ctrl-c")
var keyByName map[string]tcell.Key

func init() {
	keyByName = make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		keyByName[strings.ToLower(name)] = k
	}
}

// ApplyBindings overrides entries of kt from key name → action name pairs
// Single characters and rune aliases bind runes, other names bind special keys
// Action "none" removes the binding
func ApplyBindings(kt *KeyTable, bindings map[string]string) error {
	for keyStr, action := range bindings {
		intent, ok := ActionIntent(action)
		if !ok {
			return fmt.Errorf("key %q: unknown action: %q", keyStr, action)
		}

		if r, ok := resolveRune(keyStr); ok {
			bindRune(kt, r, intent)
			continue
		}

		k, ok := keyByName[strings.ToLower(keyStr)]
		if !ok {
			return fmt.Errorf("unknown key name: %q", keyStr)
		}
		if intent == IntentNone {
			delete(kt.SpecialKeys, k)
		} else {
			kt.SpecialKeys[k] = intent
		}
	}
	return nil
}

func bindRune(kt *KeyTable, r rune, intent IntentType) {
	if intent == IntentNone {
		delete(kt.Runes, r)
		return
	}
	kt.Runes[r] = intent
}

// resolveRune converts a config key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, bool) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], true
	}
	return 0, false
}
