package input

import "strings"

// actionRegistry maps canonical action names to intents
// Used by the key binding loader to resolve config action strings
var actionRegistry map[string]IntentType

func init() {
	actionRegistry = make(map[string]IntentType, len(intentNames)+4)
	for intent, name := range intentNames {
		actionRegistry[name] = intent
	}

	// Short aliases
	actionRegistry["pause"] = IntentTogglePause
	actionRegistry["debug"] = IntentToggleDebug
	actionRegistry["mute"] = IntentToggleMute
	actionRegistry["spawn"] = IntentToggleSpawn
}

// ActionIntent resolves an action name; "none" resolves to IntentNone and unbinds
func ActionIntent(name string) (IntentType, bool) {
	intent, ok := actionRegistry[strings.ToLower(strings.TrimSpace(name))]
	return intent, ok
}
