package engine

import "errors"

// ErrRegistryDesync marks a ball registry that no longer mirrors the World
// Raised as a panic: it means a lifecycle bug, not a recoverable condition
var ErrRegistryDesync = errors.New("engine: registry out of sync with world")
