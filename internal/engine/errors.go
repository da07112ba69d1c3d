package engine

import "errors"

var (
	// ErrDegenerateViewport reports a non-positive viewport. The engine clamps
	// the field to its minimum size and keeps running.
	ErrDegenerateViewport = errors.New("engine: degenerate viewport")

	// ErrPersistence wraps failures of the coin ledger. Gameplay never stops
	// on it; unsaved coins are carried into the next settlement.
	ErrPersistence = errors.New("engine: persistence failure")
)
