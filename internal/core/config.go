package core

// RuntimeConfig is what the platform hands a game at start-up.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns an 80x24 terminal at 60 frames per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the coarse status the platform needs after each step.
type GameState struct {
	Score    int
	Running  bool
	GameOver bool
	Won      bool
	Paused   bool
}

// StepResult is returned by a game after each simulation tick.
type StepResult struct {
	State GameState
}
