package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second driven by the platform
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score     int
	MovesLeft int  // Zero for modes without a move budget
	Move      int  // Resolved moves so far
	GameOver  bool // No further moves are accepted
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State GameState
	// Events are short human-readable notes about what the frame resolved,
	// such as a met challenge. The platform may log them.
	Events []string
}
