package depthscraper

import "github.com/vovakirdan/depthscraper/internal/games/depthscraper/tower"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string // "moves" or "score"
	Cursor   tower.Position
	Status   string
	TooSmall bool
	Tower    tower.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     g.mode.String(),
		Cursor:   g.cursor,
		Status:   g.status,
		TooSmall: g.tooSmall,
	}
	if g.session != nil {
		snap.Tower = g.session.Snapshot()
	}
	return snap
}
