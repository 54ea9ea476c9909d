package tower

// Challenge is the current bonus objective: grow a group of Color to at
// least TargetSize to earn RewardMoves.
type Challenge struct {
	Color       Color
	TargetSize  int
	RewardMoves int
}

// ChallengeOptions configures challenge generation.
type ChallengeOptions struct {
	Baseline     int // Added to every target
	SizeJitter   int // Target gets a uniform bonus in [0, SizeJitter]
	RewardJitter int // Reward gets a uniform bonus in [0, RewardJitter]
}

// DefaultChallengeOptions returns the reference tuning.
func DefaultChallengeOptions() ChallengeOptions {
	return ChallengeOptions{
		Baseline:     5,
		SizeJitter:   5,
		RewardJitter: 3,
	}
}

// GenerateChallenge picks a color uniformly and sets the target above the
// largest open group of that color.
func GenerateChallenge(rng Rand, groups *GroupRegistry, opts ChallengeOptions) Challenge {
	colors := Colors()
	color := colors[rng.Intn(len(colors))]

	largest := 0
	if groups != nil {
		largest = groups.LargestOpen(color)
	}

	target := rng.Intn(max(opts.SizeJitter, 0)+1) + opts.Baseline + largest
	reward := target + rng.Intn(max(opts.RewardJitter, 0)+1)

	return Challenge{
		Color:       color,
		TargetSize:  target,
		RewardMoves: reward,
	}
}

// SatisfiedBy reports whether a group that is still open, or that completed
// on this move, matches the challenge.
func (c Challenge) SatisfiedBy(groups *GroupRegistry, move int) bool {
	for _, g := range groups.Groups() {
		if g.Completed && g.CompletedAtMove != move {
			continue
		}
		if g.Color == c.Color && g.Size() >= c.TargetSize {
			return true
		}
	}
	return false
}
