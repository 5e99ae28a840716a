package solver

import (
	"fmt"

	"retrograde/game"
)

// NoDistance is the distance of a draw that comes from perpetual play rather than from a
// drawn terminal position.
const NoDistance = -1

// DefaultMaxDepth bounds the distance of any solved position.
const DefaultMaxDepth = 1 << 24

// Value is the solved result of a position: the outcome for the player to move and the number
// of plies to that outcome under optimal play.
type Value struct {
	Outcome  game.Outcome
	Distance int
}

func (v Value) String() string {
	if v.Distance == NoDistance {
		return fmt.Sprintf("%s (perpetual)", v.Outcome)
	}
	return fmt.Sprintf("%s in %d", v.Outcome, v.Distance)
}

// Reply is the value a predecessor sees when it moves into a position valued v.
func (v Value) Reply() Value {
	return Value{Outcome: v.Outcome.Negate(), Distance: v.Distance + 1}
}

// LossPolicy decides which of two losses a player in a lost position prefers.
type LossPolicy int

const (
	// DelayLoss plays the longest losing line.
	DelayLoss LossPolicy = iota
	// HastenLoss plays the shortest losing line.
	HastenLoss
)

func (p LossPolicy) String() string {
	switch p {
	case DelayLoss:
		return "delay"
	case HastenLoss:
		return "hasten"
	default:
		return fmt.Sprintf("LossPolicy(%d)", int(p))
	}
}

func ParseLossPolicy(s string) (LossPolicy, error) {
	switch s {
	case "delay", "":
		return DelayLoss, nil
	case "hasten":
		return HastenLoss, nil
	}
	return DelayLoss, fmt.Errorf("unknown loss policy %q", s)
}

// Better reports whether a is strictly preferred over b by the player to move. A win beats a
// draw beats a loss; faster wins are preferred; losses are ordered by the policy; draws tie.
func (p LossPolicy) Better(a, b Value) bool {
	if a.Outcome != b.Outcome {
		return a.Outcome > b.Outcome
	}
	switch a.Outcome {
	case game.Win:
		return a.Distance < b.Distance
	case game.Loss:
		if p == HastenLoss {
			return a.Distance < b.Distance
		}
		return a.Distance > b.Distance
	default:
		return false
	}
}
