package game

import "fmt"

// Outcome is a game result from the perspective of the player to move.
type Outcome int8

const (
	Loss Outcome = -1
	Draw Outcome = 0
	Win  Outcome = +1
)

// Negate returns the outcome seen by the opponent.
func (o Outcome) Negate() Outcome {
	return -o
}

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	case Loss:
		return "loss"
	default:
		return fmt.Sprintf("outcome(%d)", int8(o))
	}
}

// ParseOutcome accepts the names produced by String as well as "+1", "0" and "-1".
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "win", "+1", "1":
		return Win, nil
	case "draw", "0":
		return Draw, nil
	case "loss", "-1":
		return Loss, nil
	}
	return Draw, fmt.Errorf("unknown outcome %q", s)
}

// UnmarshalText lets outcomes be read from YAML and flags.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
