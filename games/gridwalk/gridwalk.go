// Package gridwalk is the LRUD game. A piece sits on an h x w grid. On step i the first player
// may move it one cell in direction s[i] or leave it, then the second player may move it in
// direction t[i] or leave it. The first player wins if the piece leaves the grid; the second
// player wins if it is still on the grid after the last step.
package gridwalk

import (
	"fmt"

	"retrograde/fingerprint"
	"retrograde/game"
)

// Position is the piece's cell (1-based), the step index and the player to move (0 or 1).
type Position struct {
	Row, Col int
	Step     int
	Turn     int
}

var directions = map[byte][2]int{
	'L': {0, -1},
	'R': {0, 1},
	'U': {-1, 0},
	'D': {1, 0},
}

type Game struct {
	h, w  int
	start Position
	s, t  string
}

func New(h, w, row, col int, s, t string) (*Game, error) {
	if h <= 0 || w <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d", h, w)
	}
	if row < 1 || row > h || col < 1 || col > w {
		return nil, fmt.Errorf("start (%d,%d) is off the grid", row, col)
	}
	if len(s) != len(t) {
		return nil, fmt.Errorf("direction scripts differ in length: %d and %d", len(s), len(t))
	}
	for _, script := range []string{s, t} {
		for i := 0; i < len(script); i++ {
			if _, ok := directions[script[i]]; !ok {
				return nil, fmt.Errorf("unknown direction %q", script[i])
			}
		}
	}
	return &Game{h: h, w: w, start: Position{Row: row, Col: col}, s: s, t: t}, nil
}

func (g *Game) Initial() Position {
	return g.start
}

func (g *Game) DefaultOutcome() game.Outcome {
	return game.Loss
}

func (g *Game) Successors(p Position) []Position {
	script, next := g.s, Position{Step: p.Step, Turn: 1}
	if p.Turn == 1 {
		script, next = g.t, Position{Step: p.Step + 1, Turn: 0}
	}
	d := directions[script[p.Step]]

	stay, move := next, next
	stay.Row, stay.Col = p.Row, p.Col
	move.Row, move.Col = p.Row+d[0], p.Col+d[1]
	return []Position{stay, move}
}

func (g *Game) Symmetries(p Position) []Position {
	return []Position{p}
}

func (g *Game) onGrid(p Position) bool {
	return p.Row >= 1 && p.Row <= g.h && p.Col >= 1 && p.Col <= g.w
}

func (g *Game) Evaluate(p Position) (game.Outcome, bool) {
	if !g.onGrid(p) {
		if p.Turn == 0 {
			return game.Win, true
		}
		return game.Loss, true
	}
	if p.Step == len(g.s) {
		if p.Turn == 0 {
			return game.Loss, true
		}
		return game.Win, true
	}
	return game.Draw, false
}

var Hasher = game.HashFunc[Position](func(p Position) game.Hash {
	return fingerprint.Combine(uint64(p.Row), uint64(p.Col), uint64(p.Step), uint64(p.Turn))
})
