// Package wordchain is shiritori over a fixed vocabulary: each word must start with the last
// letters of the previous one, words may be repeated, and the player who cannot continue loses.
package wordchain

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"retrograde/fingerprint"
	"retrograde/game"
)

// DefaultOverlap is the number of letters shared by consecutive words.
const DefaultOverlap = 3

// Position is the tail of the last word said; the zero Position is the start of the game,
// before any word.
type Position struct {
	Tail    string
	Started bool
}

type Option func(g *Game)

func WithOverlap(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.overlap = n
		}
	}
}

type Game struct {
	words   []string
	overlap int
	next    map[string][]string // head -> tails, one per word
}

func New(words []string, options ...Option) (*Game, error) {
	g := &Game{words: words, overlap: DefaultOverlap, next: map[string][]string{}}
	for _, option := range options {
		option(g)
	}
	for _, w := range words {
		if len(w) < g.overlap {
			return nil, fmt.Errorf("word %q is shorter than the overlap %d", w, g.overlap)
		}
		head := w[:g.overlap]
		g.next[head] = append(g.next[head], g.tail(w))
	}
	return g, nil
}

func (g *Game) tail(w string) string {
	return w[len(w)-g.overlap:]
}

// After returns the position reached once w has been said.
func (g *Game) After(w string) Position {
	return Position{Tail: g.tail(w), Started: true}
}

func (g *Game) Initial() Position {
	return Position{}
}

func (g *Game) DefaultOutcome() game.Outcome {
	return game.Loss
}

func (g *Game) Successors(p Position) []Position {
	tails := g.next[p.Tail]
	if !p.Started {
		tails = lo.Map(g.words, func(w string, _ int) string { return g.tail(w) })
	}
	return lo.Map(tails, func(t string, _ int) Position {
		return Position{Tail: t, Started: true}
	})
}

func (g *Game) Symmetries(p Position) []Position {
	return []Position{p}
}

func (g *Game) Evaluate(p Position) (game.Outcome, bool) {
	return game.Draw, false
}

var start = fingerprint.Mix(0)

var Hasher = game.HashFunc[Position](func(p Position) game.Hash {
	if !p.Started {
		return start
	}
	return fingerprint.String(p.Tail)
})

// Case is one vocabulary of a batch file.
type Case struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// LoadCases reads a YAML list of vocabularies.
func LoadCases(r io.Reader) ([]Case, error) {
	var cases []Case
	if err := yaml.NewDecoder(r).Decode(&cases); err != nil {
		return nil, fmt.Errorf("failed to decode word chain cases: %w", err)
	}
	for i, c := range cases {
		if c.Name == "" {
			cases[i].Name = fmt.Sprintf("case%d", i+1)
		}
	}
	return cases, nil
}
