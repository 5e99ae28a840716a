// Package tokengraph is a token game on a directed graph: the player to move slides the token
// along one outgoing edge. Vertices may be terminal with a fixed result for the player to move.
package tokengraph

import (
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"retrograde/fingerprint"
	"retrograde/game"
)

// Spec describes a graph as written in YAML:
//
//	start: a
//	default: loss
//	vertices:
//	  - name: a
//	    edges: [b]
//	  - name: b
//	    terminal: win
type Spec struct {
	Start    string       `yaml:"start"`
	Default  game.Outcome `yaml:"default"`
	Vertices []Vertex     `yaml:"vertices"`
}

type Vertex struct {
	Name     string        `yaml:"name"`
	Edges    []string      `yaml:"edges"`
	Terminal *game.Outcome `yaml:"terminal"`
}

type Game struct {
	names     []string
	ids       map[string]int
	edges     [][]int
	terminal  []*game.Outcome
	start     int
	stalemate game.Outcome
}

// Load reads a Spec from YAML.
func Load(r io.Reader) (*Game, error) {
	var spec Spec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return New(spec)
}

func New(spec Spec) (*Game, error) {
	g := &Game{
		ids:       map[string]int{},
		stalemate: spec.Default,
	}
	for i, v := range spec.Vertices {
		if _, ok := g.ids[v.Name]; ok {
			return nil, fmt.Errorf("duplicate vertex %q", v.Name)
		}
		g.ids[v.Name] = i
		g.names = append(g.names, v.Name)
		g.terminal = append(g.terminal, v.Terminal)
	}
	for _, v := range spec.Vertices {
		unknown := lo.Filter(v.Edges, func(to string, _ int) bool {
			_, ok := g.ids[to]
			return !ok
		})
		if len(unknown) > 0 {
			return nil, fmt.Errorf("vertex %q has edges to unknown vertices %v", v.Name, unknown)
		}
		g.edges = append(g.edges, lo.Map(v.Edges, func(to string, _ int) int {
			return g.ids[to]
		}))
	}
	start, ok := g.ids[spec.Start]
	if !ok {
		return nil, fmt.Errorf("unknown start vertex %q", spec.Start)
	}
	g.start = start
	return g, nil
}

// Vertex returns the position of the token on the named vertex.
func (g *Game) Vertex(name string) (int, bool) {
	id, ok := g.ids[name]
	return id, ok
}

func (g *Game) Name(v int) string {
	return g.names[v]
}

func (g *Game) Names() []string {
	return g.names
}

func (g *Game) Initial() int {
	return g.start
}

func (g *Game) DefaultOutcome() game.Outcome {
	return g.stalemate
}

func (g *Game) Successors(v int) []int {
	return slices.Clone(g.edges[v])
}

func (g *Game) Symmetries(v int) []int {
	return []int{v}
}

func (g *Game) Evaluate(v int) (game.Outcome, bool) {
	if t := g.terminal[v]; t != nil {
		return *t, true
	}
	return game.Draw, false
}

var Hasher = game.HashFunc[int](func(v int) game.Hash {
	return fingerprint.Mix(uint64(v))
})
