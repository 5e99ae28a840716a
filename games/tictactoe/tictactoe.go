// Package tictactoe is noughts and crosses on a 3x3 board, with the eight board symmetries.
package tictactoe

import (
	"strings"

	"retrograde/fingerprint"
	"retrograde/game"
)

const (
	Empty int8 = iota
	X
	O
)

// Board lists cells row by row.
type Board [9]int8

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// symmetries maps each image cell to its source cell.
var symmetries = [8][9]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8}, // identity
	{6, 3, 0, 7, 4, 1, 8, 5, 2}, // rotate 90
	{8, 7, 6, 5, 4, 3, 2, 1, 0}, // rotate 180
	{2, 5, 8, 1, 4, 7, 0, 3, 6}, // rotate 270
	{2, 1, 0, 5, 4, 3, 8, 7, 6}, // mirror columns
	{6, 7, 8, 3, 4, 5, 0, 1, 2}, // mirror rows
	{0, 3, 6, 1, 4, 7, 2, 5, 8}, // main diagonal
	{8, 5, 2, 7, 4, 1, 6, 3, 0}, // anti diagonal
}

// ToMove returns the mark of the player to move.
func (b Board) ToMove() int8 {
	xs, os := 0, 0
	for _, c := range b {
		switch c {
		case X:
			xs++
		case O:
			os++
		}
	}
	if xs == os {
		return X
	}
	return O
}

func (b Board) won() bool {
	for _, l := range lines {
		if b[l[0]] != Empty && b[l[0]] == b[l[1]] && b[l[1]] == b[l[2]] {
			return true
		}
	}
	return false
}

func (b Board) full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

func (b Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		sb.WriteByte(".XO"[c])
		if i%3 == 2 && i < 8 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// Parse reads a board written as by String, e.g. "X.O/.X./..O".
func Parse(s string) (Board, bool) {
	var b Board
	cells := strings.ReplaceAll(s, "/", "")
	if len(cells) != 9 {
		return b, false
	}
	for i := range cells {
		switch cells[i] {
		case '.':
		case 'X', 'x':
			b[i] = X
		case 'O', 'o':
			b[i] = O
		default:
			return b, false
		}
	}
	return b, true
}

type Option func(g *Game)

// WithoutSymmetry treats rotated and mirrored boards as distinct positions.
func WithoutSymmetry() Option {
	return func(g *Game) {
		g.symmetric = false
	}
}

type Game struct {
	symmetric bool
}

func New(options ...Option) *Game {
	g := &Game{symmetric: true}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *Game) Initial() Board {
	return Board{}
}

func (g *Game) DefaultOutcome() game.Outcome {
	return game.Draw
}

func (g *Game) Successors(b Board) []Board {
	mark := b.ToMove()
	var next []Board
	for i, c := range b {
		if c == Empty {
			n := b
			n[i] = mark
			next = append(next, n)
		}
	}
	return next
}

func (g *Game) Symmetries(b Board) []Board {
	if !g.symmetric {
		return []Board{b}
	}
	images := make([]Board, 0, len(symmetries))
	for _, perm := range symmetries {
		var img Board
		for i, src := range perm {
			img[i] = b[src]
		}
		images = append(images, img)
	}
	return images
}

// Evaluate scores a finished board: a completed line was made by the previous player.
func (g *Game) Evaluate(b Board) (game.Outcome, bool) {
	if b.won() {
		return game.Loss, true
	}
	if b.full() {
		return game.Draw, true
	}
	return game.Draw, false
}

// Hasher fingerprints boards with a zobrist table owned by the hasher.
type Hasher struct {
	z     *fingerprint.Zobrist
	empty game.Hash
}

func NewHasher(options ...fingerprint.Option) *Hasher {
	z := fingerprint.NewZobrist(options...)
	return &Hasher{z: z, empty: z.Hash(make([]int, len(Board{})))}
}

// Hash starts from the empty board and toggles in every mark.
func (h *Hasher) Hash(b Board) game.Hash {
	hash := h.empty
	for i, c := range b {
		if c != Empty {
			hash = h.z.Toggle(hash, i, uint64(Empty), uint64(c))
		}
	}
	return hash
}
