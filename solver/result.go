package solver

import (
	"cmp"
	"slices"

	"retrograde/game"
	"retrograde/metrics"
)

// Result is a read-only index from fingerprints to solved values.
type Result[P any] struct {
	hasher game.Hasher[P]
	index  map[game.Hash]int32
	values []Value
	metric metrics.SolveMetric
}

// Entry is one fingerprint of a solved node. Symmetric images of a node share its Node number.
type Entry struct {
	Hash  game.Hash
	Node  int
	Value Value
}

// Lookup returns the value of p, or false if p was never reached while solving.
func (r *Result[P]) Lookup(p P) (Value, bool) {
	return r.LookupHash(r.hasher.Hash(p))
}

// Fingerprint hashes p the way the solve did.
func (r *Result[P]) Fingerprint(p P) game.Hash {
	return r.hasher.Hash(p)
}

func (r *Result[P]) LookupHash(h game.Hash) (Value, bool) {
	idx, ok := r.index[h]
	if !ok {
		return Value{}, false
	}
	return r.values[idx], true
}

// Len returns the number of distinct nodes.
func (r *Result[P]) Len() int {
	return len(r.values)
}

func (r *Result[P]) Metric() metrics.SolveMetric {
	return r.metric
}

// Entries lists every fingerprint, sorted by hash.
func (r *Result[P]) Entries() []Entry {
	entries := make([]Entry, 0, len(r.index))
	for h, idx := range r.index {
		entries = append(entries, Entry{Hash: h, Node: int(idx), Value: r.values[idx]})
	}
	SortEntries(entries)
	return entries
}

// SortEntries orders entries by hash.
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Hash, b.Hash)
	})
}

// Restore rebuilds a Result from persisted entries. hasher must fingerprint positions the same
// way as the solve that produced them.
func Restore[P any](hasher game.Hasher[P], entries []Entry) (*Result[P], error) {
	r := &Result[P]{hasher: hasher, index: make(map[game.Hash]int32, len(entries))}
	nodes := 0
	for _, e := range entries {
		nodes = max(nodes, e.Node+1)
	}
	r.values = make([]Value, nodes)
	seen := make([]bool, nodes)
	for _, e := range entries {
		if e.Node < 0 {
			return nil, invariant(int32(e.Node), "negative node in entry %#x", uint64(e.Hash))
		}
		if seen[e.Node] && r.values[e.Node] != e.Value {
			return nil, invariant(int32(e.Node), "entries disagree on value")
		}
		if prev, ok := r.index[e.Hash]; ok && prev != int32(e.Node) {
			return nil, invariant(int32(e.Node), "fingerprint %#x also maps to node %d", uint64(e.Hash), prev)
		}
		seen[e.Node] = true
		r.values[e.Node] = e.Value
		r.index[e.Hash] = int32(e.Node)
	}
	for i, ok := range seen {
		if !ok {
			return nil, invariant(int32(i), "node has no fingerprint")
		}
	}
	return r, nil
}
