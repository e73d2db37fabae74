// Package cache memoizes optimal solutions of solver subinstances.
//
// Entries are keyed by a cheap structural hash of the graph and guarded by
// full labelled-graph equality, so a hash collision can never return a wrong
// solution. Entries are read-only once inserted and live in memory only;
// nothing persists between invocations.
//
// Backends:
//   - Memory: bounded in-memory store, whole hash buckets evicted oldest first
//   - Null: a no-op cache for when memoization is disabled
package cache

import (
	"github.com/ckrueger/catforest/pkg/graph"
)

// DefaultMaxEntries bounds the memory cache unless a size is chosen
// explicitly.
const DefaultMaxEntries = 1 << 16

// Cache stores optimal solutions by graph.
type Cache interface {
	// Lookup returns the stored optimal solution for a graph equal to g.
	Lookup(g *graph.Graph) (graph.Solution, bool)

	// Insert stores the optimal solution for g. The graph is snapshotted by
	// the caller and must not be mutated afterwards.
	Insert(g *graph.Graph, sol graph.Solution)
}

// =============================================================================
// Memory cache
// =============================================================================

type entry struct {
	g   *graph.Graph
	sol graph.Solution
}

// Memory is a bounded in-memory cache. When full it evicts whole hash
// buckets, in the order in which each hash was first inserted.
type Memory struct {
	max     int
	entries map[uint32][]entry
	order   []uint32 // insertion order of hash keys, for eviction
	size    int
}

// NewMemory creates a memory cache holding at most maxEntries solutions.
func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Memory{max: maxEntries, entries: make(map[uint32][]entry)}
}

// Lookup finds an entry whose graph equals g.
func (c *Memory) Lookup(g *graph.Graph) (graph.Solution, bool) {
	for _, e := range c.entries[g.Hash()] {
		if e.g.Equal(g) {
			// hand out a copy; entries are immutable
			return append(graph.Solution(nil), e.sol...), true
		}
	}
	return nil, false
}

// Insert stores the solution, evicting the oldest hash bucket when full.
func (c *Memory) Insert(g *graph.Graph, sol graph.Solution) {
	h := g.Hash()
	for _, e := range c.entries[h] {
		if e.g.Equal(g) {
			return
		}
	}
	for c.size >= c.max && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if bucket, ok := c.entries[oldest]; ok {
			c.size -= len(bucket)
			delete(c.entries, oldest)
		}
	}
	if _, ok := c.entries[h]; !ok {
		c.order = append(c.order, h)
	}
	c.entries[h] = append(c.entries[h], entry{g: g, sol: append(graph.Solution(nil), sol...)})
	c.size++
}

// Len returns the number of stored solutions.
func (c *Memory) Len() int { return c.size }

// =============================================================================
// Null cache
// =============================================================================

// Null never stores anything.
type Null struct{}

// NewNull creates a null cache.
func NewNull() *Null { return &Null{} }

// Lookup always misses.
func (*Null) Lookup(*graph.Graph) (graph.Solution, bool) { return nil, false }

// Insert does nothing.
func (*Null) Insert(*graph.Graph, graph.Solution) {}

var (
	_ Cache = (*Memory)(nil)
	_ Cache = (*Null)(nil)
)
