package graph

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomIsConnectedSimple(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := Random(12, 5, rng)

	assert.Equal(t, 12, g.NumVertices())
	assert.Equal(t, 11+5, g.NumEdges())

	g.MarkBridges()
	assert.Equal(t, 1, g.CCNumber)

	// simple: no vertex is adjacent to itself or doubly adjacent
	for _, v := range g.Vertices() {
		seen := make(map[VertexID]bool)
		for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
			assert.NotEqual(t, v, g.Head(e))
			assert.False(t, seen[g.Head(e)])
			seen[g.Head(e)] = true
		}
	}
}

func TestRandomClampsExtraEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(4, 100, rng)
	assert.Equal(t, 6, g.NumEdges())
}
