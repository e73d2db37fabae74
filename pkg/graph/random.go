package graph

import (
	"math/rand"
	"strconv"
)

// Random generates a connected graph with n vertices and m edges beyond the
// random spanning tree: every vertex i > 0 is attached to a uniformly chosen
// earlier vertex, then m additional chords are inserted, rejecting self-loops
// and parallel edges. m is clamped so the simple graph can accommodate it.
// Vertices are labelled "0".."n-1".
func Random(n, m int, rng *rand.Rand) *Graph {
	g := New()
	if n == 0 {
		return g
	}
	if maxExtra := n*(n-1)/2 - (n - 1); m > maxExtra {
		m = maxExtra
	}
	verts := make([]VertexID, n)
	verts[0] = g.AddVertex("0")
	for i := 1; i < n; i++ {
		verts[i] = g.AddVertex(strconv.Itoa(i))
		g.AddEdge(verts[i], verts[rng.Intn(i)])
	}
	for added := 0; added < m; {
		u := verts[rng.Intn(n)]
		v := verts[rng.Intn(n)]
		if _, err := g.AddEdgeChecked(u, v); err == nil {
			added++
		}
	}
	return g
}
