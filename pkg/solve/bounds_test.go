package solve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckrueger/catforest/pkg/graph"
)

// build constructs an instance from label pairs with the given budget.
func build(t *testing.T, k int, edges [][2]string) (*graph.Instance, map[string]graph.VertexID) {
	t.Helper()
	g := graph.New()
	byLabel := make(map[string]graph.VertexID)
	lookup := func(l string) graph.VertexID {
		if v, ok := byLabel[l]; ok {
			return v
		}
		v := g.AddVertex(l)
		byLabel[l] = v
		return v
	}
	for _, e := range edges {
		g.AddEdge(lookup(e[0]), lookup(e[1]))
	}
	return graph.NewInstance(g, k), byLabel
}

func TestStarPackingSpider(t *testing.T) {
	// a 2-claw with three rays forces one deletion
	in, _ := build(t, 0, [][2]string{
		{"c", "m1"}, {"m1", "t1"},
		{"c", "m2"}, {"m2", "t2"},
		{"c", "m3"}, {"m3", "t3"},
	})
	assert.Equal(t, 1, starPacking(in.G))
	// the bound works on a copy
	assert.Equal(t, 6, in.G.NumEdges())
}

func TestLowerBoundCombinesFESAndStars(t *testing.T) {
	in, _ := build(t, 0, [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}, {"c", "d"},
	})
	s := New(DefaultOptions(), nil, nil)
	// at depth 0 both cadences hit; the FES dominates the star packing here
	assert.Equal(t, 3, s.lowerBound(in.G, 0))
}

func TestUpperBoundTriangle(t *testing.T) {
	in, _ := build(t, math.MaxInt/2, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	ub := UpperBound(in)
	require.NotNil(t, ub)
	// every vertex already has nldeg 2; only the FES placeholder is charged
	assert.Equal(t, 1, ub.Size())
	assert.Equal(t, graph.Solution{graph.FESPlaceholder}, ub)
}

func TestUpperBoundIsFeasible(t *testing.T) {
	in, _ := build(t, math.MaxInt/2, [][2]string{
		{"a", "b"}, {"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}, {"c", "d"},
	})
	ub := UpperBound(in)
	require.NotNil(t, ub)
	// feasible means at least the lower bound
	assert.GreaterOrEqual(t, ub.Size(), 3)
	// the instance itself is untouched
	assert.Equal(t, 6, in.G.NumEdges())
}
