package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/stats"
)

func cycle(labels ...string) [][2]string {
	var edges [][2]string
	for i := range labels {
		edges = append(edges, [2]string{labels[i], labels[(i+1)%len(labels)]})
	}
	return edges
}

func TestGatherPathInfoOnCycle(t *testing.T) {
	in, vs := build(t, 10, cycle("a", "b", "c", "d", "e"))
	g := in.G
	UpdateClassification(in, stats.New())

	mark := g.NextMark()
	g.SetMark(vs["a"], mark)
	e := findFirstPath(g, vs["a"], mark)
	require.NotEqual(t, graph.NoEdge, e)

	info := gatherPathInfo(g, e, mark)
	assert.True(t, info.Valid)
	assert.True(t, info.IsCycle(g))
	assert.Equal(t, 5, info.Length)
	assert.Empty(t, info.Generators)
	assert.Empty(t, info.PendantYs)
	// bare inner cycle vertices all qualify as separators
	assert.Len(t, info.Separators, 4)
}

func TestApplyPRRsSolvesPlainCycle(t *testing.T) {
	in, _ := build(t, 10, cycle("a", "b", "c", "d", "e"))
	st := stats.New()
	var infos []*PathInfo
	sol := ApplyPRRs(in, st, 30, &infos)

	assert.True(t, in.G.Empty())
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
}

func TestApplyPRRsSolvesCycleWithPendants(t *testing.T) {
	// a 6-cycle with a P2 hanging off one vertex still needs one deletion
	edges := append(cycle("a", "b", "c", "d", "e", "f"),
		[2]string{"a", "m"}, [2]string{"m", "tip"})
	in, _ := build(t, 10, edges)
	var infos []*PathInfo
	sol := ApplyPRRs(in, stats.New(), 30, &infos)

	assert.True(t, in.G.Empty())
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
}

func TestSplitRule(t *testing.T) {
	// two triangles joined by a long path: a middle bridge is splittable
	edges := append(cycle("a", "b", "c"), cycle("x", "y", "z")...)
	edges = append(edges,
		[2]string{"c", "p1"}, [2]string{"p1", "p2"},
		[2]string{"p2", "p3"}, [2]string{"p3", "x"})
	in, _ := build(t, 10, edges)
	UpdateClassification(in, stats.New())

	before := in.G.NumEdges()
	assert.True(t, ApplySplitRule(in))
	// an edge was replaced by a pendant leaf edge, no budget spent
	assert.Equal(t, before, in.G.NumEdges())
	assert.Equal(t, 10, in.K)
	in.G.MarkBridges()
	assert.Equal(t, 2, in.G.CCNumber)
}

func TestExistsGenFreePath(t *testing.T) {
	in, vs := build(t, 10, cycle("a", "b", "c", "d"))
	g := in.G
	UpdateClassification(in, stats.New())

	assert.True(t, ExistsGenFreePath(g, vs["a"], vs["c"], graph.NoVertex))
	// forbidding b leaves the detour through d
	assert.True(t, ExistsGenFreePath(g, vs["a"], vs["c"], vs["b"]))

	// a P2 at d makes d a generator and blocks that detour
	m := g.AddVertex("m")
	tip := g.AddVertex("tip")
	g.AddEdge(vs["d"], m)
	g.AddEdge(m, tip)
	g.SubtreesFresh = false
	UpdateClassification(in, stats.New())
	assert.False(t, ExistsGenFreePath(g, vs["a"], vs["c"], vs["b"]))
}

func TestTRR3GenYgraphifiesCoreNeighbors(t *testing.T) {
	// v on a triangle with two P2 pendants pins the backbone through v
	in, vs := build(t, 10, triangleWith(
		[2]string{"v", "m1"}, [2]string{"m1", "t1"},
		[2]string{"v", "m2"}, [2]string{"m2", "t2"},
	))
	st := stats.New()
	UpdateClassification(in, st)

	var sol graph.Solution
	require.True(t, TRR3Gen(in, st, vs["v"], &sol))

	g := in.G
	// v keeps only its P2s; the cyclic edges were replaced by Y-pendants at
	// the far ends, and the tree rules already collapsed the first of them
	// into a 2-claw cut
	assert.False(t, g.Adjacent(vs["v"], vs["u"]))
	assert.False(t, g.Adjacent(vs["v"], vs["w"]))
	assert.Len(t, g.Pend(vs["v"]).PTwos, 2)
	assert.True(t, g.PendantIsY(vs["w"]))
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
}

func TestYLookaheadCutsOversizedY(t *testing.T) {
	// v carries a Y-pendant and three core edges; an upper bound of 2 makes
	// keeping the Y impossible
	in, vs := build(t, 10, [][2]string{
		{"v", "a"}, {"v", "b"}, {"v", "c"},
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"v", "y"},
		{"y", "m1"}, {"m1", "t1"},
		{"y", "m2"}, {"m2", "t2"},
	})
	st := stats.New()
	UpdateClassification(in, st)
	require.True(t, in.G.PendantIsY(vs["v"]))

	var sol graph.Solution
	assert.True(t, YLookaheadAt(in, st, &sol, vs["v"], 2))
	assert.Empty(t, in.G.Pend(vs["v"]).YGraphs)
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
	assert.Positive(t, st.RuleCount(stats.YLookahead))
}
