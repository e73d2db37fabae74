package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/stats"
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

// triangleWith returns a triangle u-v-w plus the given extra edges.
func triangleWith(extra ...[2]string) [][2]string {
	edges := [][2]string{{"u", "v"}, {"v", "w"}, {"w", "u"}}
	return append(edges, extra...)
}

func TestClassificationP2AndLeaf(t *testing.T) {
	// v on a triangle with one leaf and one P2 pendant
	in, vs := build(t, 10, triangleWith(
		[2]string{"v", "leaf"},
		[2]string{"v", "mid"}, [2]string{"mid", "tip"},
	))
	st := stats.New()
	sol := UpdateClassification(in, st)

	g := in.G
	assert.Empty(t, sol)
	assert.Equal(t, 10, in.K)

	p := g.Pend(vs["v"])
	require.Len(t, p.PTwos, 1)
	assert.Equal(t, vs["mid"], g.Head(p.PTwos[0]))
	// TRR1: the P2 makes the plain leaf redundant
	assert.Empty(t, p.Leaves)
	assert.False(t, g.Alive(vs["leaf"]))

	// derived predicates
	assert.True(t, g.OnCyclicCore(vs["v"]))
	assert.Equal(t, 2, g.CycCoreDegree(vs["v"]))
	assert.True(t, g.IsGenerator(vs["v"]))
	assert.True(t, g.OnBackbone(vs["v"]))

	// the pendant edges are pinned
	assert.True(t, g.IsPermanent(g.FindEdge(vs["v"], vs["mid"])))
	assert.True(t, g.IsPermanent(g.FindEdge(vs["mid"], vs["tip"])))
}

func TestClassificationYGraph(t *testing.T) {
	// v carries a Y-pendant: center y with two P2s
	in, vs := build(t, 10, triangleWith(
		[2]string{"v", "y"},
		[2]string{"y", "m1"}, [2]string{"m1", "t1"},
		[2]string{"y", "m2"}, [2]string{"m2", "t2"},
	))
	sol := UpdateClassification(in, stats.New())

	g := in.G
	assert.Empty(t, sol)
	p := g.Pend(vs["v"])
	require.Len(t, p.YGraphs, 1)
	assert.Equal(t, vs["y"], g.Head(p.YGraphs[0]))
	assert.True(t, g.PendantIsY(vs["v"]))
	assert.False(t, g.OnBackbone(vs["v"]))
	assert.Len(t, g.Pend(vs["y"]).PTwos, 2)
}

func TestTRR1KeepsOneLeaf(t *testing.T) {
	in, vs := build(t, 10, triangleWith(
		[2]string{"v", "l1"}, [2]string{"v", "l2"}, [2]string{"v", "l3"},
	))
	st := stats.New()
	UpdateClassification(in, st)

	g := in.G
	assert.Len(t, g.Pend(vs["v"]).Leaves, 1)
	assert.Equal(t, 4, g.NumVertices()) // triangle plus one surviving leaf
	assert.Equal(t, 10, in.K)
	assert.Positive(t, st.RuleCount(stats.TRR1))
}

func TestTRR2CutsRedundantYs(t *testing.T) {
	edges := triangleWith()
	for _, y := range []string{"y1", "y2"} {
		edges = append(edges,
			[2]string{"v", y},
			[2]string{y, y + "m1"}, [2]string{y + "m1", y + "t1"},
			[2]string{y, y + "m2"}, [2]string{y + "m2", y + "t2"},
		)
	}
	in, vs := build(t, 10, edges)
	st := stats.New()
	sol := UpdateClassification(in, st)

	g := in.G
	assert.Len(t, g.Pend(vs["v"]).YGraphs, 1)
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
	assert.Positive(t, st.RuleCount(stats.TRR2))
}

func TestTRR3KeepsTwoP2s(t *testing.T) {
	edges := triangleWith()
	for _, m := range []string{"m1", "m2", "m3", "m4"} {
		edges = append(edges, [2]string{"v", m}, [2]string{m, m + "t"})
	}
	in, vs := build(t, 10, edges)
	st := stats.New()
	sol := UpdateClassification(in, st)

	g := in.G
	assert.Len(t, g.Pend(vs["v"]).PTwos, 2)
	assert.Equal(t, 8, in.K)
	assert.Equal(t, 2, sol.Size())
	for _, entry := range sol {
		assert.Equal(t, graph.PlaceholderAt("v"), entry)
	}
	assert.Equal(t, 2, st.RuleCount(stats.TRR3))
}

func TestTRR5CutsTwoClaw(t *testing.T) {
	// v - w - y where y is a Y-center: w registers as a 2-claw at v
	in, vs := build(t, 10, triangleWith(
		[2]string{"v", "cw"},
		[2]string{"cw", "y"},
		[2]string{"y", "m1"}, [2]string{"m1", "t1"},
		[2]string{"y", "m2"}, [2]string{"m2", "t2"},
	))
	st := stats.New()
	sol := UpdateClassification(in, st)

	g := in.G
	assert.Empty(t, g.Pend(vs["v"]).TClaws)
	assert.False(t, g.Alive(vs["cw"]))
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
	assert.Positive(t, st.RuleCount(stats.TRR5))
}

func TestTRR6RemovesCaterpillars(t *testing.T) {
	in, _ := build(t, 10, [][2]string{
		{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "e"}, // a path
		{"u", "v"}, {"v", "w"}, {"w", "u"}, // a triangle survives
	})
	UpdateClassification(in, stats.New())
	changed := TRR6(in)

	assert.True(t, changed)
	assert.Equal(t, 3, in.G.NumVertices())
	assert.Equal(t, 10, in.K)
}

func TestTRR6KeepsProtectedComponents(t *testing.T) {
	in, vs := build(t, 10, [][2]string{{"a", "b"}, {"b", "c"}})
	in.G.SetProtected(vs["b"], true)
	UpdateClassification(in, stats.New())
	// TRR1 may trim a redundant leaf, but the protected component survives
	assert.False(t, TRR6(in))
	assert.True(t, in.G.Alive(vs["b"]))
	assert.GreaterOrEqual(t, in.G.NumVertices(), 2)
}

func TestApplyTRRsSolvesSpider(t *testing.T) {
	// a 2-claw: center with three legs of length two needs one deletion
	in, _ := build(t, 10, [][2]string{
		{"c", "m1"}, {"m1", "t1"},
		{"c", "m2"}, {"m2", "t2"},
		{"c", "m3"}, {"m3", "t3"},
	})
	sol := ApplyTRRs(in, stats.New())

	assert.True(t, in.G.Empty())
	assert.Equal(t, 9, in.K)
	assert.Equal(t, 1, sol.Size())
}

func TestApplyTRRsLeavesBudgetOnCaterpillar(t *testing.T) {
	// a Y-shaped caterpillar: two P2s plus a leaf at the center
	in, _ := build(t, 10, [][2]string{
		{"c", "m1"}, {"m1", "t1"},
		{"c", "m2"}, {"m2", "t2"},
		{"c", "leaf"},
	})
	sol := ApplyTRRs(in, stats.New())

	assert.True(t, in.G.Empty())
	assert.Equal(t, 10, in.K)
	assert.Empty(t, sol)
}
