package solve

import (
	"strings"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/reduce"
	"github.com/ckrueger/catforest/pkg/stats"
)

// Verify certifies a solution independently of the search that produced it:
// every concretely named edge is deleted from a fresh copy of the input,
// finished caterpillars are discarded, and the residue is re-solved with a
// budget of exactly the number of placeholder entries. Prime marks that
// reductions appended to duplicated labels are stripped before lookup.
func Verify(input *graph.Graph, sol graph.Solution, opts Options) bool {
	in := graph.NewInstance(input.Clone(nil), 0)

	byLabel := make(map[string]graph.VertexID, in.G.NumVertices())
	for _, v := range in.G.Vertices() {
		byLabel[in.G.Label(v)] = v
	}

	var placeholders graph.Solution
	for _, entry := range sol {
		if u, v, ok := parseEdgeEntry(in.G, byLabel, entry); ok {
			if e := in.G.FindEdge(u, v); e != graph.NoEdge {
				in.G.DeleteEdge(e)
				continue
			}
		}
		placeholders.Add(entry)
	}

	reduce.TRR6(in)

	in.K = placeholders.Size()
	checker := New(opts, stats.New(), nil)
	newSol, ok := checker.run(in, 0)
	return ok && newSol.Size() == placeholders.Size()
}

// parseEdgeEntry resolves a "u->v" entry to vertex handles, stripping primes.
// Placeholder entries fail to resolve and stay in the residual budget.
func parseEdgeEntry(g *graph.Graph, byLabel map[string]graph.VertexID, entry string) (graph.VertexID, graph.VertexID, bool) {
	i := strings.Index(entry, "->")
	if i < 0 {
		return graph.NoVertex, graph.NoVertex, false
	}
	n1 := strings.ReplaceAll(entry[:i], "'", "")
	n2 := strings.ReplaceAll(entry[i+2:], "'", "")
	u, ok1 := byLabel[n1]
	v, ok2 := byLabel[n2]
	return u, v, ok1 && ok2
}
