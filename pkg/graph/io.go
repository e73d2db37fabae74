package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// =============================================================================
// Edge-list I/O
// =============================================================================

// Read decodes a graph from an edge list: one edge per line as two
// whitespace-separated vertex labels. Duplicate edges and self-loops are
// ignored. Labels are preserved for solution reporting.
func Read(r io.Reader) (*Graph, error) {
	g := New()
	byLabel := make(map[string]VertexID)
	lookup := func(label string) VertexID {
		if v, ok := byLabel[label]; ok {
			return v
		}
		v := g.AddVertex(label)
		byLabel[label] = v
		return v
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var tokens []string
	for sc.Scan() {
		tokens = append(tokens, strings.Fields(sc.Text())...)
		for len(tokens) >= 2 {
			u, v := lookup(tokens[0]), lookup(tokens[1])
			tokens = tokens[2:]
			_, _ = g.AddEdgeChecked(u, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	return g, nil
}

// ReadFile reads an edge-list graph from the given path.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write prints the edge list of g, one edge per line as two space-separated
// vertex labels, the format Read accepts. In verbose mode the vertex and edge counts
// precede the list and permanent (P) and bridge (B) bits are annotated.
func (g *Graph) Write(w io.Writer, verbose bool) error {
	bw := bufio.NewWriter(w)
	if verbose {
		fmt.Fprintf(bw, "number of vertices: %d\n", g.NumVertices())
		fmt.Fprintf(bw, "number of edges: %d\n", g.NumEdges())
	}
	seen := make(map[VertexID]bool, g.NumVertices())
	for _, v := range g.Vertices() {
		seen[v] = true
		for e := g.FirstAdj(v); e != NoEdge; e = g.NextAdj(e) {
			if seen[g.Head(e)] {
				continue
			}
			bw.WriteString(g.Label(v) + " " + g.Label(g.Head(e)))
			if verbose {
				if g.IsPermanent(e) {
					bw.WriteString(" (P)")
				}
				if g.e(e).bridge {
					bw.WriteString(" (B)")
				}
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
