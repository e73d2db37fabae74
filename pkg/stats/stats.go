// Package stats accumulates solver statistics: per-rule application counts,
// per-branching-kind average branching numbers, search-tree size and depth,
// and branching numbers inferred from the tree shape. A Stats value is
// carried through the whole search and dumped to stderr on exit.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/google/uuid"
)

// Rule identifies a reduction rule for counting purposes.
type Rule int

// Reduction rules tracked by the statistics.
const (
	TRR1 Rule = iota
	TRR2
	TRR3
	TRR4
	TRR5
	TRR6
	PRR1
	PRR2
	PRR3
	PRR4
	PRR5
	PRR6
	PRR7
	PRR8
	YLookahead
	numRules
)

var ruleNames = [...]string{"T1", "T2", "T3", "T4", "T5", "T6",
	"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "YL"}

// String returns the short rule tag used in the dump.
func (r Rule) String() string { return ruleNames[r] }

// BranchKind identifies a branching rule for averaging purposes.
type BranchKind int

// Branching kinds tracked by the statistics.
const (
	Triangle BranchKind = iota
	Claw0
	Claw1
	Claw2
	Claw3
	Deg2Path
	Token
	BBridge
	numBranchKinds
)

var branchNames = [...]string{"Triangle", "Claw0", "Claw1", "Claw2", "Claw3",
	"Deg2Path", "Token", "B-bridge"}

// String returns the branching kind name used in the dump.
func (b BranchKind) String() string { return branchNames[b] }

// bnumAvg is a running average: if branching number x occurs a times and y
// occurs b times, the combination is (ax+by)/(a+b) occurring a+b times.
type bnumAvg struct {
	count int
	avg   float64
}

func (p bnumAvg) combine(q bnumAvg) bnumAvg {
	n := p.count + q.count
	if n == 0 {
		return bnumAvg{}
	}
	return bnumAvg{count: n, avg: (p.avg*float64(p.count) + q.avg*float64(q.count)) / float64(n)}
}

// Stats accumulates everything a solver run reports.
type Stats struct {
	RunID string

	InputVertices int
	InputEdges    int
	InputFES      int

	SearchTreeNodes int
	SearchTreeDepth int

	reductions [numRules]int
	branchings [numBranchKinds]bnumAvg
}

// New creates an empty accumulator with a fresh run id.
func New() *Stats {
	return &Stats{RunID: uuid.NewString()}
}

// CountRule records one application of the reduction rule.
func (s *Stats) CountRule(r Rule) { s.reductions[r]++ }

// RuleCount returns the number of recorded applications of the rule.
func (s *Stats) RuleCount(r Rule) int { return s.reductions[r] }

// CountBranching records one application of a branching rule with the given
// branching number.
func (s *Stats) CountBranching(k BranchKind, bnum float64) {
	s.branchings[k] = s.branchings[k].combine(bnumAvg{count: 1, avg: bnum})
}

// EnterNode records one search-tree node at the given depth.
func (s *Stats) EnterNode(depth int) {
	s.SearchTreeNodes++
	if depth > s.SearchTreeDepth {
		s.SearchTreeDepth = depth
	}
}

// AvgBranchingNumber returns the overall average branching number across all
// recorded branchings.
func (s *Stats) AvgBranchingNumber() float64 {
	var accu bnumAvg
	for _, b := range s.branchings {
		accu = accu.combine(b)
	}
	return accu.avg
}

// BnumFromTree returns the branching number x that would create a search tree
// of the given size and depth, the positive root of (x^(d+1)-1)/(x-1) = n,
// found by bracketing.
func BnumFromTree(size, depth int) float64 {
	if size == 0 || depth == 0 {
		return 0
	}
	lower, upper := 0.0, 4.0
	for i := 0; i < 40; i++ {
		x := (lower + upper) / 2
		if (math.Pow(x, float64(depth+1))-1)/(x-1) > float64(size) {
			upper = x
		} else {
			lower = x
		}
	}
	return (lower + upper) / 2
}

// Dump writes the human-readable statistics block.
func (s *Stats) Dump(w io.Writer) {
	fmt.Fprintf(w, "=== statistics (run %s) ===\n", s.RunID)
	fmt.Fprintf(w, "fes: %d ST nodes: %d ST depth: %d\n", s.InputFES, s.SearchTreeNodes, s.SearchTreeDepth)
	fmt.Fprint(w, "Reductions:")
	for r := Rule(0); r < numRules; r++ {
		if s.reductions[r] > 0 {
			fmt.Fprintf(w, " %s:%d", r, s.reductions[r])
		}
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "Branchings:")
	kinds := make([]BranchKind, 0, numBranchKinds)
	for k := BranchKind(0); k < numBranchKinds; k++ {
		if s.branchings[k].count > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	for _, k := range kinds {
		fmt.Fprintf(w, " (%s: %d, %.4f)", k, s.branchings[k].count, s.branchings[k].avg)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall average branching number: %.4f\n", s.AvgBranchingNumber())
	fmt.Fprintf(w, "branching number from ST-size vs depth: %.4f\n", BnumFromTree(s.SearchTreeNodes, s.SearchTreeDepth))
	fmt.Fprintf(w, "branching number from ST-size vs fes: %.4f\n", BnumFromTree(s.SearchTreeNodes, s.InputFES))
}

// DumpParserFriendly writes the tab-separated one-line form consumed by
// benchmark scripts.
func (s *Stats) DumpParserFriendly(w io.Writer) {
	fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d", s.InputVertices, s.InputEdges, s.InputFES, s.SearchTreeNodes, s.SearchTreeDepth)
	for r := Rule(0); r < numRules; r++ {
		fmt.Fprintf(w, "\t%d", s.reductions[r])
	}
	for k := BranchKind(0); k < numBranchKinds; k++ {
		fmt.Fprintf(w, "\t%d\t%.4f", s.branchings[k].count, s.branchings[k].avg)
	}
	fmt.Fprintf(w, "\t%.4f\n", s.AvgBranchingNumber())
}
