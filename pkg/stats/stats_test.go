package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunningAverages(t *testing.T) {
	s := New()
	s.CountBranching(Triangle, 3)
	s.CountBranching(Triangle, 1)
	s.CountBranching(Token, 2)

	assert.InDelta(t, 2.0, s.AvgBranchingNumber(), 1e-9)
}

func TestBnumFromTree(t *testing.T) {
	// a binary tree of depth 2 has 7 nodes: (x^3-1)/(x-1) = 7 at x = 2
	assert.InDelta(t, 2.0, BnumFromTree(7, 2), 1e-3)
	assert.Zero(t, BnumFromTree(0, 5))
	assert.Zero(t, BnumFromTree(5, 0))
}

func TestRuleCounting(t *testing.T) {
	s := New()
	s.CountRule(TRR1)
	s.CountRule(TRR1)
	s.CountRule(PRR5)
	assert.Equal(t, 2, s.RuleCount(TRR1))
	assert.Equal(t, 1, s.RuleCount(PRR5))
	assert.Equal(t, 0, s.RuleCount(TRR6))
}

func TestEnterNodeTracksDepth(t *testing.T) {
	s := New()
	s.EnterNode(0)
	s.EnterNode(3)
	s.EnterNode(1)
	assert.Equal(t, 3, s.SearchTreeNodes)
	assert.Equal(t, 3, s.SearchTreeDepth)
}

func TestDumpMentionsEverything(t *testing.T) {
	s := New()
	s.InputFES = 2
	s.CountRule(TRR3)
	s.CountBranching(Claw1, 1.5)
	s.EnterNode(0)

	var sb strings.Builder
	s.Dump(&sb)
	out := sb.String()
	assert.Contains(t, out, s.RunID)
	assert.Contains(t, out, "T3:1")
	assert.Contains(t, out, "Claw1")

	sb.Reset()
	s.DumpParserFriendly(&sb)
	assert.Equal(t, 1, strings.Count(sb.String(), "\n"))
}
