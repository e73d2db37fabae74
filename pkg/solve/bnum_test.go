package solve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchNumber(t *testing.T) {
	cases := []struct {
		sizes []int
		want  float64
	}{
		{[]int{1, 1}, 2},
		{[]int{1, 1, 1}, 3},
		{[]int{1, 2}, (1 + math.Sqrt(5)) / 2}, // golden ratio
		{[]int{2, 2}, math.Sqrt2},
		{[]int{2, 2, 2}, math.Sqrt(3)},
	}
	for _, c := range cases {
		got := BranchNumber(c.sizes)
		assert.InDelta(t, c.want, got, 1e-4, "sizes %v", c.sizes)

		// the root satisfies the recurrence within 1e-4
		sum := 0.0
		for _, b := range c.sizes {
			sum += math.Pow(got, -float64(b))
		}
		assert.InDelta(t, 1.0, sum, 1e-4, "sizes %v", c.sizes)
	}
}

func TestBranchNumberDegenerate(t *testing.T) {
	assert.Equal(t, 1.0, BranchNumber([]int{5}))
	assert.True(t, math.IsInf(BranchNumber(nil), 1))
	assert.True(t, math.IsInf(BranchNumber([]int{0, 1}), 1))
}

func TestSelectBestBranchOp(t *testing.T) {
	ops := []BranchOp{
		{Kind: 0, Branches: []Branch{{{Del, 1}}, {{Del, 2}}, {{Del, 3}}}}, // bnum 3
		{Kind: 1, Branches: []Branch{{{Del, 1}, {Del, 2}}, {{Del, 3}, {Del, 4}}}}, // bnum sqrt2
	}
	best, bnum := selectBestBranchOp(ops)
	assert.InDelta(t, math.Sqrt2, bnum, 1e-4)
	assert.Len(t, best.Branches, 2)
}
