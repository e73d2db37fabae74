package solve

// Options tune the search driver. The zero value is not meaningful - start
// from [DefaultOptions]. All fields can be loaded from a TOML profile; flags
// override file values.
type Options struct {
	// FastLowerBoundEvery applies the FES lower bound on every recursion
	// layer whose depth is divisible by it.
	FastLowerBoundEvery int `toml:"fast_lower_bound_every"`

	// SlowLowerBoundEvery applies the star-packing lower bound on every
	// recursion layer whose depth is divisible by it.
	SlowLowerBoundEvery int `toml:"slow_lower_bound_every"`

	// UseBBridgeRule enables the B-bridge branching rule.
	UseBBridgeRule bool `toml:"use_bbridge_rule"`

	// ElaborateBranchSelection disables the early exit during branching-rule
	// collection, always weighing every candidate operation.
	ElaborateBranchSelection bool `toml:"elaborate_branch_selection"`

	// KeepSearchingAboveBnum keeps collecting branching operations as long
	// as the best branching number found so far exceeds this threshold.
	KeepSearchingAboveBnum float64 `toml:"keep_searching_above_bnum"`

	// YLookaheadMax performs the Y-lookahead while the graph has fewer than
	// this many vertices.
	YLookaheadMax int `toml:"y_lookahead_max"`

	// UseSolutionCache memoizes optimal solutions of subinstances, keyed by
	// a structural hash and guarded by full graph equality.
	UseSolutionCache bool `toml:"use_solution_cache"`
}

// DefaultOptions returns the solver defaults.
func DefaultOptions() Options {
	return Options{
		FastLowerBoundEvery:      1,
		SlowLowerBoundEvery:      8,
		UseBBridgeRule:           true,
		ElaborateBranchSelection: false,
		KeepSearchingAboveBnum:   2.5,
		YLookaheadMax:            30,
		UseSolutionCache:         false,
	}
}
