package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/ckrueger/catforest/pkg/solve"
)

// solverProfile is the TOML layout of a solver options file:
//
//	[solver]
//	slow_lower_bound_every = 8
//	use_bbridge_rule = true
//	y_lookahead_max = 30
//	use_solution_cache = false
type solverProfile struct {
	Solver solve.Options `toml:"solver"`
}

// loadOptionsFile overlays a TOML profile onto opts. Keys absent from the
// file keep their current value.
func loadOptionsFile(path string, opts *solve.Options) error {
	profile := solverProfile{Solver: *opts}
	meta, err := toml.DecodeFile(path, &profile)
	if err != nil {
		return fmt.Errorf("load solver profile %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load solver profile %s: unknown key %q", path, undecoded[0].String())
	}
	*opts = profile.Solver
	return nil
}
