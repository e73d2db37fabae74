package cli

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ckrueger/catforest/pkg/graph"
	"github.com/ckrueger/catforest/pkg/solve"
	"github.com/ckrueger/catforest/pkg/stats"
)

// errNoInput is returned when neither an input file nor --rand is given.
var errNoInput = errors.New("need an input file or --rand")

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		randSpec  string
		seed      int64
		config    string
		statsLine bool
	)
	opts := solve.DefaultOptions()
	flagVals := solve.DefaultOptions()
	bb := true

	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Solve a minimum caterpillar-forest edge-deletion instance",
		Long: `Solve reads an edge list (one edge per line, two whitespace-separated
vertex labels; duplicates and self-loops are ignored) or generates a random
connected instance, runs the exact branch-and-reduce search, verifies the
result, and prints "solution: <list> size: <k>".

Statistics are written to stderr regardless of the outcome.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config != "" {
				if err := loadOptionsFile(config, &opts); err != nil {
					return err
				}
			}
			// flags override the profile
			if cmd.Flags().Changed("lbmod") {
				opts.SlowLowerBoundEvery = flagVals.SlowLowerBoundEvery
			}
			if cmd.Flags().Changed("yl") {
				opts.YLookaheadMax = flagVals.YLookaheadMax
			}
			if cmd.Flags().Changed("cache") {
				opts.UseSolutionCache = flagVals.UseSolutionCache
			}
			if cmd.Flags().Changed("bb") || config == "" {
				opts.UseBBridgeRule = bb
			}

			g, err := readInput(args, randSpec, seed)
			if err != nil {
				return err
			}
			return c.runSolve(cmd, g, opts, statsLine)
		},
	}

	cmd.Flags().StringVar(&randSpec, "rand", "", "generate a random connected graph: <vertices>,<additional edges>")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for --rand (0 = time-based)")
	cmd.Flags().IntVar(&flagVals.SlowLowerBoundEvery, "lbmod", flagVals.SlowLowerBoundEvery, "apply the slower lower bound every x layers")
	cmd.Flags().BoolVar(&bb, "bb", true, "apply the B-bridge branching rule")
	cmd.Flags().IntVar(&flagVals.YLookaheadMax, "yl", flagVals.YLookaheadMax, "perform the Y-lookahead while the graph has fewer than x vertices")
	cmd.Flags().BoolVar(&flagVals.UseSolutionCache, "cache", flagVals.UseSolutionCache, "memoize solved subinstances in memory")
	cmd.Flags().StringVar(&config, "config", "", "TOML solver profile (flags override)")
	cmd.Flags().BoolVar(&statsLine, "stats-line", false, "additionally emit the tab-separated statistics line")

	return cmd
}

// readInput loads the instance graph from a file or generates it randomly.
func readInput(args []string, randSpec string, seed int64) (*graph.Graph, error) {
	switch {
	case randSpec != "":
		n, m, err := parseRandSpec(randSpec)
		if err != nil {
			return nil, err
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return graph.Random(n, m, rand.New(rand.NewSource(seed))), nil
	case len(args) == 1:
		return graph.ReadFile(args[0])
	default:
		return nil, errNoInput
	}
}

func parseRandSpec(spec string) (n, m int, err error) {
	parts := strings.SplitN(spec, ",", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed --rand %q: want <vertices>,<additional edges>", spec)
	}
	if n, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
		return 0, 0, fmt.Errorf("malformed --rand %q: %w", spec, err)
	}
	if m, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
		return 0, 0, fmt.Errorf("malformed --rand %q: %w", spec, err)
	}
	return n, m, nil
}

// runSolve drives one solve: upper bound, search, verification, report.
func (c *CLI) runSolve(cmd *cobra.Command, g *graph.Graph, opts solve.Options, statsLine bool) error {
	logger := loggerFromContext(cmd.Context())

	pristine := g.Clone(nil)
	in := graph.NewInstance(g, math.MaxInt/2)

	st := stats.New()
	st.InputVertices = g.NumVertices()
	st.InputEdges = g.NumEdges()
	st.InputFES = g.FES()
	logger.Debug("instance loaded", "vertices", st.InputVertices, "edges", st.InputEdges, "fes", st.InputFES)

	// seed the budget with a greedy feasible solution
	ub := solve.UpperBound(in)
	in.K = ub.Size()
	logger.Debug("greedy upper bound", "size", in.K)

	solver := solve.New(opts, st, logger)
	prog := newProgress(logger)
	sol, ok := solver.Solve(in)
	prog.done("search finished", "nodes", st.SearchTreeNodes, "depth", st.SearchTreeDepth)

	st.Dump(os.Stderr)
	if statsLine {
		st.DumpParserFriendly(os.Stderr)
	}

	if !ok {
		return fmt.Errorf("search failed within budget %d", ub.Size())
	}
	if !solve.Verify(pristine, sol, opts) {
		return fmt.Errorf("verification failed for size-%d solution", sol.Size())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "solution: %s size: %d\n", sol, sol.Size())
	return nil
}
