// Package cli implements the catforest command-line interface.
//
// The binary exposes commands for solving minimum caterpillar-forest
// edge-deletion instances, rendering instance graphs, and shell completion.
// The CLI is built with cobra; all commands support --verbose for debug-level
// logging via the charmbracelet/log library, with the logger carried through
// context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ckrueger/catforest/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "catforest"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "Catforest solves minimum caterpillar-forest edge deletion exactly",
		Long:         `Catforest is an exact branch-and-reduce solver: given an undirected simple graph it finds a minimum set of edges whose removal leaves a disjoint union of caterpillars.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.Logger.SetLevel(log.DebugLevel)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.completionCommand())

	return root
}
