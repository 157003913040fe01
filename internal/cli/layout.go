package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgeo/pkg/graph"
	"github.com/matzehuels/mindgeo/pkg/pipeline"
)

// runFlags are shared by every command that runs the pipeline.
type runFlags struct {
	output  string
	noCache bool
	strict  bool
	refresh bool
}

func (f *runFlags) register(cmd *cobra.Command, suffix string) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>."+suffix+".json, or stdout when reading stdin)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject snapshots with dangling references or cycles")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

func (f *runFlags) apply(opts *pipeline.Options) {
	opts.Strict = f.strict
	opts.Refresh = f.refresh
}

// layoutCommand creates the layout command for arranging a tree.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		root  string
		run   runFlags
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [snapshot.json]",
		Short: "Arrange a tree in horizontal, vertical or radial mode",
		Long: `Arrange the tree hanging off a root node.

The layout command reads a snapshot (nodes and edges as JSON), positions every
node reachable from the root and re-resolves the sides of all edges. Use "-"
to read the snapshot from stdin.

When the snapshot holds several trees and --root is omitted, an interactive
picker is shown if the terminal allows it.

Results are cached; see 'mindgeo cache'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Root = root
			run.apply(&opts)
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args[0], opts, run)
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "root node id (default: the only root)")
	run.register(cmd, "layout")
	flags.register(cmd)

	return cmd
}

// runLayout loads the snapshot, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, run runFlags) error {
	prog := newProgress(loggerFromContext(ctx))
	snap, err := readSnapshot(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	if opts.Root == "" && input != stdio && len(graph.NewIndex(snap).Roots()) > 1 && interactive() {
		if opts.Root, err = pickRoot(snap); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, run.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	out := outputPath(input, run.output, "layout")
	prepareOutput(out)

	sp := startSpinner(ctx, fmt.Sprintf("Computing %s layout...", opts.Layout.Mode))

	res, err := runner.Layout(ctx, snap, opts)
	if err != nil {
		sp.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	if sp.Interrupted() {
		sp.Stop()
		return ctx.Err()
	}

	if err := writeSnapshot(res.Snapshot, out); err != nil {
		sp.StopWithError("Write failed")
		return fmt.Errorf("write output %s: %w", out, err)
	}

	prog.done("wrote " + out)

	sp.StopWithSuccess("Layout complete in %s", res.Stats.Duration.Round(time.Millisecond))
	if out != stdio {
		printFile(out)
	}
	printDetail("root %s · %d moved · %d edges re-sided", res.Root, len(res.Moved), len(res.ChangedEdges))
	printStats(res.Stats)
	reportWarnings(res.Warnings)
	if out != stdio {
		printNewline()
		printNextStep("Fix edges after editing", "mindgeo edges "+out)
	}

	return nil
}
