package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgeo/pkg/containment"
	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/pipeline"
	"github.com/matzehuels/mindgeo/pkg/placement"
)

// =============================================================================
// drop
// =============================================================================

// dropCommand creates the drop command for resolving a drag-and-drop.
func (c *CLI) dropCommand() *cobra.Command {
	var (
		x, y  float64
		boxes string
		run   runFlags
	)

	cmd := &cobra.Command{
		Use:   "drop [snapshot.json] [node-id]",
		Short: "Move a node and update which group contains it",
		Long: `Move a node to an absolute position and resolve containment.

The node joins the innermost group under its new top-left corner, or becomes
top-level when it lands on empty canvas. Nodes the dropped node now covers
are adopted. All edge sides are re-resolved afterwards.

Node boxes come from the snapshot unless --boxes names a JSON file mapping
node ids to measured rectangles ({"id": {"x":0,"y":0,"width":160,"height":40}}).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
				return errors.New(errors.ErrCodeInvalidInput, "both --x and --y are required")
			}
			opts := c.baseOptions()
			run.apply(&opts)

			snap, err := readSnapshot(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot %s: %w", args[0], err)
			}
			var geo containment.GeometryProvider
			if boxes != "" {
				if geo, err = readBoxes(boxes); err != nil {
					return err
				}
			}

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			out := outputPath(args[0], run.output, "drop")
			prepareOutput(out)

			drop := containment.Drop{NodeID: args[1], Point: geometry.Point{X: x, Y: y}}
			sp := startSpinner(cmd.Context(), "Resolving drop of "+args[1]+"...")
			res, err := runner.Drop(cmd.Context(), snap, drop, geo, opts)
			if err != nil {
				sp.StopWithError("Drop failed")
				return fmt.Errorf("resolve drop: %w", err)
			}
			if err := writeSnapshot(res.Snapshot, out); err != nil {
				sp.StopWithError("Write failed")
				return fmt.Errorf("write output %s: %w", out, err)
			}

			parent := res.ParentID
			if parent == "" {
				parent = "canvas"
			}
			sp.StopWithSuccess("Dropped %s into %s", args[1], StyleHighlight.Render(parent))
			if out != stdio {
				printFile(out)
			}
			if len(res.Reparented) > 0 {
				printDetail("%d reparented · %d edges re-sided", len(res.Reparented), len(res.ChangedEdges))
			}
			reportWarnings(res.Warnings)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "new absolute x of the node's top-left corner")
	cmd.Flags().Float64Var(&y, "y", 0, "new absolute y of the node's top-left corner")
	cmd.Flags().StringVar(&boxes, "boxes", "", "JSON file with measured node boxes")
	run.register(cmd, "drop")
	_ = cmd.Flags().MarkHidden("refresh")
	_ = cmd.Flags().MarkHidden("no-cache")

	return cmd
}

// readBoxes loads measured boxes keyed by node id.
func readBoxes(path string) (containment.Boxes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read boxes %s", path)
	}
	var b containment.Boxes
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse boxes %s", path)
	}
	return b, nil
}

// =============================================================================
// place
// =============================================================================

// placeCommand creates the place command for finding a free position.
func (c *CLI) placeCommand() *cobra.Command {
	var (
		req      placement.Request
		asJSON   bool
		strict   bool
		nodeSize geometry.Size
	)

	cmd := &cobra.Command{
		Use:   "place [snapshot.json]",
		Short: "Find a free spot for a new node",
		Long: `Find a collision-free position for a node of the given size.

Candidates are probed along the vertical axis around the anchor: 0, +s, -s,
+2s, -2s and so on, where s is the spacing. The snapshot is not modified;
the chosen position is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Strict = strict
			if cmd.Flags().Changed("spacing") {
				opts.Spacing = req.Spacing
			}
			if cmd.Flags().Changed("max-probes") {
				opts.MaxProbes = req.MaxProbes
			}
			req.Spacing, req.MaxProbes = 0, 0
			req.Size = nodeSize
			if asJSON {
				uiOut = os.Stderr
			}
			return c.runPlace(cmd.Context(), args[0], req, opts, asJSON)
		},
	}

	cmd.Flags().Float64Var(&req.Anchor.X, "x", 0, "desired x")
	cmd.Flags().Float64Var(&req.Anchor.Y, "y", 0, "desired y")
	cmd.Flags().Float64Var(&nodeSize.Width, "width", 160, "width of the new node")
	cmd.Flags().Float64Var(&nodeSize.Height, "height", 40, "height of the new node")
	cmd.Flags().StringVar(&req.ParentID, "parent", "", "container of the new node; the anchor is relative to it")
	cmd.Flags().Float64Var(&req.Spacing, "spacing", 0, "probe step (default from config)")
	cmd.Flags().IntVar(&req.MaxProbes, "max-probes", 0, "probe limit (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject snapshots with dangling references or cycles")

	return cmd
}

func (c *CLI) runPlace(ctx context.Context, input string, req placement.Request, opts pipeline.Options, asJSON bool) error {
	snap, err := readSnapshot(input)
	if err != nil {
		return fmt.Errorf("load snapshot %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := runner.Place(ctx, snap, req, opts)
	if err != nil {
		return fmt.Errorf("find position: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Found {
		printSuccess("Free spot after %d probes", res.Probes)
	} else {
		printWarning("No free spot within %d probes", res.Probes)
	}
	printKeyValue("position", formatPoint(res.Position.X, res.Position.Y))
	printKeyValue("absolute", formatPoint(res.Absolute.X, res.Absolute.Y))
	reportWarnings(res.Warnings)
	return nil
}

// =============================================================================
// edges
// =============================================================================

// edgesCommand creates the edges command for re-resolving anchor sides.
func (c *CLI) edgesCommand() *cobra.Command {
	var (
		node string
		run  runFlags
	)

	cmd := &cobra.Command{
		Use:   "edges [snapshot.json]",
		Short: "Recalculate which sides edges attach to",
		Long: `Re-resolve the source and target sides of edges from node positions.

Without --node every edge is recalculated; with it only the edges touching
that node. Edges marked manual keep their stored sides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			run.apply(&opts)

			snap, err := readSnapshot(args[0])
			if err != nil {
				return fmt.Errorf("load snapshot %s: %w", args[0], err)
			}

			runner, err := c.newRunner(cmd.Context(), run.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			out := outputPath(args[0], run.output, "edges")
			prepareOutput(out)

			res, err := runner.Recalc(cmd.Context(), snap, node, opts)
			if err != nil {
				return fmt.Errorf("recalculate edges: %w", err)
			}
			if err := writeSnapshot(res.Snapshot, out); err != nil {
				return fmt.Errorf("write output %s: %w", out, err)
			}

			printSuccess("%d edges re-sided", len(res.Changed))
			if out != stdio {
				printFile(out)
			}
			printStats(res.Stats)
			reportWarnings(res.Warnings)
			return nil
		},
	}

	cmd.Flags().StringVarP(&node, "node", "n", "", "only edges touching this node")
	run.register(cmd, "edges")

	return cmd
}
