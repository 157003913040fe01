package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgeo/pkg/errors"
	"github.com/matzehuels/mindgeo/pkg/geometry"
	"github.com/matzehuels/mindgeo/pkg/graph"
)

// importCommand creates the import command for turning outlines into trees.
func (c *CLI) importCommand() *cobra.Command {
	var (
		into     string
		parent   string
		auto     bool
		x, y     float64
		nodeSize geometry.Size
		run      runFlags
		flags    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "import [outline.md]",
		Short: "Create nodes from a bulleted outline",
		Long: `Import a bulleted outline as new nodes and edges.

Every bullet ("-", "*" or "+") becomes a node; indentation sets the parent.
Unbulleted lines continue the previous bullet's text.

Without --into the outline becomes a new snapshot. With --parent the
top-level bullets hang off that existing node; otherwise each starts a new
tree at --x/--y, or at the first free spot near the origin when neither is
given. --layout arranges each imported tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			run.apply(&opts)
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			opts.ParentID = parent
			opts.AutoLayout = auto
			opts.NodeSize = nodeSize
			if cmd.Flags().Changed("x") || cmd.Flags().Changed("y") {
				opts.Origin = &geometry.Point{X: x, Y: y}
			}

			prog := newProgress(loggerFromContext(cmd.Context()))
			text, err := readText(args[0])
			if err != nil {
				return err
			}
			var snap graph.Snapshot
			if into != "" {
				if snap, err = readSnapshot(into); err != nil {
					return fmt.Errorf("load snapshot %s: %w", into, err)
				}
			}

			out := importOutput(args[0], into, run.output)
			prepareOutput(out)

			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			sp := startSpinner(cmd.Context(), "Importing outline...")
			res, err := runner.Import(cmd.Context(), snap, text, opts)
			if err != nil {
				sp.StopWithError("Import failed")
				return fmt.Errorf("import outline: %w", err)
			}
			if err := writeSnapshot(res.Snapshot, out); err != nil {
				sp.StopWithError("Write failed")
				return fmt.Errorf("write output %s: %w", out, err)
			}

			prog.done("wrote " + out)

			sp.StopWithSuccess("Imported %d nodes in %d trees", len(res.Added), len(res.Roots))
			if out != stdio {
				printFile(out)
			}
			if len(res.Moved) > 0 {
				printDetail("%d existing nodes moved", len(res.Moved))
			}
			reportWarnings(res.Warnings)
			if out != stdio && !auto {
				printNewline()
				printNextStep("Arrange", "mindgeo layout "+out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&into, "into", "", "existing snapshot to import into")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "attach top-level bullets to this node")
	cmd.Flags().BoolVar(&auto, "layout", false, "lay out each imported tree")
	cmd.Flags().Float64Var(&x, "x", 0, "absolute x of new trees")
	cmd.Flags().Float64Var(&y, "y", 0, "absolute y of new trees")
	cmd.Flags().Float64Var(&nodeSize.Width, "width", 160, "initial node width")
	cmd.Flags().Float64Var(&nodeSize.Height, "height", 40, "initial node height")
	run.register(cmd, "import")
	_ = cmd.Flags().MarkHidden("refresh")
	_ = cmd.Flags().MarkHidden("no-cache")
	flags.register(cmd)

	return cmd
}

// readText reads an outline file, or stdin for "-".
func readText(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read outline %s", path)
	}
	return string(data), nil
}

// importOutput picks the output path: explicit, next to the target
// snapshot, or <outline>.json.
func importOutput(outline, into, output string) string {
	if into != "" {
		return outputPath(into, output, "import")
	}
	if output != "" || outline == stdio {
		return outputPath(outline, output, "")
	}
	return strings.TrimSuffix(outline, filepath.Ext(outline)) + ".json"
}
