package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/pkg/pipeline"
)

// graphCommand creates the graph command, which draws the node hierarchy
// of a preset as a node-link diagram.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output  string
		rotate  []float64
		noCache bool
	)
	opts := pipeline.GraphOptions{}

	cmd := &cobra.Command{
		Use:   "graph [preset]",
		Short: "Draw the scene hierarchy of a preset",
		Long: `Draw the scene hierarchy of a preset as a node-link diagram.

DOT output is plain Graphviz source; svg and pdf are laid out with Graphviz.
--detailed adds transforms and computed depths to each node. Nodes that
composite shapes generate for themselves (box faces, solid caps) are hidden
unless --generated is set.

Examples:
  zscene graph tower
  zscene graph solids -f svg --detailed -o solids-graph.svg`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			rot, err := parseRotate(rotate)
			if err != nil {
				return err
			}
			opts.Rotate = rot
			return c.runGraph(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", pipeline.FormatDOT, "output format: dot, svg, pdf")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show transforms and depths")
	cmd.Flags().BoolVar(&opts.Generated, "generated", false, "include generated child shapes")
	cmd.Flags().Float64SliceVar(&rotate, "rotate", nil, "rotation in radians as x,y,z")
	cmd.Flags().StringVarP(&output, "output", "o", stdoutPath, `output file or "-" for stdout`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts pipeline.GraphOptions, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if err := opts.Validate(); err != nil {
		return err
	}
	data, hit, err := runner.Graph(ctx, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: map[string][]byte{opts.Format: data},
		formats:   []string{opts.Format},
		base:      opts.Preset + "-graph",
		output:    output,
	})
	if err != nil || output == stdoutPath {
		return err
	}
	printSuccess("Scene graph of %s", StyleHighlight.Render(opts.Preset))
	for _, p := range paths {
		printFile(p)
	}
	printStats(0, 0, hit)
	return nil
}
