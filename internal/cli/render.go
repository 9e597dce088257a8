package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/geom"
	"github.com/matzehuels/zscene/pkg/pipeline"
	"github.com/matzehuels/zscene/pkg/presets"
)

// renderCommand creates the render command for a single frame.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [preset]",
		Short: "Render one frame of a preset scene",
		Long: `Render one frame of a preset scene to SVG, PNG or PDF.

Without --frames the scene is drawn at rest. With --frames N, --frame i
selects frame i of an N-frame loop, eased the same way 'animate' eases it.

Results are cached locally for faster subsequent runs.

Examples:
  zscene render box
  zscene render orbit -f svg,png --rotate 0.4,0.6,0 --zoom 2
  zscene render tower --frame 12 --frames 36 -o tower.png -f png`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			if err := flags.apply(cmd, c.cfg, &opts); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd, &opts)
	cmd.Flags().IntVar(&opts.Frame, "frame", 0, "frame index within --frames")
	cmd.Flags().IntVar(&opts.Frames, "frames", 0, "loop length in frames (default 1)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format), base path (multiple) or "-" for stdout`)

	return cmd
}

// runRender renders the frame and writes each artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetRenderDefaults()

	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", opts.Preset))
	spinner.Start()

	res, err := runner.Render(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(ctx, artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		base:      opts.Preset,
		output:    output,
	})
	if err != nil {
		return err
	}
	if output == stdoutPath {
		return nil
	}

	printSuccess("Rendered %s", StyleHighlight.Render(opts.Preset))
	for _, p := range paths {
		printFile(p)
	}
	printStats(res.Stats.NodeCount, res.Stats.DrawCalls, res.CacheHit)
	printNewline()
	printNextStep("Animate", fmt.Sprintf("%s animate %s", appName, opts.Preset))
	return nil
}

// parseRotate turns up to three flag values into a rotation vector.
func parseRotate(vals []float64) (geom.Vector, error) {
	var v geom.Vector
	if len(vals) > 3 {
		return v, errors.New(errors.ErrCodeInvalidInput, "--rotate takes at most 3 values, got %d", len(vals))
	}
	dst := []*float64{&v.X, &v.Y, &v.Z}
	for i, f := range vals {
		*dst[i] = f
	}
	return v, nil
}

// completePresets completes the preset argument.
func completePresets(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return presets.Names(), cobra.ShellCompDirectiveNoFileComp
}

// =============================================================================
// Artifact Output
// =============================================================================

// stdoutPath as --output writes a single artifact to standard output.
const stdoutPath = "-"

// artifactWriteParams describes one set of artifacts to write.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // default file name without extension
	output    string // --output value
	suffix    string // appended to the base name, e.g. a frame number
}

// writeArtifacts writes each artifact in formats order and returns the
// written paths.
func writeArtifacts(ctx context.Context, p artifactWriteParams) ([]string, error) {
	logger := loggerFromContext(ctx)

	if p.output == stdoutPath {
		if len(p.formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidPath, "writing to stdout needs exactly one format, got %d", len(p.formats))
		}
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return nil, err
	}

	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.base, p.suffix, format, len(p.formats))
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath picks the file for one format. A single-format, unsuffixed
// write uses output verbatim; otherwise output is a base path whose known
// format extension is replaced.
func outputPath(output, base, suffix, format string, count int) string {
	if output != "" && count == 1 && suffix == "" {
		return output
	}
	return basePath(output, base) + suffix + "." + format
}

// basePath derives the base output path. If output is empty, base is used.
// If output has a format extension (.svg, .png, .pdf, .dot), it is
// stripped.
func basePath(output, base string) string {
	if output == "" {
		return base
	}
	ext := filepath.Ext(output)
	trimmed := strings.TrimPrefix(ext, ".")
	if pipeline.ValidFormats[trimmed] || pipeline.ValidGraphFormats[trimmed] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
