package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/pkg/pipeline"
)

// animateCommand creates the animate command, which writes one file per
// frame of an eased loop.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "animate [preset]",
		Short: "Render every frame of a preset animation",
		Long: `Render every frame of a preset animation.

Frames are written as <base>-000.svg, <base>-001.svg, ... where <base> is
--output (default: the preset name). Time runs from 0 to 1 across the loop
with ease-in-out easing, so the last frame leads back into the first.

Examples:
  zscene animate orbit
  zscene animate tower --frames 72 -f png -o out/tower`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completePresets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Preset = args[0]
			}
			if err := flags.apply(cmd, c.cfg, &opts); err != nil {
				return err
			}
			return c.runAnimate(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd, &opts)
	cmd.Flags().IntVar(&opts.Frames, "frames", pipeline.DefaultAnimationFrames, "number of frames in the loop")
	cmd.Flags().StringVarP(&output, "output", "o", "", "base path for frame files (default: preset name)")

	return cmd
}

// runAnimate renders the loop and writes each frame as it arrives.
func (c *CLI) runAnimate(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if output == stdoutPath {
		return fmt.Errorf("animate cannot write to stdout")
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetRenderDefaults()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Animating %s (%d frames)...", opts.Preset, opts.Frames))
	spinner.Start()

	var written []string
	err = runner.Animate(ctx, opts, func(frame int, artifacts map[string][]byte) error {
		spinner.SetMessage(fmt.Sprintf("Animating %s (frame %d/%d)...", opts.Preset, frame+1, opts.Frames))
		paths, err := writeArtifacts(ctx, artifactWriteParams{
			artifacts: artifacts,
			formats:   opts.Formats,
			base:      opts.Preset,
			output:    output,
			suffix:    frameSuffix(frame),
		})
		written = append(written, paths...)
		return err
	})
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			printWarning("Animation cancelled after %d files", len(written))
			return err
		}
		spinner.StopWithError("Animation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Animated %s", opts.Preset))

	printSuccess("Wrote %d frames of %s", opts.Frames, StyleHighlight.Render(opts.Preset))
	if len(written) > 0 {
		printFile(written[0])
		printDetail("... %d files in %s", len(written), filepath.Dir(written[len(written)-1]))
	}
	printNewline()
	return nil
}

func frameSuffix(frame int) string {
	return fmt.Sprintf("-%03d", frame)
}
