package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/pkg/pipeline"
	"github.com/matzehuels/zscene/pkg/presets"
)

// pickCommand lets the user choose a preset interactively, then renders it
// like the render command would.
func (c *CLI) pickCommand() *cobra.Command {
	var (
		flags  renderFlags
		output string
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively and render it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, c.cfg, &opts); err != nil {
				return err
			}

			model, err := tea.NewProgram(NewPresetListModel(presets.Describe()), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("preset picker: %w", err)
			}
			picked, ok := model.(PresetListModel)
			if !ok || picked.Selected == nil {
				printInfo("No preset selected")
				return nil
			}

			opts.Preset = picked.Selected.Name
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	flags.register(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	return cmd
}
