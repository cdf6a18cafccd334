package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts decideOpts

	cmd := &cobra.Command{
		Use:               "inspect <scenario>",
		Short:             "Browse every stage of a decision interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScenarioFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.applyConfig(cmd, c.Config.Decide)
			res, err := c.decideFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewStageModel(res.Decision),
				tea.WithContext(cmd.Context()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	opts.register(cmd)
	return cmd
}
