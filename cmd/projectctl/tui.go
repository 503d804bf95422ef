package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sumire/projectmanager/internal/tui"
)

func newTUICmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive project screen",
		Long: `Open the interactive project screen.

Keys:
  enter      add the typed project
  tab        switch between the form and the list
  up/down    move through the list (k/j)
  d          delete the selected project
  r          refresh (ctrl+r while typing)
  q, ctrl+c  quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(
				tui.New(opts.session),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}
