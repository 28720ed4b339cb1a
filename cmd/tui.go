package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nibzard/tasklist-go/internal/ui"
)

func (a *app) newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and update tasks in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Debug("starting tui", "path", a.cfg.TaskFile)
			return ui.Run(cmd.Context(), a.cfg.TaskFile)
		},
	}
}
