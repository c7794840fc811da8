package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ranilearn/rani/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive lessons (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, restores the learner and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	session, start, err := e.session(cmd)
	if err != nil {
		return err
	}
	e.logger.WithField("start", start.String()).Info("starting tui")
	return app.Run(cmd.Context(), session, start)
}
