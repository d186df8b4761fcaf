package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fiffeek/xrandrprofiles/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a profile to apply from an interactive list",
	Long: `Open an interactive list of the profiles, with the one matching the connected monitors
preselected. The list refreshes when the profiles file changes and the chosen profile
is applied once the list closes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			f, err := tea.LogToFile("xrandrprofiles-debug.log", "debug")
			if err != nil {
				return fmt.Errorf("cant open the debug log: %w", err)
			}
			defer f.Close()
			logrus.SetOutput(f)
		} else {
			logrus.SetLevel(logrus.PanicLevel)
		}

		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(context.Canceled)
		application, err := app.NewApplication(&app.Options{ConfigPath: configPath, DryRun: dryRun}, cancel)
		if err != nil {
			return fmt.Errorf("cant create application: %w", err)
		}

		return app.NewTUI(application, tea.WithAltScreen()).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Show what would be done without making changes",
	)
}
