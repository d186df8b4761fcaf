package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/xrandrprofiles/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep applying the matching profile as monitors and profiles change",
	Long: `Run as a daemon: apply the matching profile on start, again whenever the connected
monitors change (polled every poll_interval_ms), whenever the profiles file is
edited and on SIGUSR1. SIGTERM, SIGINT and SIGHUP stop the daemon.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.WithField("version", Version).Debug("Starting xrandr profiles daemon")
		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(context.Canceled)

		application, err := app.NewApplication(&app.Options{
			ConfigPath:           configPath,
			DryRun:               dryRun,
			DisableAutoHotReload: disableAutoHotReload,
		}, cancel)
		if err != nil {
			return fmt.Errorf("cant create application: %w", err)
		}

		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Show what would be done without making changes",
	)
	watchCmd.Flags().BoolVar(
		&disableAutoHotReload,
		"disable-auto-hot-reload",
		false,
		"Disable automatic hot reload (no file watchers)",
	)
}
