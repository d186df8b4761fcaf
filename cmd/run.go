package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/xrandrprofiles/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dryRun               bool
	disableAutoHotReload bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply the profile matching the connected monitors",
	Long: `Query the EDIDs of the connected monitors, find the first profile listing exactly
those EDIDs in the same order and apply it. Exits with status 1 when no profile matches.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyProfile("")
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Apply the named profile regardless of the connected monitors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return applyProfile(args[0])
	},
}

func applyProfile(requested string) error {
	logrus.WithFields(logrus.Fields{"version": Version, "requested": requested}).Debug("Starting")
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(context.Canceled)

	application, err := app.NewApplication(&app.Options{ConfigPath: configPath, DryRun: dryRun}, cancel)
	if err != nil {
		return fmt.Errorf("cant create application: %w", err)
	}

	return application.Interruptible(ctx, func(ctx context.Context) error {
		return application.RunOnce(ctx, requested)
	})
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(profileCmd)
	for _, c := range []*cobra.Command{runCmd, profileCmd} {
		c.Flags().BoolVar(
			&dryRun,
			"dry-run",
			false,
			"Show what would be done without making changes",
		)
	}
}
