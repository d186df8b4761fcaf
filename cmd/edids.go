package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var iniFormat bool

var edidsCmd = &cobra.Command{
	Use:   "edids",
	Short: "Print the EDIDs of the connected monitors",
	Long: `Print the EDIDs of the connected monitors, one per line, in the order xrandr reports
them. This is the order a profile has to list them in. With --ini a ready to paste
EDIDs line is printed instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		binary := "xrandr"
		if store, err := config.Load(configPath); err == nil {
			binary = *store.General.XrandrBinary
		} else {
			logrus.WithError(err).Debug("Using the default display tool")
		}

		client := xrandr.NewClient(binary, xrandr.NewCommandExecutor(), false)
		fingerprints, err := client.QueryFingerprints(context.Background())
		if err != nil {
			return fmt.Errorf("cant detect monitors: %w", err)
		}
		if len(fingerprints) == 0 {
			logrus.Warn("No EDIDs reported by the connected monitors")
			return nil
		}

		out := cmd.OutOrStdout()
		if iniFormat {
			fmt.Fprintf(out, "EDIDs = %s\n", strings.Join(fingerprints, ",\n    "))
			return nil
		}
		for _, fingerprint := range fingerprints {
			fmt.Fprintln(out, fingerprint)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(edidsCmd)
	edidsCmd.Flags().BoolVar(&iniFormat, "ini", false, "Print an EDIDs line to paste into a profile")
}
