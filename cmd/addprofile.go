package cmd

import (
	"context"
	"fmt"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/profilemaker"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var detectEDIDs bool

var addProfileCmd = &cobra.Command{
	Use:   "add-profile <name>",
	Short: "Append a template section for a new profile to the profiles file",
	Long: `Append a commented [name] section to the end of the profiles file, creating the file
if needed. With --detect the EDIDs of the connected monitors are filled in, so the
new profile already matches the current setup; add_modes and outputs stay commented
for you to edit. Names must start with a letter and be unique.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		binary := "xrandr"
		if store, err := config.Load(configPath); err == nil {
			binary = *store.General.XrandrBinary
		} else {
			logrus.WithError(err).Debug("Using the default display tool")
		}

		maker := profilemaker.NewService(configPath, BinaryName,
			xrandr.NewClient(binary, xrandr.NewCommandExecutor(), false))
		if err := maker.AddProfile(context.Background(), args[0], detectEDIDs); err != nil {
			return fmt.Errorf("cant add profile %s: %w", args[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addProfileCmd)
	addProfileCmd.Flags().BoolVar(
		&detectEDIDs,
		"detect",
		false,
		"Fill in the EDIDs of the currently connected monitors",
	)
}
