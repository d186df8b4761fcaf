package cmd

import (
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the profiles file",
	Long: `Validate the profiles file: syntax, the general section and every add_modes and
outputs entry. Malformed entries are skipped at run time, here they fail validation.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logrus.WithField("config_path", configPath).Debug("Validating configuration")

		store, err := config.Load(configPath)
		if err == nil {
			err = store.Validate()
		}
		if err != nil {
			utils.PrettyPrintError(cmd.ErrOrStderr(), err)
			logrus.Fatal("Configuration validation failed")
			return
		}

		logrus.WithField("profiles", len(store.Profiles())).Info("Configuration is valid")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
