package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fiffeek/xrandrprofiles/internal/app"
	"github.com/fiffeek/xrandrprofiles/internal/tui"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type listFormat int

const (
	textListFormat listFormat = iota
	tomlListFormat
)

func (f listFormat) Value() string {
	switch f {
	case textListFormat:
		return "text"
	case tomlListFormat:
		return "toml"
	}
	return "unknown"
}

var (
	listFormatFlag string
	noColor        bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles, marking the one matching the connected monitors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseListFormat(listFormatFlag)
		if err != nil {
			return err
		}
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		ctx, cancel := context.WithCancelCause(context.Background())
		defer cancel(context.Canceled)
		application, err := app.NewApplication(&app.Options{ConfigPath: configPath}, cancel)
		if err != nil {
			return fmt.Errorf("cant create application: %w", err)
		}

		matched, err := application.Matched(ctx)
		if err != nil {
			logrus.WithError(err).Warn("Nothing will be marked as connected")
		}

		store := application.Config().Get()
		switch format {
		case tomlListFormat:
			if err := store.ExportTOML(cmd.OutOrStdout(), matched); err != nil {
				return fmt.Errorf("cant export profiles: %w", err)
			}
		case textListFormat:
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProfiles(store, matched))
		}
		return nil
	},
}

func parseListFormat(value string) (listFormat, error) {
	for _, format := range []listFormat{textListFormat, tomlListFormat} {
		if format.Value() == value {
			return format, nil
		}
	}
	return textListFormat, fmt.Errorf("unknown format %s, expected one of %s",
		value, utils.FormatEnumTypes([]listFormat{textListFormat, tomlListFormat}))
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listFormatFlag, "format", textListFormat.Value(), "Output format, text or toml")
	listCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable styling")
}
