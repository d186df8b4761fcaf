// Package cmd provides the entry point for the xrandrprofiles application.
// It matches the connected monitors to a profile and replays its xrandr commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/fiffeek/xrandrprofiles/internal/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	Version    = "dev"
	Commit     = "none"
	BuildDate  = "unknown"
	BinaryName = "xrandrprofiles"
)

var (
	debug                bool
	verbose              bool
	enableJSONLogsFormat bool
	configPath           string
	rootCmd              = &cobra.Command{
		Use:   BinaryName,
		Short: "Apply xrandr profiles based on connected monitors",
		Long: `xrandrprofiles identifies the connected monitors by their EDIDs, finds the profile
in ~/.xrandr-profiles listing exactly those EDIDs (in order) and replays its
add_modes and outputs through xrandr. Without a subcommand it behaves like run.`,
		Version:          fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		PersistentPreRun: setupLogger,
		SilenceErrors:    true,
		SilenceUsage:     true,
	}
)

// runsByDefault tells if the arguments name no subcommand, only flags that
// run understands.
func runsByDefault(args []string) bool {
	cmd, _, err := rootCmd.Find(args)
	if err != nil || cmd != rootCmd {
		return false
	}
	if slices.Contains(args, "--version") || slices.Contains(args, "-v") {
		return false
	}
	return !errors.Is(cmd.Flags().Parse(args), pflag.ErrHelp)
}

func Execute() {
	args := os.Args[1:]
	if runsByDefault(args) {
		rootCmd.SetArgs(append([]string{runCmd.Name()}, args...))
	}

	err := rootCmd.Execute()
	if err == nil {
		logrus.Debug("Exiting...")
		return
	}

	var interrupted *signal.Interrupted
	switch {
	case errors.As(err, &interrupted):
		logrus.WithError(err).Info("Interrupted")
		os.Exit(interrupted.ExitCode())
	case errors.Is(err, context.Canceled):
		logrus.WithError(err).Info("Context cancelled, exiting")
	case errors.Is(err, errs.ErrNoMatchingProfile):
		logrus.WithField("config_path", configPath).Error(errs.ErrNoMatchingProfile.Error())
		logrus.Infof("Run `%s edids` to see the EDIDs of the connected monitors", BinaryName)
		os.Exit(1)
	default:
		logrus.WithError(err).Fatal("Command failed")
	}
}

func newLogFormatter() logrus.Formatter {
	if enableJSONLogsFormat {
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	}
	return &logrus.TextFormatter{
		TimestampFormat: time.RFC3339Nano,
		FullTimestamp:   true,
		ForceQuote:      true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return filepath.Base(f.Function), fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

func setupLogger(cmd *cobra.Command, args []string) {
	level := logrus.InfoLevel
	if debug {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(verbose)
	logrus.SetFormatter(newLogFormatter())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&verbose, "verbose", false, "Report the calling function in every log line")
	flags.StringVar(&configPath, "config", config.DefaultPath, "Path to the profiles file")
	flags.BoolVar(&enableJSONLogsFormat, "enable-json-logs-format", false, "Enable structured logging")
}
