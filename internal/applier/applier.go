// Package applier replays a profile's mode and output commands through the
// display tool.
package applier

import (
	"context"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/sirupsen/logrus"
)

type DisplayTool interface {
	NewMode(ctx context.Context, name string, timings []string) *xrandr.Invocation
	AddMode(ctx context.Context, monitor, resolution string) *xrandr.Invocation
	Output(ctx context.Context, monitor string, args []string) *xrandr.Invocation
}

type Applier struct {
	tool DisplayTool
}

func NewApplier(tool DisplayTool) *Applier {
	return &Applier{tool: tool}
}

// Apply registers and attaches every mode, then places every output, one
// blocking call at a time. Failures are recorded and never stop the
// remaining steps; a cancelled context does.
func (a *Applier) Apply(ctx context.Context, profile *config.Profile) *Report {
	report := &Report{Profile: profile.Name, Steps: []*Step{}, Invalid: profile.Invalid}
	fields := logrus.Fields{"profile": profile.Name}

	for _, invalid := range profile.Invalid {
		logrus.WithFields(utils.NewLogrusCustomFields(fields).WithLogID(utils.SoftFailureLogID)).
			WithError(invalid).Error("Skipping malformed entry")
	}

	logrus.WithFields(fields).WithField("modes", len(profile.Modes)).Info("Adding modes")
	for _, mode := range profile.Modes {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report
		}
		a.record(report, NewModeStep, mode.Monitor, a.tool.NewMode(ctx, mode.Resolution, mode.Timings()))
		a.record(report, AddModeStep, mode.Monitor, a.tool.AddMode(ctx, mode.Monitor, mode.Resolution))
	}

	logrus.WithFields(fields).WithField("outputs", len(profile.Outputs)).Info("Choosing outputs")
	for _, output := range profile.Outputs {
		if ctx.Err() != nil {
			report.Cancelled = true
			return report
		}
		a.record(report, OutputStep, output.Monitor, a.tool.Output(ctx, output.Monitor, output.Args))
	}

	return report
}

func (a *Applier) record(report *Report, kind StepKind, monitor string, invocation *xrandr.Invocation) {
	step := &Step{Kind: kind, Monitor: monitor, Invocation: invocation}
	report.Steps = append(report.Steps, step)

	if !invocation.Failed() {
		return
	}
	logrus.WithFields(utils.NewLogrusCustomFields(logrus.Fields{
		"step":    kind.Value(),
		"monitor": monitor,
		"command": invocation.String(),
		"stderr":  invocation.Stderr,
	}).WithLogID(utils.SoftFailureLogID)).WithError(invocation.Err).Errorf("An error occurred while %s, continuing", kind.Describe())
}
