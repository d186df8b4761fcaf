// Package app provides an application runner.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/fiffeek/xrandrprofiles/internal/applier"
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/detectors"
	"github.com/fiffeek/xrandrprofiles/internal/filewatcher"
	"github.com/fiffeek/xrandrprofiles/internal/matchers"
	"github.com/fiffeek/xrandrprofiles/internal/notifications"
	"github.com/fiffeek/xrandrprofiles/internal/reloader"
	"github.com/fiffeek/xrandrprofiles/internal/service"
	"github.com/fiffeek/xrandrprofiles/internal/signal"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Application struct {
	cfg             *config.Config
	client          *xrandr.Client
	matcher         *matchers.Matcher
	fswatcher       *filewatcher.Service
	monitorDetector *detectors.MonitorDetector
	svc             *service.Service
	reloader        *reloader.Service
	signal          *signal.Handler
}

type Options struct {
	ConfigPath           string
	DryRun               bool
	DisableAutoHotReload bool
	Executor             xrandr.Executor
}

func NewApplication(opts *Options, cancel context.CancelCauseFunc) (*Application, error) {
	cfg, err := config.NewConfig(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	general := cfg.Get().General

	executor := opts.Executor
	if executor == nil {
		executor = xrandr.NewCommandExecutor()
	}
	// [general] is read on every use so watch mode follows config reloads
	client := xrandr.NewClient(*general.XrandrBinary, executor, opts.DryRun).
		WithBinarySource(func() string { return *cfg.Get().General.XrandrBinary })

	monitorDetector := detectors.NewMonitorDetector(client,
		time.Duration(*general.PollIntervalMs)*time.Millisecond).
		WithIntervalSource(func() time.Duration {
			return time.Duration(*cfg.Get().General.PollIntervalMs) * time.Millisecond
		})
	matcher := matchers.NewMatcher()
	svc := service.NewService(cfg, client, monitorDetector, matcher, applier.NewApplier(client),
		notifications.NewService(cfg), &service.Config{DryRun: opts.DryRun})

	fswatcher := filewatcher.NewService(cfg, opts.DisableAutoHotReload)
	reloader := reloader.NewService(cfg, fswatcher, svc, opts.DisableAutoHotReload)

	return &Application{
		cfg:             cfg,
		client:          client,
		matcher:         matcher,
		fswatcher:       fswatcher,
		monitorDetector: monitorDetector,
		svc:             svc,
		reloader:        reloader,
		signal:          signal.NewHandler(cancel, svc),
	}, nil
}

func (a *Application) Config() *config.Config {
	return a.cfg
}

// Matched names the profile matching the connected monitors, empty when
// none does.
func (a *Application) Matched(ctx context.Context) (string, error) {
	fingerprints, err := a.client.QueryFingerprints(ctx)
	if err != nil {
		return "", fmt.Errorf("cant detect monitors: %w", err)
	}
	if found, matched := a.matcher.Match(a.cfg.Get(), fingerprints); found {
		return matched.Profile.Name, nil
	}
	return "", nil
}

// RunOnce applies the requested profile, or the matching one when requested
// is empty.
func (a *Application) RunOnce(ctx context.Context, requested string) error {
	logrus.Info("Will run one profile update")
	report, err := a.svc.RunOnce(ctx, requested)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"profile":  report.Profile,
		"commands": len(report.Steps),
		"failed":   report.Failed(),
	}).Info("Run succeeded, exiting")
	return nil
}

// Interruptible runs fn while termination signals cancel its context, so an
// in-flight display tool call is killed on Ctrl-C.
func (a *Application) Interruptible(ctx context.Context, fn func(context.Context) error) error {
	ctx, stop := context.WithCancelCause(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.signal.Run(ctx); err != nil {
			logrus.WithError(err).Debug("Signal handler stopped")
		}
	}()

	err := fn(ctx)
	stop(context.Canceled)
	<-done
	return err
}

func (a *Application) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	backgroundGoroutines := []struct {
		Fun  func(context.Context) error
		Name string
	}{
		{Fun: a.signal.Run, Name: "signal handler"},
		{Fun: a.fswatcher.Run, Name: "filewatcher"},
		{Fun: a.monitorDetector.Run, Name: "monitor detector"},
		{Fun: a.reloader.Run, Name: "reloader"},
		{Fun: a.svc.Run, Name: "main service"},
	}
	for _, bg := range backgroundGoroutines {
		eg.Go(func() error {
			fields := logrus.Fields{"name": bg.Name, "fun": utils.GetFunctionName(bg.Fun)}
			logrus.WithFields(fields).Debug("Starting")
			if err := bg.Fun(ctx); err != nil {
				logrus.WithFields(fields).WithError(err).Debugf("Service stopped %s", bg.Name)
				return fmt.Errorf("%s failed: %w", bg.Name, err)
			}
			logrus.WithFields(fields).Debug("Finished")
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled, shutting down")
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("main eg failed: %w", err)
	}

	logrus.Info("Shutdown complete")
	return nil
}
