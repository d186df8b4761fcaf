// Package service provides the main flow: match the connected monitors to a
// profile and apply it, once or for as long as the daemon runs.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fiffeek/xrandrprofiles/internal/applier"
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/fiffeek/xrandrprofiles/internal/matchers"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type IFingerprintQuerier interface {
	QueryFingerprints(ctx context.Context) ([]string, error)
}

type IMonitorDetector interface {
	Listen() <-chan []string
}

type IApplier interface {
	Apply(ctx context.Context, profile *config.Profile) *applier.Report
}

type INotifier interface {
	NotifyProfileApplied(profile *config.Profile, report *applier.Report, dryRun bool) error
}

type Service struct {
	config               *config.Config
	querier              IFingerprintQuerier
	monitorDetector      IMonitorDetector
	matcher              *matchers.Matcher
	applier              IApplier
	notificationsService INotifier
	serviceConfig        *Config

	// applyMu keeps display tool invocations from different triggers apart
	applyMu   sync.Mutex
	debouncer *utils.Debouncer
	shell     func(ctx context.Context, command string) (string, error)
}

type Config struct {
	DryRun bool
}

func NewService(cfg *config.Config, querier IFingerprintQuerier, monitorDetector IMonitorDetector,
	matcher *matchers.Matcher, applier IApplier, notifications INotifier, svcCfg *Config,
) *Service {
	return &Service{
		config:               cfg,
		querier:              querier,
		monitorDetector:      monitorDetector,
		matcher:              matcher,
		applier:              applier,
		notificationsService: notifications,
		serviceConfig:        svcCfg,
		debouncer:            utils.NewDebouncer(),
		shell:                utils.ExecShell,
	}
}

// RunOnce applies the requested profile, or the one matching the connected
// monitors when requested is empty. It returns errs.ErrNoMatchingProfile
// when nothing matches.
func (s *Service) RunOnce(ctx context.Context, requested string) (*applier.Report, error) {
	var fingerprints []string
	if requested == "" {
		var err error
		fingerprints, err = s.querier.QueryFingerprints(ctx)
		if err != nil {
			return nil, fmt.Errorf("cant detect monitors: %w", err)
		}
	}

	return s.resolveAndApply(ctx, fingerprints, requested)
}

// Reapply queries the monitors again and applies the matching profile even
// if it was applied before. No match is logged, not returned.
func (s *Service) Reapply(ctx context.Context) error {
	if _, err := s.RunOnce(ctx, ""); err != nil {
		if errors.Is(err, errs.ErrNoMatchingProfile) {
			logrus.Warn("No profile matches the connected monitors")
			return nil
		}
		return err
	}
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if err := s.Reapply(ctx); err != nil {
		return fmt.Errorf("unable to apply a profile on start: %w", err)
	}

	monitorEventsChannel := s.monitorDetector.Listen()
	logrus.Info("Listening for monitor changes...")

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()
		s.debouncer.Cancel()
		logrus.Debug("Context cancelled for service, shutting down")
		return context.Cause(ctx)
	})

	eg.Go(func() error {
		logrus.Debug("Running debouncer for service")
		if err := s.debouncer.Run(ctx); err != nil {
			return fmt.Errorf("debouncer failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		for {
			select {
			case fingerprints, ok := <-monitorEventsChannel:
				if !ok {
					return errors.New("monitor events channel closed")
				}
				logrus.WithField("monitor_count", len(fingerprints)).Debug("Monitor event received")
				s.debouncer.Do(ctx, time.Duration(*s.config.Get().General.DebounceMs)*time.Millisecond, s.debounceUpdate)
			case <-ctx.Done():
				logrus.Debug("Event processor context cancelled, shutting down")
				return context.Cause(ctx)
			}
		}
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("goroutines for service failed %w", err)
	}
	return nil
}

func (s *Service) debounceUpdate(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	default:
		return s.Reapply(ctx)
	}
}

func (s *Service) resolveAndApply(ctx context.Context, fingerprints []string, requested string) (*applier.Report, error) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	// grab latest config and pass along for the same world-view
	cfg := s.config.Get()

	logrus.WithFields(logrus.Fields{
		"monitor_count": len(fingerprints),
		"requested":     requested,
		"dry_run":       s.serviceConfig.DryRun,
	}).Debug("Resolving profile")

	matched, err := s.matcher.Resolve(cfg, fingerprints, requested)
	if err != nil {
		return nil, err
	}

	profileFields := logrus.Fields{
		"profile_name": matched.Profile.Name,
		"matched_by":   matched.Reason.Value(),
	}
	logrus.WithFields(profileFields).Info("Using profile")

	s.tryExec(ctx, cfg.General.PreApplyExec, utils.PreExecLogID)

	report := s.applier.Apply(ctx, matched.Profile)
	if report.Cancelled {
		return report, fmt.Errorf("applying %s interrupted: %w", matched.Profile.Name, context.Cause(ctx))
	}

	s.tryExec(ctx, cfg.General.PostApplyExec, utils.PostExecLogID)

	logrus.WithFields(utils.NewLogrusCustomFields(profileFields).WithLogID(utils.ProfileAppliedLogID)).
		WithFields(logrus.Fields{"commands": len(report.Steps), "failed": report.Failed()}).
		Info("Profile applied")

	if err := s.notificationsService.NotifyProfileApplied(matched.Profile, report, s.serviceConfig.DryRun); err != nil {
		logrus.WithFields(profileFields).WithError(err).Error("swallowing notification error")
	}

	return report, nil
}

func (s *Service) tryExec(ctx context.Context, command *string, logID utils.LogID) {
	if command == nil || *command == "" {
		return
	}
	// if running with dry run then just output the commands
	if s.serviceConfig.DryRun {
		logrus.WithFields(utils.NewLogrusCustomFields(map[string]interface{}{
			"command": *command,
			"order":   logID,
		}).WithLogID(utils.DryRunLogID)).
			Info("[DRY RUN] Would run command")
		return
	}

	logrus.WithFields(
		utils.NewLogrusCustomFields(logrus.Fields{"command": *command}).WithLogID(logID)).Info("Executing user callback")
	out, err := s.shell(ctx, *command)
	if err != nil {
		logrus.WithError(err).WithField("output", out).Error("User callback failed, continuing as normal")
	}
}
