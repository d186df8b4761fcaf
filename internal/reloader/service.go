// Package reloader swaps in the edited profiles file and applies the
// matching profile again.
package reloader

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/filewatcher"
	"github.com/sirupsen/logrus"
)

type Reapplier interface {
	Reapply(context.Context) error
}

type ChangeSource interface {
	Listen() <-chan filewatcher.Change
}

type Service struct {
	cfg       *config.Config
	changes   ChangeSource
	reapplier Reapplier
	disabled  bool
}

func NewService(cfg *config.Config, changes ChangeSource, reapplier Reapplier, disabled bool) *Service {
	return &Service{
		cfg:       cfg,
		changes:   changes,
		reapplier: reapplier,
		disabled:  disabled,
	}
}

// Reload keeps the previous profiles when the file no longer parses, in
// which case nothing is applied.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.cfg.Reload(); err != nil {
		return fmt.Errorf("cant reload configuration: %w", err)
	}
	logrus.WithField("profiles", len(s.cfg.Get().Profiles())).Info("Profiles reloaded")

	if err := s.reapplier.Reapply(ctx); err != nil {
		return fmt.Errorf("cant reapply profile: %w", err)
	}
	return nil
}

func (s *Service) Run(ctx context.Context) error {
	if s.disabled {
		<-ctx.Done()
		return context.Cause(ctx)
	}

	changes := s.changes.Listen()
	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			logrus.WithFields(logrus.Fields{"path": change.Path, "op": change.Op.String()}).
				Debug("Reloading after profiles file change")
			if err := s.Reload(ctx); err != nil {
				logrus.WithError(err).Error("Reload failed, keeping the daemon running")
			}
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}
