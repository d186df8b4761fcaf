// Package notifications provides notifications through dbus
package notifications

import (
	"fmt"

	"github.com/TheCreeper/go-notify"
	"github.com/fiffeek/xrandrprofiles/internal/applier"
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/sirupsen/logrus"
)

type Service struct {
	config *config.Config
	hints  map[string]interface{}
	show   func(*notify.Notification) (uint32, error)
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		hints: map[string]interface{}{
			"synchronous":       "xrandrprofiles",
			"x-dunst-stack-tag": "xrandrprofiles",
		},
		show: func(n *notify.Notification) (uint32, error) {
			return n.Show()
		},
	}
}

func (s *Service) NotifyProfileApplied(profile *config.Profile, report *applier.Report, dryRun bool) error {
	general := s.config.Get().General
	if !*general.Notifications {
		logrus.Debug("notifications are not enabled, not sending")
		return nil
	}

	ntf := s.notification(profile, report, dryRun)
	ntf.Timeout = *general.NotificationTimeoutMs
	ntf.Hints = s.hints

	if _, err := s.show(ntf); err != nil {
		return fmt.Errorf("cant send notification for %s: %w", profile.Name, err)
	}
	return nil
}

func (s *Service) notification(profile *config.Profile, report *applier.Report, dryRun bool) *notify.Notification {
	summary := "Monitor profile `" + profile.Name + "` applied"
	if dryRun {
		summary = "[DRY RUN] " + summary
	}

	body := fmt.Sprintf("Ran %d xrandr commands", len(report.Steps))
	if failed := report.Failed(); failed > 0 {
		body = fmt.Sprintf("%s, %d failed", body, failed)
	}
	return &notify.Notification{Summary: summary, Body: body}
}
