// Package detectors polls the display tool and reports when the set of
// connected monitors changes.
package detectors

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// disabledRecheck is how often a disabled detector looks at its interval
// source again.
const disabledRecheck = time.Second

type pollingState int

const (
	pollingUnknown pollingState = iota
	pollingEnabled
	pollingDisabled
)

type FingerprintQuerier interface {
	QueryFingerprints(ctx context.Context) ([]string, error)
}

type MonitorDetector struct {
	querier        FingerprintQuerier
	interval       time.Duration
	intervalSource func() time.Duration
	fingerprints   []string
	mu             sync.RWMutex
	events         chan []string
}

// NewMonitorDetector polls every interval, a zero interval disables polling.
func NewMonitorDetector(querier FingerprintQuerier, interval time.Duration) *MonitorDetector {
	return &MonitorDetector{
		querier:  querier,
		interval: interval,
		events:   make(chan []string, 1),
	}
}

// WithIntervalSource reads the interval before every poll, so a reloaded
// configuration can change it or turn polling on and off.
func (m *MonitorDetector) WithIntervalSource(source func() time.Duration) *MonitorDetector {
	m.intervalSource = source
	return m
}

func (m *MonitorDetector) Listen() <-chan []string {
	return m.events
}

// GetConnected returns the fingerprints seen by the latest poll.
func (m *MonitorDetector) GetConnected() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.fingerprints)
}

func (m *MonitorDetector) currentInterval() time.Duration {
	if m.intervalSource != nil {
		return m.intervalSource()
	}
	return m.interval
}

func (m *MonitorDetector) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()
	state := pollingUnknown

	for {
		select {
		case <-timer.C:
		case <-ctx.Done():
			logrus.Debug("Context cancelled for monitor detector, shutting down")
			return context.Cause(ctx)
		}

		interval := m.currentInterval()
		if interval <= 0 {
			if state != pollingDisabled {
				logrus.Info("Hardware polling disabled")
				state = pollingDisabled
				// re-enabling starts from a fresh baseline
				m.forget()
			}
			timer.Reset(disabledRecheck)
			continue
		}
		if state != pollingEnabled {
			logrus.WithField("interval", interval).Debug("Polling connected monitors")
			state = pollingEnabled
		}

		changed, err := m.poll(ctx)
		timer.Reset(interval)
		if err != nil {
			logrus.WithError(err).Warn("Monitor poll failed, will retry")
			continue
		}
		if !changed {
			continue
		}

		connected := m.GetConnected()
		logrus.WithField("monitor_count", len(connected)).Info("Connected monitors changed")
		select {
		case m.events <- connected:
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

func (m *MonitorDetector) forget() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fingerprints = nil
}

// poll records the fingerprints; the first successful poll only sets the
// baseline and never counts as a change.
func (m *MonitorDetector) poll(ctx context.Context) (bool, error) {
	fingerprints, err := m.querier.QueryFingerprints(ctx)
	if err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	changed := m.fingerprints != nil && !slices.Equal(m.fingerprints, fingerprints)
	m.fingerprints = fingerprints
	return changed, nil
}
