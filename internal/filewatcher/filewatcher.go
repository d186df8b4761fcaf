// Package filewatcher reports edits of the profiles file
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Change is the last edit seen before the debounce window closed.
type Change struct {
	Path string
	Op   fsnotify.Op
}

type Service struct {
	cfg       *config.Config
	disabled  bool
	changes   chan Change
	debouncer *utils.Debouncer
}

func NewService(cfg *config.Config, disabled bool) *Service {
	return &Service{
		cfg:       cfg,
		disabled:  disabled,
		changes:   make(chan Change, 1),
		debouncer: utils.NewDebouncer(),
	}
}

func (s *Service) Listen() <-chan Change {
	return s.changes
}

func (s *Service) Run(ctx context.Context) error {
	if s.disabled {
		logrus.Info("Hot reload disabled, the profiles file is not watched")
		<-ctx.Done()
		return context.Cause(ctx)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cant create watcher: %w", err)
	}
	// editors replace the file on save, so the parent dir is watched
	if err := watcher.Add(s.cfg.Dir()); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("cant watch config dir %s: %w", s.cfg.Dir(), err)
	}
	logrus.WithField("config", s.cfg.Path()).Debug("Watching the profiles file")

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return s.debouncer.Run(ctx)
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.debouncer.Cancel()
		if err := watcher.Close(); err != nil {
			logrus.WithError(err).Error("Cant close watcher on exit")
		}
		return context.Cause(ctx)
	})
	eg.Go(func() error {
		return s.watch(ctx, watcher)
	})

	return eg.Wait()
}

func (s *Service) watch(ctx context.Context, watcher *fsnotify.Watcher) error {
	profilesFile := filepath.Base(s.cfg.Path())
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel is closed")
			}
			if filepath.Base(event.Name) != profilesFile || event.Op == fsnotify.Chmod {
				continue
			}

			change := Change{Path: event.Name, Op: event.Op}
			delay := time.Duration(*s.cfg.Get().General.DebounceMs) * time.Millisecond
			logrus.WithFields(logrus.Fields{
				"op":       event.Op.String(),
				"debounce": delay,
			}).Debug("Profiles file changed")
			s.debouncer.Do(ctx, delay, func(ctx context.Context) error {
				return s.publish(ctx, change)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel is closed")
			}
			if err != nil {
				return fmt.Errorf("watcher error received: %w", err)
			}

		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}

func (s *Service) publish(ctx context.Context, change Change) error {
	select {
	case s.changes <- change:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}
