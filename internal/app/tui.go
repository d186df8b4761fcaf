package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fiffeek/xrandrprofiles/internal/tui"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type TUI struct {
	app     *Application
	program *tea.Program
	opts    []tea.ProgramOption
}

// NewTUI wires the picker to the application, the picked profile is applied
// once the picker exits.
func NewTUI(app *Application, opts ...tea.ProgramOption) *TUI {
	return &TUI{app: app, opts: opts}
}

func (t *TUI) Run(parent context.Context) error {
	matched, err := t.app.Matched(parent)
	if err != nil {
		logrus.WithError(err).Warn("Nothing will be marked as connected")
	}

	t.program = tea.NewProgram(tui.NewModel(t.app.cfg.Get(), matched), t.opts...)

	eg, ctx := errgroup.WithContext(parent)
	ctx, cancel := context.WithCancelCause(ctx)

	// refresh the list while the picker is open
	eg.Go(func() error {
		return t.app.fswatcher.Run(ctx)
	})

	eg.Go(func() error {
		c := t.app.fswatcher.Listen()
		for {
			select {
			case _, ok := <-c:
				if !ok {
					return errors.New("profiles file change channel closed")
				}
				if err := t.app.cfg.Reload(); err != nil {
					logrus.WithError(err).Error("Keeping the previous profiles in the picker")
					continue
				}
				t.program.Send(tui.ConfigReloaded{Store: t.app.cfg.Get()})

			case <-ctx.Done():
				return context.Cause(ctx)
			}
		}
	})

	var chosen string
	eg.Go(func() error {
		final, err := t.program.Run()
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		if model, ok := final.(tui.Model); ok {
			chosen = model.Chosen()
		}
		cancel(context.Canceled)
		logrus.WithField("chosen", chosen).Debug("Picker closed")
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		t.program.Quit()
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("main eg failed: %w", err)
	}

	if chosen == "" {
		logrus.Info("No profile chosen")
		return nil
	}
	return t.app.RunOnce(parent, chosen)
}
