// Package signal maps process signals onto the watch daemon: SIGUSR1
// reapplies, termination signals stop it.
package signal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Interrupted is the cancellation cause when a termination signal arrives.
type Interrupted struct {
	Signal syscall.Signal
}

func (i *Interrupted) Error() string {
	return fmt.Sprintf("interrupted by %s", i.Signal)
}

// ExitCode follows the shell convention of 128 plus the signal number.
func (i *Interrupted) ExitCode() int {
	return 128 + int(i.Signal)
}

type SignalHandler interface {
	Reapply(context.Context) error
}

type Handler struct {
	sigChan     chan os.Signal
	cancelCause context.CancelCauseFunc
	handler     SignalHandler
}

func NewHandler(cancelCause context.CancelCauseFunc, handler SignalHandler) *Handler {
	return &Handler{
		sigChan:     make(chan os.Signal, 1),
		cancelCause: cancelCause,
		handler:     handler,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	signal.Notify(h.sigChan, syscall.SIGUSR1, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(h.sigChan)

	for {
		select {
		case sig := <-h.sigChan:
			logrus.WithField("signal", sig).Debug("Signal received")
			switch sig {
			case syscall.SIGUSR1:
				logrus.Info("Received SIGUSR1, reapplying the matching profile")
				if err := h.handler.Reapply(ctx); err != nil {
					logrus.WithError(err).Error("Reapplying on SIGUSR1 failed")
				}
			case syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP:
				logrus.WithField("signal", sig).Info("Stopping")
				//nolint:forcetypeassert
				cause := &Interrupted{Signal: sig.(syscall.Signal)}
				h.cancelCause(cause)
				return cause
			}
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}
