package xrandr

import (
	"context"

	"github.com/fiffeek/xrandrprofiles/internal/utils"
)

// Executor runs a binary to completion and returns its captured streams.
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type CommandExecutor struct{}

func NewCommandExecutor() *CommandExecutor {
	return &CommandExecutor{}
}

func (*CommandExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return utils.ExecCommand(ctx, name, args...)
}
