// Package xrandr talks to the xrandr display tool: it queries connected
// monitors' EDIDs and issues mode and output commands.
package xrandr

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/sirupsen/logrus"
)

// Invocation is the outcome of one display tool call.
type Invocation struct {
	Args    []string
	Stderr  string
	Err     error
	Skipped bool
}

// Failed reports a soft failure: the tool either exited with an error or
// complained on its error stream.
func (i *Invocation) Failed() bool {
	return i.Err != nil || strings.TrimSpace(i.Stderr) != ""
}

func (i *Invocation) String() string {
	return strings.Join(i.Args, " ")
}

type Client struct {
	binary       string
	binarySource func() string
	executor     Executor
	dryRun       bool
}

func NewClient(binary string, executor Executor, dryRun bool) *Client {
	return &Client{
		binary:   binary,
		executor: executor,
		dryRun:   dryRun,
	}
}

// WithBinarySource makes every invocation resolve the binary through source,
// so a reloaded configuration takes effect without a restart. An empty result
// falls back to the binary given to NewClient.
func (c *Client) WithBinarySource(source func() string) *Client {
	c.binarySource = source
	return c
}

func (c *Client) currentBinary() string {
	if c.binarySource != nil {
		if binary := c.binarySource(); binary != "" {
			return binary
		}
	}
	return c.binary
}

// QueryFingerprints lists the EDIDs of connected monitors in the order the
// tool reports them. Monitors without EDIDs yield an empty list, not an error.
func (c *Client) QueryFingerprints(ctx context.Context) ([]string, error) {
	stdout, stderr, err := c.executor.Run(ctx, c.currentBinary(), "--prop")
	if err != nil {
		return nil, fmt.Errorf("cant query connected monitors: %w (%s)", err, strings.TrimSpace(string(stderr)))
	}

	fingerprints := ParseFingerprints(string(stdout))
	logrus.WithField("count", len(fingerprints)).Debug("Detected EDIDs")
	return fingerprints, nil
}

func (c *Client) NewMode(ctx context.Context, name string, timings []string) *Invocation {
	return c.invoke(ctx, append([]string{"--newmode", name}, timings...))
}

func (c *Client) AddMode(ctx context.Context, monitor, resolution string) *Invocation {
	return c.invoke(ctx, []string{"--addmode", monitor, resolution})
}

func (c *Client) Output(ctx context.Context, monitor string, args []string) *Invocation {
	return c.invoke(ctx, append([]string{"--output", monitor}, args...))
}

func (c *Client) invoke(ctx context.Context, args []string) *Invocation {
	invocation := &Invocation{Args: args}
	binary := c.currentBinary()
	fields := logrus.Fields{"binary": binary, "args": invocation.String()}

	if c.dryRun {
		logrus.WithFields(utils.NewLogrusCustomFields(fields).WithLogID(utils.DryRunLogID)).
			Info("[DRY RUN] Would run command")
		invocation.Skipped = true
		return invocation
	}

	logrus.WithFields(fields).Debug("Running display tool")
	_, stderr, err := c.executor.Run(ctx, binary, args...)
	invocation.Stderr = string(stderr)
	invocation.Err = err
	return invocation
}
