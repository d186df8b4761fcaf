package xrandr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fiffeek/xrandrprofiles/internal/testutils"
	"github.com/fiffeek/xrandrprofiles/internal/utils"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_QueryFingerprints(t *testing.T) {
	t.Run("parses the prop output", func(t *testing.T) {
		executor := testutils.NewFakeExecutor().WithProp(testutils.PropOutput("AAAA", "BBBB"))
		client := xrandr.NewClient("/opt/bin/xrandr", executor, false)

		fingerprints, err := client.QueryFingerprints(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"AAAA", "BBBB"}, fingerprints)
		assert.Equal(t, []string{"/opt/bin/xrandr"}, executor.Binaries())
		assert.Equal(t, 1, executor.QueryCount())
	})

	t.Run("no EDIDs is not an error", func(t *testing.T) {
		executor := testutils.NewFakeExecutor().WithProp("Screen 0: minimum 8 x 8\n")
		client := xrandr.NewClient("xrandr", executor, false)

		fingerprints, err := client.QueryFingerprints(context.Background())
		require.NoError(t, err)
		assert.Empty(t, fingerprints)
		assert.NotNil(t, fingerprints)
	})

	t.Run("tool failure is an error", func(t *testing.T) {
		executor := testutils.NewFakeExecutor().WithPropFailure(testutils.FakeResponse{
			Stderr: "Can't open display",
			Err:    errors.New("exit status 1"),
		})
		client := xrandr.NewClient("xrandr", executor, false)

		_, err := client.QueryFingerprints(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cant query connected monitors")
		assert.Contains(t, err.Error(), "Can't open display")
	})

	t.Run("dry run still queries", func(t *testing.T) {
		executor := testutils.NewFakeExecutor().WithProp(testutils.PropOutput("AAAA"))
		client := xrandr.NewClient("xrandr", executor, true)

		fingerprints, err := client.QueryFingerprints(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"AAAA"}, fingerprints)
	})
}

func TestClient_Invocations(t *testing.T) {
	executor := testutils.NewFakeExecutor().FailOn("--addmode DP1", testutils.FakeResponse{
		Stderr: "X Error of failed request:  BadMatch",
	})
	client := xrandr.NewClient("xrandr", executor, false)
	ctx := context.Background()

	newMode := client.NewMode(ctx, "1920x1080R", []string{"138.50", "1920", "1968"})
	assert.False(t, newMode.Failed())
	assert.Equal(t, "--newmode 1920x1080R 138.50 1920 1968", newMode.String())

	addMode := client.AddMode(ctx, "DP1", "1920x1080R")
	assert.True(t, addMode.Failed(), "stderr output is a soft failure")
	assert.NoError(t, addMode.Err)
	assert.Contains(t, addMode.Stderr, "BadMatch")

	output := client.Output(ctx, "DP1", []string{"--mode", "1920x1080R", "--above", "LVDS1"})
	assert.False(t, output.Failed())

	assert.Equal(t, []string{
		"--newmode 1920x1080R 138.50 1920 1968",
		"--addmode DP1 1920x1080R",
		"--output DP1 --mode 1920x1080R --above LVDS1",
	}, executor.Commands())
}

func TestClient_DryRun(t *testing.T) {
	logs := testutils.CaptureJSONLogs(t)
	executor := testutils.NewFakeExecutor()
	client := xrandr.NewClient("xrandr", executor, true)

	invocation := client.Output(context.Background(), "DP1", []string{"--off"})
	assert.True(t, invocation.Skipped)
	assert.False(t, invocation.Failed())
	assert.Empty(t, executor.Commands())
	testutils.AssertLogsPresent(t, logs.Bytes(), []utils.LogID{utils.DryRunLogID})
}

func TestInvocation_Failed(t *testing.T) {
	assert.False(t, (&xrandr.Invocation{Stderr: " \n"}).Failed(), "whitespace only stderr is ignored")
	assert.True(t, (&xrandr.Invocation{Err: errors.New("exit status 1")}).Failed())
}

func TestClient_BinarySource(t *testing.T) {
	executor := testutils.NewFakeExecutor().WithProp(testutils.PropOutput("AAAA"))
	binary := "/usr/bin/xrandr"
	client := xrandr.NewClient("xrandr", executor, false).
		WithBinarySource(func() string { return binary })

	_, err := client.QueryFingerprints(context.Background())
	require.NoError(t, err)
	binary = "/opt/xrandr/bin/xrandr"
	client.Output(context.Background(), "DP1", []string{"--auto"})
	binary = ""
	client.Output(context.Background(), "DP1", []string{"--off"})

	assert.Equal(t, []string{"/usr/bin/xrandr", "/opt/xrandr/bin/xrandr", "xrandr"}, executor.Binaries(),
		"an empty source falls back to the constructor binary")
}
