package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"reflect"
	"runtime"
	"strings"
)

// ExecCommand runs the binary and waits for it to exit. Stdout and stderr
// are returned separately, a non-zero exit is reported as an error.
func ExecCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	// nolint:gosec
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return out.Bytes(), stderr.Bytes(), fmt.Errorf("command `%s %s` failed: %w",
			name, strings.Join(args, " "), err)
	}
	return out.Bytes(), stderr.Bytes(), nil
}

// ExecShell runs a user supplied command line through bash.
func ExecShell(ctx context.Context, command string) (string, error) {
	// nolint:gosec
	out, err := exec.CommandContext(ctx, "bash", "-c", command).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("cant run `%s`: %w", command, err)
	}
	return string(out), nil
}

func GetFunctionName(i any) string {
	return runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
}
