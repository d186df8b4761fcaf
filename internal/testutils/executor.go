package testutils

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type FakeResponse struct {
	Stdout string
	Stderr string
	Err    error
}

// FakeExecutor records display tool invocations instead of running them.
// Queries (--prop) return the configured outputs in sequence, repeating the
// last one; other invocations succeed unless a failure was registered for a
// prefix of their arguments.
type FakeExecutor struct {
	mu          sync.Mutex
	calls       [][]string
	binaries    []string
	propOutputs []FakeResponse
	propCalls   int
	failures    map[string]FakeResponse
}

func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{failures: make(map[string]FakeResponse)}
}

func (f *FakeExecutor) WithProp(outputs ...string) *FakeExecutor {
	for _, output := range outputs {
		f.propOutputs = append(f.propOutputs, FakeResponse{Stdout: output})
	}
	return f
}

func (f *FakeExecutor) WithPropFailure(resp FakeResponse) *FakeExecutor {
	f.propOutputs = append(f.propOutputs, resp)
	return f
}

// FailOn makes every invocation whose joined arguments start with prefix
// respond with the given stderr and error.
func (f *FakeExecutor) FailOn(prefix string, resp FakeResponse) *FakeExecutor {
	f.failures[prefix] = resp
	return f
}

func (f *FakeExecutor) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.binaries = append(f.binaries, name)
	f.calls = append(f.calls, append([]string{}, args...))

	if len(args) == 1 && args[0] == "--prop" {
		if len(f.propOutputs) == 0 {
			return []byte{}, nil, nil
		}
		resp := f.propOutputs[min(f.propCalls, len(f.propOutputs)-1)]
		f.propCalls++
		return []byte(resp.Stdout), []byte(resp.Stderr), resp.Err
	}

	joined := strings.Join(args, " ")
	for prefix, resp := range f.failures {
		if strings.HasPrefix(joined, prefix) {
			return []byte(resp.Stdout), []byte(resp.Stderr), resp.Err
		}
	}
	return []byte{}, []byte{}, nil
}

// Commands returns every non-query invocation as a joined argument string.
func (f *FakeExecutor) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	commands := []string{}
	for _, call := range f.calls {
		if len(call) == 1 && call[0] == "--prop" {
			continue
		}
		commands = append(commands, strings.Join(call, " "))
	}
	return commands
}

func (f *FakeExecutor) Binaries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.binaries...)
}

func (f *FakeExecutor) QueryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.propCalls
}

// PropOutput renders `xrandr --prop` like output with one connected monitor
// per EDID, the hex split into rows the way xrandr prints them.
func PropOutput(edids ...string) string {
	var b strings.Builder
	b.WriteString("Screen 0: minimum 8 x 8, current 3840 x 1080, maximum 32767 x 32767\n")
	for i, edid := range edids {
		fmt.Fprintf(&b, "DP-%d connected 1920x1080+%d+0 (normal left inverted right x axis y axis) 527mm x 296mm\n", i+1, i*1920)
		b.WriteString("\tEDID: \n")
		for start := 0; start < len(edid); start += 32 {
			b.WriteString("\t\t" + edid[start:min(start+32, len(edid))] + "\n")
		}
		b.WriteString("\tBorderDimensions: 4 \n")
		b.WriteString("\t\tsupported: 4\n")
		b.WriteString("   1920x1080     60.00*+  50.00    59.94  \n")
	}
	b.WriteString("HDMI-1 disconnected (normal left inverted right x axis y axis)\n")
	return b.String()
}
