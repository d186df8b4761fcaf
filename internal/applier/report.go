package applier

import (
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
)

type StepKind int

const (
	NewModeStep StepKind = iota
	AddModeStep
	OutputStep
)

func (k StepKind) Value() string {
	switch k {
	case NewModeStep:
		return "newmode"
	case AddModeStep:
		return "addmode"
	case OutputStep:
		return "output"
	}
	return "unknown"
}

func (k StepKind) Describe() string {
	switch k {
	case NewModeStep:
		return "registering a mode"
	case AddModeStep:
		return "adding a mode"
	case OutputStep:
		return "choosing an output"
	}
	return "running a step"
}

type Step struct {
	Kind       StepKind
	Monitor    string
	Invocation *xrandr.Invocation
}

type Report struct {
	Profile   string
	Steps     []*Step
	Invalid   []*config.EntryError
	Cancelled bool
}

// Failed counts failed invocations and malformed entries.
func (r *Report) Failed() int {
	failed := len(r.Invalid)
	for _, step := range r.Steps {
		if step.Invocation.Failed() {
			failed++
		}
	}
	return failed
}

func (r *Report) Commands() []string {
	commands := make([]string, 0, len(r.Steps))
	for _, step := range r.Steps {
		commands = append(commands, step.Invocation.String())
	}
	return commands
}
