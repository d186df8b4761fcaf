package config

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// GeneralSectionName is reserved for tool settings and never matched against hardware.
const GeneralSectionName = "general"

type GeneralSection struct {
	XrandrBinary          *string
	Notifications         *bool
	NotificationTimeoutMs *int32
	PollIntervalMs        *int
	DebounceMs            *int
	PreApplyExec          *string
	PostApplyExec         *string
}

func IsReservedSection(name string) bool {
	return strings.EqualFold(name, GeneralSectionName)
}

func newGeneralSection(section *ini.Section) (*GeneralSection, error) {
	g := &GeneralSection{}
	if section == nil {
		return g, nil
	}

	for _, key := range section.Keys() {
		var err error
		switch strings.ToLower(key.Name()) {
		case "xrandr_binary":
			v := strings.TrimSpace(key.String())
			g.XrandrBinary = &v
		case "notifications":
			var v bool
			v, err = key.Bool()
			g.Notifications = &v
		case "notification_timeout_ms":
			var v int
			v, err = key.Int()
			timeout := int32(v)
			g.NotificationTimeoutMs = &timeout
		case "poll_interval_ms":
			var v int
			v, err = key.Int()
			g.PollIntervalMs = &v
		case "debounce_ms":
			var v int
			v, err = key.Int()
			g.DebounceMs = &v
		case "pre_apply_exec":
			v := key.String()
			g.PreApplyExec = &v
		case "post_apply_exec":
			v := key.String()
			g.PostApplyExec = &v
		default:
			return nil, fmt.Errorf("unknown key %s", key.Name())
		}
		if err != nil {
			return nil, fmt.Errorf("key %s has invalid value %q: %w", key.Name(), key.String(), err)
		}
	}

	return g, nil
}

func (g *GeneralSection) Validate() error {
	if g.XrandrBinary == nil || *g.XrandrBinary == "" {
		binary := "xrandr"
		g.XrandrBinary = &binary
	}
	if g.Notifications == nil {
		disabled := false
		g.Notifications = &disabled
	}
	if g.NotificationTimeoutMs == nil {
		timeout := int32(10000)
		g.NotificationTimeoutMs = &timeout
	}
	if g.PollIntervalMs == nil {
		interval := 2000
		g.PollIntervalMs = &interval
	}
	if g.DebounceMs == nil {
		debounce := 500
		g.DebounceMs = &debounce
	}

	if *g.NotificationTimeoutMs < 0 {
		return errors.New("notification_timeout_ms cant be negative")
	}
	if *g.PollIntervalMs < 0 {
		return errors.New("poll_interval_ms cant be negative, use 0 to disable polling")
	}
	if *g.DebounceMs < 0 {
		return errors.New("debounce_ms cant be negative")
	}

	return nil
}
