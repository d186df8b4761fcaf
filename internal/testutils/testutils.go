// Package testutils provides utils for testing
// should not be imported by any other app packages
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/stretchr/testify/require"
)

type TestProfile struct {
	Name    string
	EDIDs   []string
	Modes   []string
	Outputs []string
}

// TestConfig builds a profiles file on disk and loads it.
type TestConfig struct {
	t        *testing.T
	general  map[string]string
	profiles []*TestProfile
	cfgFile  *string
}

func NewTestConfig(t *testing.T) *TestConfig {
	return &TestConfig{t: t, general: map[string]string{}}
}

func (t *TestConfig) WithProfile(p *TestProfile) *TestConfig {
	t.profiles = append(t.profiles, p)
	return t
}

func (t *TestConfig) WithGeneral(key, value string) *TestConfig {
	t.general[key] = value
	return t
}

func (t *TestConfig) WithConfigPath(path string) *TestConfig {
	t.cfgFile = &path
	return t
}

func (t *TestConfig) Render() string {
	var b strings.Builder
	if len(t.general) > 0 {
		b.WriteString("[general]\n")
		for key, value := range t.general {
			fmt.Fprintf(&b, "%s = %s\n", key, value)
		}
		b.WriteString("\n")
	}
	for _, p := range t.profiles {
		fmt.Fprintf(&b, "[%s]\n", p.Name)
		if len(p.EDIDs) > 0 {
			fmt.Fprintf(&b, "EDIDs = %s\n", strings.Join(p.EDIDs, ","))
		}
		if len(p.Modes) > 0 {
			fmt.Fprintf(&b, "add_modes = %s\n", strings.Join(p.Modes, ", "))
		}
		if len(p.Outputs) > 0 {
			fmt.Fprintf(&b, "outputs = %s\n", strings.Join(p.Outputs, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (t *TestConfig) SaveToFile() string {
	if t.cfgFile == nil {
		path := filepath.Join(t.t.TempDir(), ".xrandr-profiles")
		t.cfgFile = &path
	}
	require.NoError(t.t, os.WriteFile(*t.cfgFile, []byte(t.Render()), 0o600), "cant write config")
	return *t.cfgFile
}

func (t *TestConfig) Get() *config.Config {
	cfg, err := config.NewConfig(t.SaveToFile())
	require.NoError(t.t, err, "cant create config")
	return cfg
}
