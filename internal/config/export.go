package config

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

type exportedMode struct {
	Monitor    string `toml:"monitor"`
	Resolution string `toml:"resolution"`
	Modeline   string `toml:"modeline"`
}

type exportedOutput struct {
	Monitor string   `toml:"monitor"`
	Args    []string `toml:"args"`
}

type exportedProfile struct {
	Order        int              `toml:"order"`
	Matched      bool             `toml:"matched"`
	Fingerprints []string         `toml:"edids"`
	Modes        []exportedMode   `toml:"add_modes"`
	Outputs      []exportedOutput `toml:"outputs"`
	Invalid      []string         `toml:"invalid_entries,omitempty"`
}

type exportedStore struct {
	Path     string                      `toml:"path"`
	Profiles map[string]*exportedProfile `toml:"profiles"`
}

// ExportTOML writes the parsed store as TOML, flagging the matched profile.
func (s *Store) ExportTOML(w io.Writer, matched string) error {
	out := exportedStore{
		Path:     s.Path,
		Profiles: make(map[string]*exportedProfile, len(s.profiles)),
	}
	for i, profile := range s.profiles {
		exported := &exportedProfile{
			Order:        i,
			Matched:      profile.Name == matched,
			Fingerprints: profile.Fingerprints,
			Modes:        []exportedMode{},
			Outputs:      []exportedOutput{},
		}
		for _, mode := range profile.Modes {
			exported.Modes = append(exported.Modes, exportedMode{
				Monitor: mode.Monitor, Resolution: mode.Resolution, Modeline: mode.Modeline,
			})
		}
		for _, output := range profile.Outputs {
			exported.Outputs = append(exported.Outputs, exportedOutput{Monitor: output.Monitor, Args: output.Args})
		}
		for _, invalid := range profile.Invalid {
			exported.Invalid = append(exported.Invalid, invalid.Error())
		}
		out.Profiles[profile.Name] = exported
	}

	if err := toml.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("cant encode profiles: %w", err)
	}
	return nil
}
