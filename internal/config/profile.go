package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	fingerprintsKey = "edids"
	modesKey        = "add_modes"
	outputsKey      = "outputs"
	entrySeparator  = ","
	monitorSep      = ":"
)

var resolutionRegex = regexp.MustCompile(`"([0-9xR]+)"`)

// Profile is one known monitor arrangement: the fingerprints identifying it
// and the display tool commands realizing it.
type Profile struct {
	Name         string
	Fingerprints []string
	Modes        []*ModeSpec
	Outputs      []*OutputSpec
	// Invalid holds add_modes/outputs entries that could not be parsed
	Invalid []*EntryError
}

// ModeSpec registers a custom mode and attaches it to a monitor.
type ModeSpec struct {
	Monitor    string
	Resolution string
	Modeline   string
	Raw        string
}

func (m *ModeSpec) Timings() []string {
	return strings.Fields(m.Modeline)
}

// NewModeArgs returns the mode name followed by its timing parameters.
func (m *ModeSpec) NewModeArgs() []string {
	return append([]string{m.Resolution}, m.Timings()...)
}

// OutputSpec applies placement arguments to a monitor.
type OutputSpec struct {
	Monitor string
	Args    []string
	Raw     string
}

type EntryError struct {
	Profile string
	Key     string
	Index   int
	Entry   string
	Reason  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("profile %s: %s entry %d (%q): %v", e.Profile, e.Key, e.Index, e.Entry, e.Reason)
}

func (e *EntryError) Unwrap() error {
	return e.Reason
}

// HasFingerprints tells if the profile can take part in hardware matching.
func (p *Profile) HasFingerprints() bool {
	return len(p.Fingerprints) > 0
}

// MatchesFingerprints compares element by element, order included.
func (p *Profile) MatchesFingerprints(fingerprints []string) bool {
	if !p.HasFingerprints() {
		return false
	}
	return slices.Equal(p.Fingerprints, fingerprints)
}

func NormalizeFingerprint(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func parseFingerprints(value string) []string {
	fingerprints := []string{}
	for _, item := range strings.Split(NormalizeFingerprint(value), entrySeparator) {
		if item == "" {
			continue
		}
		fingerprints = append(fingerprints, item)
	}
	return fingerprints
}

func splitEntries(value string) []string {
	entries := []string{}
	for _, entry := range strings.Split(value, entrySeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseMode(entry string) (*ModeSpec, error) {
	monitor, rest, found := strings.Cut(entry, monitorSep)
	if !found {
		return nil, errors.New("missing ':' between monitor and mode")
	}
	monitor = strings.TrimSpace(monitor)
	if monitor == "" {
		return nil, errors.New("monitor cant be empty")
	}

	matches := resolutionRegex.FindAllStringSubmatchIndex(rest, -1)
	if len(matches) != 1 {
		return nil, fmt.Errorf("expected exactly one quoted resolution like \"1920x1080\", found %d", len(matches))
	}
	match := matches[0]
	if strings.TrimSpace(rest[:match[0]]) != "" {
		return nil, errors.New("unexpected text before the quoted resolution")
	}

	modeline := strings.Join(strings.Fields(rest[match[1]:]), " ")
	if modeline == "" {
		return nil, errors.New("modeline cant be empty")
	}

	return &ModeSpec{
		Monitor:    monitor,
		Resolution: rest[match[2]:match[3]],
		Modeline:   modeline,
		Raw:        strings.TrimSpace(rest),
	}, nil
}

func parseOutput(entry string) (*OutputSpec, error) {
	monitor, rest, found := strings.Cut(entry, monitorSep)
	if !found {
		return nil, errors.New("missing ':' between monitor and placement arguments")
	}
	monitor = strings.TrimSpace(monitor)
	if monitor == "" {
		return nil, errors.New("monitor cant be empty")
	}
	args := strings.Fields(rest)
	if len(args) == 0 {
		return nil, errors.New("placement arguments cant be empty")
	}

	return &OutputSpec{
		Monitor: monitor,
		Args:    args,
		Raw:     strings.TrimSpace(rest),
	}, nil
}

func newProfile(name string, values map[string]string) *Profile {
	profile := &Profile{
		Name:         name,
		Fingerprints: parseFingerprints(values[fingerprintsKey]),
		Modes:        []*ModeSpec{},
		Outputs:      []*OutputSpec{},
		Invalid:      []*EntryError{},
	}

	for i, entry := range splitEntries(values[modesKey]) {
		mode, err := parseMode(entry)
		if err != nil {
			profile.Invalid = append(profile.Invalid, &EntryError{
				Profile: name, Key: modesKey, Index: i, Entry: entry, Reason: err,
			})
			continue
		}
		profile.Modes = append(profile.Modes, mode)
	}

	for i, entry := range splitEntries(values[outputsKey]) {
		output, err := parseOutput(entry)
		if err != nil {
			profile.Invalid = append(profile.Invalid, &EntryError{
				Profile: name, Key: outputsKey, Index: i, Entry: entry, Reason: err,
			})
			continue
		}
		profile.Outputs = append(profile.Outputs, output)
	}

	return profile
}
