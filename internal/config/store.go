// Package config loads the INI-like profiles file: one [general] section with
// tool settings and any number of named monitor profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

const DefaultPath = "$HOME/.xrandr-profiles"

var loadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	AllowNonUniqueSections:     true,
	IgnoreInlineComment:        true,
	SkipUnrecognizableLines:    false,
}

// Store is a parsed profiles file. Profiles keep the order of the file.
type Store struct {
	Path     string
	General  *GeneralSection
	profiles []*Profile
	byName   map[string]*Profile
}

func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + strings.TrimPrefix(path, "~")
	}
	return os.ExpandEnv(path)
}

func Load(configPath string) (*Store, error) {
	configPath = ExpandPath(configPath)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file %s not found", configPath)
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("cant convert config path to abs: %w", err)
	}

	// nolint:gosec
	contents, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("cant read config: %w", err)
	}

	return Parse(absPath, contents)
}

// Parse reads a store from raw contents, used when the file is not on disk yet.
func Parse(path string, contents []byte) (*Store, error) {
	file, err := ini.LoadSources(loadOptions, joinContinuations(contents))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	store, err := newStore(path, file)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return store, nil
}

func newStore(path string, file *ini.File) (*Store, error) {
	store := &Store{
		Path:     path,
		profiles: []*Profile{},
		byName:   make(map[string]*Profile),
	}

	var general *ini.Section
	for _, section := range file.Sections() {
		name := section.Name()
		if name == ini.DefaultSection {
			if len(section.Keys()) > 0 {
				return nil, errors.New("keys have to be defined inside a [section]")
			}
			continue
		}

		if IsReservedSection(name) {
			if general != nil {
				return nil, fmt.Errorf("section %s defined more than once", name)
			}
			general = section
			continue
		}

		if _, ok := store.byName[name]; ok {
			return nil, fmt.Errorf("profile %s: %w", name, errs.ErrProfileExists)
		}

		values := make(map[string]string)
		for _, key := range section.Keys() {
			// add-modes is accepted as a spelling of add_modes
			keyName := strings.ReplaceAll(strings.ToLower(key.Name()), "-", "_")
			switch keyName {
			case fingerprintsKey, modesKey, outputsKey:
				values[keyName] = key.Value()
			default:
				logrus.WithFields(logrus.Fields{"profile": name, "key": key.Name()}).Warn("Ignoring unknown key")
			}
		}

		profile := newProfile(name, values)
		store.profiles = append(store.profiles, profile)
		store.byName[name] = profile

		logrus.WithFields(logrus.Fields{
			"profile":      name,
			"fingerprints": len(profile.Fingerprints),
			"modes":        len(profile.Modes),
			"outputs":      len(profile.Outputs),
			"invalid":      len(profile.Invalid),
		}).Debug("Profile loaded")
	}

	generalSection, err := newGeneralSection(general)
	if err != nil {
		return nil, fmt.Errorf("general section: %w", err)
	}
	if err := generalSection.Validate(); err != nil {
		return nil, fmt.Errorf("general section validation failed: %w", err)
	}
	store.General = generalSection

	return store, nil
}

func (s *Store) Profiles() []*Profile {
	return s.profiles
}

func (s *Store) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

func (s *Store) Get(name string) (*Profile, error) {
	profile, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrProfileNotFound, name)
	}
	return profile, nil
}

// FindByFingerprints returns the first profile, in file order, whose
// fingerprint list equals the given list element for element.
func (s *Store) FindByFingerprints(fingerprints []string) (*Profile, bool) {
	for _, profile := range s.profiles {
		if profile.MatchesFingerprints(fingerprints) {
			return profile, true
		}
	}
	return nil, false
}

// Validate reports every malformed entry. Such entries never stop a profile
// from being applied, they are skipped at run time.
func (s *Store) Validate() error {
	problems := []error{}
	for _, profile := range s.profiles {
		if !profile.HasFingerprints() {
			logrus.WithField("profile", profile.Name).Warn("Profile has no EDIDs, it can only be applied by name")
		}
		for _, invalid := range profile.Invalid {
			problems = append(problems, invalid)
		}
	}
	return errors.Join(problems...)
}
