// Package profilemaker makes it easier to create profiles from the cli (appends a commented starter section to the profiles file)
package profilemaker

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"text/template"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/sirupsen/logrus"
)

//go:embed templates/profile.ini.tmpl
var profileTemplate string

const maxProfileNameLength = 50

var (
	profileNameStart = regexp.MustCompile(`^[A-Za-z]`)
	profileNameChars = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

type FingerprintQuerier interface {
	QueryFingerprints(ctx context.Context) ([]string, error)
}

type Service struct {
	configPath string
	binaryName string
	querier    FingerprintQuerier
}

// NewService creates a profile maker, querier can be nil when the current
// EDIDs are never filled in.
func NewService(configPath, binaryName string, querier FingerprintQuerier) *Service {
	return &Service{
		configPath: config.ExpandPath(configPath),
		binaryName: binaryName,
		querier:    querier,
	}
}

func ValidateProfileName(name string) error {
	switch {
	case name == "":
		return errors.New("profile name cannot be empty")
	case len(name) > maxProfileNameLength:
		return fmt.Errorf("profile name must be %d characters or less", maxProfileNameLength)
	case !profileNameStart.MatchString(name):
		return errors.New("profile name must start with a letter")
	case !profileNameChars.MatchString(name):
		return errors.New("profile name can only contain letters, numbers, hyphens, and underscores")
	case config.IsReservedSection(name):
		return fmt.Errorf("profile name %s is reserved", name)
	}
	return nil
}

// AddProfile appends a section for name to the profiles file, creating the
// file when it does not exist. With detect the section is filled with the
// EDIDs of the connected monitors, otherwise every key is left commented.
func (s *Service) AddProfile(ctx context.Context, name string, detect bool) error {
	if err := ValidateProfileName(name); err != nil {
		return fmt.Errorf("invalid profile name: %w", err)
	}

	content, err := s.readCurrent()
	if err != nil {
		return err
	}

	if len(content) > 0 {
		store, err := config.Parse(s.configPath, content)
		if err != nil {
			return fmt.Errorf("cant read existing profiles: %w", err)
		}
		if store.Has(name) {
			return fmt.Errorf("cant add %s: %w", name, errs.ErrProfileExists)
		}
	}

	fingerprints := []string{}
	if detect {
		if s.querier == nil {
			return errors.New("cant detect monitors without a display tool")
		}
		fingerprints, err = s.querier.QueryFingerprints(ctx)
		if err != nil {
			return fmt.Errorf("cant detect monitors: %w", err)
		}
		if len(fingerprints) == 0 {
			logrus.Warn("No EDIDs detected, leaving them commented out")
		}
	}

	block, err := s.render(name, fingerprints)
	if err != nil {
		return fmt.Errorf("cant render the new profile: %w", err)
	}

	if len(content) > 0 && content[len(content)-1] != '\n' {
		block = append([]byte("\n"), block...)
	}

	if _, err := config.Parse(s.configPath, append(content, block...)); err != nil {
		return fmt.Errorf("cant validate the new profile: %w", err)
	}

	if err := s.append(block); err != nil {
		return fmt.Errorf("cant append to the config file: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"profile": name,
		"path":    s.configPath,
		"edids":   len(fingerprints),
	}).Info("Profile added, edit the file to fill in modes and outputs")
	return nil
}

func (s *Service) readCurrent() ([]byte, error) {
	//nolint:gosec
	content, err := os.ReadFile(s.configPath)
	if errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", s.configPath).Info("Config file does not exist, it will be created")
		return []byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cant read the current config file: %w", err)
	}
	return content, nil
}

func (s *Service) render(name string, fingerprints []string) ([]byte, error) {
	tmpl, err := template.New("profile").Parse(profileTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	templateData := map[string]any{
		"Name":         name,
		"Fingerprints": fingerprints,
		"Binary":       s.binaryName,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, templateData); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	logrus.Debugf("Rendered data: %s", rendered.String())
	return rendered.Bytes(), nil
}

func (s *Service) append(block []byte) error {
	//nolint:gosec
	f, err := os.OpenFile(s.configPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("cant open %s: %w", s.configPath, err)
	}
	if _, err := f.Write(block); err != nil {
		_ = f.Close()
		return fmt.Errorf("cant write %s: %w", s.configPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cant close %s: %w", s.configPath, err)
	}
	return nil
}
