// Package matchers resolves which profile should be applied for the
// connected monitors.
package matchers

import (
	"fmt"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/sirupsen/logrus"
)

type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match returns the first profile, in file order, whose EDIDs equal the
// connected ones including their order.
func (m *Matcher) Match(store *config.Store, fingerprints []string) (bool, *MatchedProfile) {
	for _, profile := range store.Profiles() {
		if !profile.HasFingerprints() {
			logrus.WithField("profile", profile.Name).Debug("Profile has no EDIDs, skipping")
		}
	}

	profile, found := store.FindByFingerprints(fingerprints)
	if !found {
		logrus.WithFields(logrus.Fields{
			"profiles":  len(store.Profiles()),
			"connected": len(fingerprints),
		}).Debug("No profile lists the connected EDIDs")
		return false, nil
	}
	logrus.WithField("profile", profile.Name).Debug("Profile EDIDs match")
	return true, NewMatchedProfile(profile, fingerprints)
}

// Resolve prefers an explicitly requested profile over hardware matching.
func (m *Matcher) Resolve(store *config.Store, fingerprints []string, requested string) (*MatchedProfile, error) {
	if requested != "" {
		profile, err := store.Get(requested)
		if err != nil {
			return nil, fmt.Errorf("cant select profile: %w", err)
		}
		return NewSelectedProfile(profile), nil
	}

	found, matched := m.Match(store, fingerprints)
	if !found {
		return nil, errs.ErrNoMatchingProfile
	}
	return matched, nil
}
