package matchers

import "github.com/fiffeek/xrandrprofiles/internal/config"

type MatchReason int

const (
	ByFingerprints MatchReason = iota
	ByName
)

func (r MatchReason) Value() string {
	switch r {
	case ByFingerprints:
		return "edids"
	case ByName:
		return "name"
	}
	return "unknown"
}

type MatchedProfile struct {
	Profile      *config.Profile
	Reason       MatchReason
	Fingerprints []string
}

func NewMatchedProfile(profile *config.Profile, fingerprints []string) *MatchedProfile {
	if profile == nil {
		return nil
	}
	return &MatchedProfile{
		Profile:      profile,
		Reason:       ByFingerprints,
		Fingerprints: fingerprints,
	}
}

func NewSelectedProfile(profile *config.Profile) *MatchedProfile {
	if profile == nil {
		return nil
	}
	return &MatchedProfile{
		Profile: profile,
		Reason:  ByName,
	}
}
