package tui

import (
	"fmt"
	"strings"

	"github.com/fiffeek/xrandrprofiles/internal/config"
)

type ProfileItem struct {
	Name    string
	EDIDs   int
	Modes   int
	Outputs int
	Invalid int
	Matched bool
}

func NewProfileItems(store *config.Store, matched string) []ProfileItem {
	items := []ProfileItem{}
	for _, profile := range store.Profiles() {
		items = append(items, ProfileItem{
			Name:    profile.Name,
			EDIDs:   len(profile.Fingerprints),
			Modes:   len(profile.Modes),
			Outputs: len(profile.Outputs),
			Invalid: len(profile.Invalid),
			Matched: profile.Name == matched,
		})
	}
	return items
}

func (p ProfileItem) Indicator() string {
	indicators := []string{}
	if p.Matched {
		indicators = append(indicators, MatchedIndicator.Render(" [CONNECTED]"))
	}
	if p.Invalid > 0 {
		indicators = append(indicators, InvalidIndicator.Render(fmt.Sprintf(" [%d MALFORMED]", p.Invalid)))
	}
	return strings.Join(indicators, "")
}

func (p ProfileItem) Description() string {
	if p.EDIDs == 0 {
		return fmt.Sprintf("no EDIDs (explicit only), %d modes, %d outputs", p.Modes, p.Outputs)
	}
	return fmt.Sprintf("%d EDIDs, %d modes, %d outputs", p.EDIDs, p.Modes, p.Outputs)
}
