// Package tui renders profiles in the terminal and lets the user pick one.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/sirupsen/logrus"
)

// ConfigReloaded carries the store loaded after the profiles file changed.
type ConfigReloaded struct {
	Store *config.Store
}

type Model struct {
	items    []ProfileItem
	cursor   int
	chosen   string
	matched  string
	help     help.Model
	keyMap   keyMap
	width    int
	fullHelp bool
}

// NewModel starts with the cursor on the profile matching the connected
// monitors, if any.
func NewModel(store *config.Store, matched string) Model {
	m := Model{
		matched: matched,
		help:    help.New(),
		keyMap:  rootKeyMap,
	}
	m.setItems(NewProfileItems(store, matched))
	return m
}

func (m *Model) setItems(items []ProfileItem) {
	selected := ""
	if m.cursor < len(m.items) {
		selected = m.items[m.cursor].Name
	}
	m.items = items
	m.cursor = 0
	for i, item := range items {
		if (selected == "" && item.Matched) || (selected != "" && item.Name == selected) {
			m.cursor = i
		}
	}
}

// Chosen returns the profile picked with enter, empty when the user quit.
func (m Model) Chosen() string {
	return m.chosen
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case ConfigReloaded:
		logrus.Debug("Refreshing profiles after reload")
		m.setItems(NewProfileItems(msg.Store, m.matched))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keyMap.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keyMap.ShowFullHelp):
			m.fullHelp = !m.fullHelp
			m.help.ShowAll = m.fullHelp
		case key.Matches(msg, m.keyMap.Enter):
			if len(m.items) == 0 {
				return m, nil
			}
			m.chosen = m.items[m.cursor].Name
			logrus.Debugf("Profile chosen: %s", m.chosen)
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	sections := []string{TitleStyle.Margin(0, 0, 1, 0).Render("Select a profile to apply")}

	if len(m.items) == 0 {
		sections = append(sections, MutedStyle.Render("No profiles configured, see add-profile"))
	}
	for i, item := range m.items {
		title := "  " + ProfileListTitle.Render(item.Name)
		if i == m.cursor {
			title = ProfileListSelected.Render("► " + item.Name)
		}
		sections = append(sections,
			title+item.Indicator(),
			"    "+ItemSubtitle.Render(item.Description()))
	}

	if m.chosen != "" {
		sections = append(sections, "", MutedStyle.Render("Applying "+m.chosen+"..."))
	}

	sections = append(sections, "", HelpStyle.Render(m.help.View(m.keyMap)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// RenderProfiles lists the profiles for non interactive output.
func RenderProfiles(store *config.Store, matched string) string {
	items := NewProfileItems(store, matched)
	if len(items) == 0 {
		return MutedStyle.Render("No profiles configured") + "\n"
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString(ProfileListTitle.Render(item.Name) + item.Indicator() + "\n")
		b.WriteString("    " + ItemSubtitle.Render(item.Description()) + "\n")
	}
	return b.String()
}
