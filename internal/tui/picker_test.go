package tui_test

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/testutils"
	"github.com/fiffeek/xrandrprofiles/internal/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type step struct {
	msg                   tea.Msg
	expectOutputToContain string
}

var (
	footer      = "enter apply profile • q quit • ? more"
	defaultWait = 200 * time.Millisecond
)

func testStore(t *testing.T) *config.Store {
	return testutils.NewTestConfig(t).
		WithProfile(&testutils.TestProfile{
			Name:    "laptop",
			EDIDs:   []string{"AAAA"},
			Outputs: []string{"LVDS1: --auto", "DP1: --off"},
		}).
		WithProfile(&testutils.TestProfile{
			Name:    "home",
			EDIDs:   []string{"AAAA", "BBBB"},
			Modes:   []string{`DP1:"1920x1080R" 138.50 1920 1968 2000 2080 1080 1083 1088 1111 +hsync -vsync`},
			Outputs: []string{"DP1: --mode 1920x1080R --above LVDS1", "HDMI1 --off"},
		}).
		WithProfile(&testutils.TestProfile{
			Name:    "presentation",
			Outputs: []string{"LVDS1: --auto", "VGA1: --same-as LVDS1"},
		}).
		Get().Get()
}

func TestModel_Update_UserFlows(t *testing.T) {
	tests := []struct {
		name           string
		matched        string
		steps          []step
		expectedChosen string
	}{
		{
			name:           "enter applies the connected profile",
			matched:        "home",
			steps:          []step{{msg: tea.KeyMsg{Type: tea.KeyEnter}, expectOutputToContain: "Applying home"}},
			expectedChosen: "home",
		},
		{
			name:    "navigate down",
			matched: "",
			steps: []step{
				{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, expectOutputToContain: "► home"},
				{msg: tea.KeyMsg{Type: tea.KeyDown}, expectOutputToContain: "► presentation"},
				{msg: tea.KeyMsg{Type: tea.KeyDown}},
				{msg: tea.KeyMsg{Type: tea.KeyEnter}, expectOutputToContain: "Applying presentation"},
			},
			expectedChosen: "presentation",
		},
		{
			name:    "navigate up stops at the first profile",
			matched: "home",
			steps: []step{
				{msg: tea.KeyMsg{Type: tea.KeyUp}, expectOutputToContain: "► laptop"},
				{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}},
				{msg: tea.KeyMsg{Type: tea.KeyEnter}, expectOutputToContain: "Applying laptop"},
			},
			expectedChosen: "laptop",
		},
		{
			name:    "quit without choosing",
			matched: "home",
			steps: []step{
				{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, expectOutputToContain: "close help"},
				{msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
			},
			expectedChosen: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := tui.NewModel(testStore(t), tt.matched)
			tm := teatest.NewTestModel(t, model, teatest.WithInitialTermSize(120, 30))

			// wait for app to be `ready`, just check if the footer is up
			teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
				return bytes.Contains(bts, []byte(footer))
			}, teatest.WithCheckInterval(time.Millisecond*50),
				teatest.WithDuration(time.Millisecond*500))

			for _, step := range tt.steps {
				tm.Send(step.msg)
				if step.expectOutputToContain != "" {
					teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
						return bytes.Contains(bts, []byte(step.expectOutputToContain))
					}, teatest.WithCheckInterval(time.Millisecond*50), teatest.WithDuration(defaultWait))
				}
			}
			tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

			fm := tm.FinalModel(t)
			m, ok := fm.(tui.Model)
			require.True(t, ok, "the model should be of the same type")
			assert.Equal(t, tt.expectedChosen, m.Chosen())
		})
	}
}

func TestModel_ConfigReloaded(t *testing.T) {
	model := tui.NewModel(testStore(t), "")
	updated, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})

	reloaded := testutils.NewTestConfig(t).
		WithProfile(&testutils.TestProfile{Name: "office", EDIDs: []string{"CCCC"}}).
		WithProfile(&testutils.TestProfile{Name: "home", EDIDs: []string{"AAAA", "BBBB"}}).
		Get().Get()
	updated, _ = updated.Update(tui.ConfigReloaded{Store: reloaded})

	view := updated.View()
	assert.Contains(t, view, "► home", "selection follows the profile name")
	assert.Contains(t, view, "  office")
	assert.NotContains(t, view, "laptop")

	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, ok := updated.(tui.Model)
	require.True(t, ok)
	assert.Equal(t, "home", m.Chosen())
}

func TestModel_EmptyStore(t *testing.T) {
	store, err := config.Parse("/tmp/.xrandr-profiles", []byte("[general]\nnotifications = false\n"))
	require.NoError(t, err)
	model := tui.NewModel(store, "")

	assert.Contains(t, model.View(), "No profiles configured")
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, "", updated.(tui.Model).Chosen())
}

func TestRenderProfiles(t *testing.T) {
	expected := "laptop\n" +
		"    1 EDIDs, 0 modes, 2 outputs\n" +
		"home [CONNECTED] [1 MALFORMED]\n" +
		"    2 EDIDs, 1 modes, 1 outputs\n" +
		"presentation\n" +
		"    no EDIDs (explicit only), 0 modes, 2 outputs\n"

	assert.Equal(t, expected, tui.RenderProfiles(testStore(t), "home"))
}
