package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name          string
		entry         string
		expected      *ModeSpec
		newModeArgs   []string
		errorContains string
	}{
		{
			name:  "reduced blanking mode",
			entry: `DP1:"1920x1080R" 60.00 1920 1968 2000 2080 1080 1083 1088 1111 +hsync -vsync`,
			expected: &ModeSpec{
				Monitor:    "DP1",
				Resolution: "1920x1080R",
				Modeline:   "60.00 1920 1968 2000 2080 1080 1083 1088 1111 +hsync -vsync",
				Raw:        `"1920x1080R" 60.00 1920 1968 2000 2080 1080 1083 1088 1111 +hsync -vsync`,
			},
			newModeArgs: []string{
				"1920x1080R", "60.00", "1920", "1968", "2000", "2080",
				"1080", "1083", "1088", "1111", "+hsync", "-vsync",
			},
		},
		{
			name:  "whitespace around parts and newlines in the modeline",
			entry: "  HDMI1 : \"1280x1024\"   108.00 1280\n 1328 1440 1688",
			expected: &ModeSpec{
				Monitor:    "HDMI1",
				Resolution: "1280x1024",
				Modeline:   "108.00 1280 1328 1440 1688",
				Raw:        "\"1280x1024\"   108.00 1280\n 1328 1440 1688",
			},
			newModeArgs: []string{"1280x1024", "108.00", "1280", "1328", "1440", "1688"},
		},
		{
			name:          "missing monitor delimiter",
			entry:         `DP1 "1920x1080" 60.00`,
			errorContains: "missing ':'",
		},
		{
			name:          "empty monitor",
			entry:         `:"1920x1080" 60.00`,
			errorContains: "monitor cant be empty",
		},
		{
			name:          "unquoted resolution",
			entry:         `DP1:1920x1080 60.00`,
			errorContains: "found 0",
		},
		{
			name:          "two resolutions",
			entry:         `DP1:"1920x1080" "1280x720" 60.00`,
			errorContains: "found 2",
		},
		{
			name:          "text before the resolution",
			entry:         `DP1:mode "1920x1080" 60.00`,
			errorContains: "unexpected text",
		},
		{
			name:          "no modeline",
			entry:         `DP1:"1920x1080"`,
			errorContains: "modeline cant be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := parseMode(tt.entry)
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
			assert.Equal(t, tt.newModeArgs, mode.NewModeArgs())
		})
	}
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name          string
		entry         string
		expected      *OutputSpec
		errorContains string
	}{
		{
			name:     "placement flags",
			entry:    "DP1: --mode 1920x1080R --above LVDS1",
			expected: &OutputSpec{Monitor: "DP1", Args: []string{"--mode", "1920x1080R", "--above", "LVDS1"}, Raw: "--mode 1920x1080R --above LVDS1"},
		},
		{
			name:     "off",
			entry:    " VGA1 :--off ",
			expected: &OutputSpec{Monitor: "VGA1", Args: []string{"--off"}, Raw: "--off"},
		},
		{
			name:          "missing delimiter",
			entry:         "DP1 --auto",
			errorContains: "missing ':'",
		},
		{
			name:          "empty monitor",
			entry:         ": --auto",
			errorContains: "monitor cant be empty",
		},
		{
			name:          "no arguments",
			entry:         "DP1:   ",
			errorContains: "placement arguments cant be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := parseOutput(tt.entry)
			if tt.errorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, output)
		})
	}
}

func TestParseFingerprints(t *testing.T) {
	assert.Equal(t, []string{"AAAA", "BBBB"}, parseFingerprints(" AA AA ,\n\tBBBB, "))
	assert.Equal(t, []string{}, parseFingerprints(""))
}

func TestEntryError(t *testing.T) {
	profile := newProfile("desk", map[string]string{
		modesKey:   `DP1 "1920x1080" 60.00`,
		outputsKey: "DP1: --auto",
	})
	require.Len(t, profile.Invalid, 1)
	assert.Equal(t, `profile desk: add_modes entry 0 ("DP1 \"1920x1080\" 60.00"): missing ':' between monitor and mode`,
		profile.Invalid[0].Error())
	require.Len(t, profile.Outputs, 1)
}
