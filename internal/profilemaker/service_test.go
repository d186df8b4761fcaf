package profilemaker_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fiffeek/xrandrprofiles/internal/config"
	"github.com/fiffeek/xrandrprofiles/internal/errs"
	"github.com/fiffeek/xrandrprofiles/internal/profilemaker"
	"github.com/fiffeek/xrandrprofiles/internal/testutils"
	"github.com/fiffeek/xrandrprofiles/internal/xrandr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyToTemp(t *testing.T, fixture string) string {
	target := filepath.Join(t.TempDir(), ".xrandr-profiles")
	if fixture == "" {
		return target
	}
	// nolint:gosec
	content, err := os.ReadFile(fixture)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(target, content, 0o600))
	return target
}

func TestService_AddProfile(t *testing.T) {
	testCases := []struct {
		name         string
		inputFile    string
		expectedFile string
		profileName  string
		detect       bool
		prop         string
	}{
		{
			name:         "appends detected EDIDs",
			inputFile:    "testdata/existing.ini",
			expectedFile: "testdata/expected_existing_detected.ini",
			profileName:  "home",
			detect:       true,
			prop:         testutils.PropOutput("BBBB", "CCCC"),
		},
		{
			name:         "appends a commented template",
			inputFile:    "testdata/existing.ini",
			expectedFile: "testdata/expected_existing_template.ini",
			profileName:  "office",
		},
		{
			name:         "adds the missing newline before appending",
			inputFile:    "testdata/no_trailing_newline.ini",
			expectedFile: "testdata/expected_no_trailing_newline.ini",
			profileName:  "office",
		},
		{
			name:         "creates the file when missing",
			expectedFile: "testdata/expected_new_file.ini",
			profileName:  "office",
		},
		{
			name:         "no EDIDs detected leaves the template commented",
			expectedFile: "testdata/expected_new_file.ini",
			profileName:  "office",
			detect:       true,
			prop:         testutils.PropOutput(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := copyToTemp(t, tc.inputFile)
			executor := testutils.NewFakeExecutor().WithProp(tc.prop)
			svc := profilemaker.NewService(path, "xrandrprofiles", xrandr.NewClient("xrandr", executor, false))

			require.NoError(t, svc.AddProfile(context.Background(), tc.profileName, tc.detect))

			testutils.AssertFixture(t, path, tc.expectedFile, *regenerate)

			store, err := config.Load(path)
			require.NoError(t, err, "the appended file must stay loadable")
			profile, err := store.Get(tc.profileName)
			require.NoError(t, err)
			assert.Empty(t, profile.Modes)
			assert.Empty(t, profile.Outputs)
			if tc.detect {
				assert.Equal(t, 1, executor.QueryCount())
			} else {
				assert.Equal(t, 0, executor.QueryCount())
			}
		})
	}
}

func TestService_AddProfile_DetectedProfileMatches(t *testing.T) {
	path := copyToTemp(t, "")
	executor := testutils.NewFakeExecutor().WithProp(testutils.PropOutput("BBBB", "CCCC"))
	client := xrandr.NewClient("xrandr", executor, false)
	svc := profilemaker.NewService(path, "xrandrprofiles", client)

	require.NoError(t, svc.AddProfile(context.Background(), "docked", true))

	store, err := config.Load(path)
	require.NoError(t, err)
	fingerprints, err := client.QueryFingerprints(context.Background())
	require.NoError(t, err)
	profile, found := store.FindByFingerprints(fingerprints)
	require.True(t, found)
	assert.Equal(t, "docked", profile.Name)
}

func TestService_AddProfile_Rejected(t *testing.T) {
	testCases := []struct {
		name        string
		profileName string
		detect      bool
		querier     profilemaker.FingerprintQuerier
		expectedErr error
		errContains string
	}{
		{
			name:        "duplicate name",
			profileName: "laptop",
			expectedErr: errs.ErrProfileExists,
		},
		{
			name:        "reserved name",
			profileName: "General",
			errContains: "is reserved",
		},
		{
			name:        "invalid name",
			profileName: "home office",
			errContains: "invalid profile name",
		},
		{
			name:        "detection failure",
			profileName: "home",
			detect:      true,
			querier: xrandr.NewClient("xrandr", testutils.NewFakeExecutor().
				WithPropFailure(testutils.FakeResponse{Err: errors.New("Can't open display")}), false),
			errContains: "cant detect monitors",
		},
		{
			name:        "detection without a display tool",
			profileName: "home",
			detect:      true,
			errContains: "without a display tool",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := copyToTemp(t, "testdata/existing.ini")
			svc := profilemaker.NewService(path, "xrandrprofiles", tc.querier)

			err := svc.AddProfile(context.Background(), tc.profileName, tc.detect)
			require.Error(t, err)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			}
			if tc.errContains != "" {
				assert.Contains(t, err.Error(), tc.errContains)
			}
			testutils.AssertContentsSameAsFixture(t, path, "testdata/existing.ini")
		})
	}
}

func TestService_AddProfile_BrokenConfig(t *testing.T) {
	path := copyToTemp(t, "")
	require.NoError(t, os.WriteFile(path, []byte("[general]\nbogus = 1\n"), 0o600))
	svc := profilemaker.NewService(path, "xrandrprofiles", nil)

	err := svc.AddProfile(context.Background(), "home", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cant read existing profiles")
}

func TestService_AddProfile_RejectedNameDoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".xrandr-profiles")
	svc := profilemaker.NewService(path, "xrandrprofiles", nil)

	err := svc.AddProfile(context.Background(), "1st", false)
	require.Error(t, err)
	testutils.AssertFileDoesNotExist(t, path)
}

func TestValidateProfileName(t *testing.T) {
	tests := []struct {
		name        string
		profileName string
		wantErr     bool
		errContains string
	}{
		{name: "valid lowercase", profileName: "home"},
		{name: "valid with numbers", profileName: "office2"},
		{name: "valid with hyphens", profileName: "home-office"},
		{name: "valid with underscores", profileName: "home_office"},
		{name: "valid complex", profileName: "my-profile_123"},
		{name: "valid PascalCase", profileName: "HomeOffice"},
		{
			name:        "empty string",
			profileName: "",
			wantErr:     true,
			errContains: "cannot be empty",
		},
		{
			name:        "starts with number",
			profileName: "1home",
			wantErr:     true,
			errContains: "must start with a letter",
		},
		{
			name:        "contains space",
			profileName: "home office",
			wantErr:     true,
			errContains: "letters, numbers, hyphens, and underscores",
		},
		{
			name:        "contains section brackets",
			profileName: "home]",
			wantErr:     true,
			errContains: "letters, numbers, hyphens, and underscores",
		},
		{
			name:        "too long",
			profileName: "this_is_a_very_long_profile_name_that_exceeds_the_maximum_allowed_length",
			wantErr:     true,
			errContains: "must be 50 characters or less",
		},
		{
			name:        "starts with underscore",
			profileName: "_home",
			wantErr:     true,
			errContains: "must start with a letter",
		},
		{
			name:        "reserved",
			profileName: "general",
			wantErr:     true,
			errContains: "reserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := profilemaker.ValidateProfileName(tt.profileName)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
