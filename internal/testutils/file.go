package testutils

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertFileExists(t *testing.T, path string) {
	_, err := os.Stat(path)
	assert.NoError(t, err, "file should exist")
}

func AssertFileDoesNotExist(t *testing.T, path string) {
	stat, err := os.Stat(path)
	assert.Error(t, err, "file should not exist")
	assert.Nil(t, stat, "file should not exist")
}

func AssertContentsSameAsFixture(t *testing.T, targetFile, fixtureFile string) {
	// nolint:gosec
	targetContent, err := os.ReadFile(targetFile)
	require.NoError(t, err, "should be able to read the target file")
	// nolint:gosec
	fixtureContent, err := os.ReadFile(fixtureFile)
	require.NoError(t, err, "should be able to read the fixture file")
	assert.Equal(t, string(fixtureContent), string(targetContent),
		"target content should be the same as in the fixture %s", fixtureFile)
}

func AssertFixture(t *testing.T, target, fixture string, regenerate bool) {
	if regenerate {
		// nolint:gosec
		content, err := os.ReadFile(target)
		require.NoError(t, err, "should be able to read the target file")
		require.NoError(t, os.WriteFile(fixture, content, 0o600), "cant write to file")
		return
	}
	AssertContentsSameAsFixture(t, target, fixture)
}
