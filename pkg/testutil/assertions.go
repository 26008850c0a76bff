package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that path is a symlink whose target is exactly want
func AssertSymlink(t *testing.T, path, want string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected symlink at %s", path)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink (mode %s)", path, info.Mode())

	got, err := os.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, want, got, "symlink target of %s", path)
}

// AssertRegularFile checks that path is a regular file, not a symlink
func AssertRegularFile(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected file at %s", path)
	assert.True(t, info.Mode().IsRegular(), "%s is not a regular file (mode %s)", path, info.Mode())
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected nothing at %s", path)
}
