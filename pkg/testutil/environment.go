// pkg/testutil/environment.go
// DEPENDENCIES: Real FS (temp dir), environment variables
// PURPOSE: Isolate HOME and XDG locations for command-level tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/stretchr/testify/require"
)

// TestEnvironment is a sandboxed home directory with its own XDG dirs
type TestEnvironment struct {
	HomeDir   string
	ConfigDir string
	StateDir  string

	// DefaultRoot is where init puts the repository when no --dir is given.
	// It is not created.
	DefaultRoot string

	FS types.FS

	t *testing.T
}

// NewTestEnvironment creates the sandbox and points the process
// environment at it for the duration of the test
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	// Resolve symlinked temp roots (macOS /var -> /private/var) so
	// paths compare equal to what the code under test computes
	if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
		tempDir = resolved
	}

	env := &TestEnvironment{
		HomeDir:   filepath.Join(tempDir, "home"),
		ConfigDir: filepath.Join(tempDir, "config"),
		StateDir:  filepath.Join(tempDir, "state"),
		FS:        filesystem.NewOS(),
		t:         t,
	}
	env.DefaultRoot = filepath.Join(env.HomeDir, "dotfiles")

	for _, dir := range []string{env.HomeDir, env.ConfigDir, env.StateDir} {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("DOTMAN_CONFIG_DIR", "")
	t.Setenv("DOTMAN_REPOSITORY_ROOT", "")
	t.Setenv("DOTMAN_REPOSITORY_NAME", "dotfiles")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	return env
}

// Home returns a path inside the sandboxed home directory
func (env *TestEnvironment) Home(rel ...string) string {
	return filepath.Join(append([]string{env.HomeDir}, rel...)...)
}

// WriteHomeFile creates a file under the home directory, including parents
func (env *TestEnvironment) WriteHomeFile(rel, content string) string {
	env.t.Helper()
	return env.WriteFile(env.Home(rel), content)
}

// WriteFile creates a file at an absolute path, including parents
func (env *TestEnvironment) WriteFile(path, content string) string {
	env.t.Helper()
	require.NoError(env.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(env.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content at path, following symlinks
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(env.t, err)
	return string(data)
}
