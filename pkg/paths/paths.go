package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotman/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dotman
	EnvConfigDir = "DOTMAN_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. The manifest and lock file names are part of the repository
// layout and are not user-configurable.
const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "dotman"

	// DefaultRepositoryName is the default repository directory under home
	DefaultRepositoryName = "dotfiles"

	// ManifestFileName is the manifest file inside the repository root
	ManifestFileName = "dotfiles.toml"

	// LockFileName is the advisory lock file inside the repository root
	LockFileName = ".dotman.lock"

	// PointerFileName records the active repository root
	PointerFileName = "repository.toml"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the log file under the state directory
	LogFileName = "dotman.log"

	// HomeShorthand is the token expanded to the home directory
	HomeShorthand = "~"
)

// HomeDir returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func HomeDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if homeDir = os.Getenv(EnvHome); homeDir != "" {
		return homeDir, nil
	}

	if err == nil {
		return "", errors.New(errors.ErrHomeUnavailable, "unable to determine home directory").
			WithDetail("env", EnvHome)
	}
	return "", errors.Wrap(err, errors.ErrHomeUnavailable, "unable to determine home directory").
		WithDetail("env", EnvHome)
}

// Resolve expands a leading "~" to the home directory. Any other path,
// including relative ones and "~user" forms, is returned unchanged.
func Resolve(path string) (string, error) {
	if path != HomeShorthand && !hasHomePrefix(path) {
		return path, nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHomeUnavailable, "cannot expand %s", path).
			WithDetail("path", path)
	}

	if path == HomeShorthand {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

func hasHomePrefix(path string) bool {
	if len(path) < 2 || path[0] != '~' {
		return false
	}
	return path[1] == '/' || path[1] == filepath.Separator
}

// Normalize resolves the home shorthand, makes the path absolute and cleans it
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	resolved, err := Resolve(path)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", path).
			WithDetail("path", path)
	}

	return filepath.Clean(abs), nil
}

// DefaultRepository returns <home>/<name>, with name defaulting to
// DefaultRepositoryName
func DefaultRepository(name string) (string, error) {
	if name == "" {
		name = DefaultRepositoryName
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, name), nil
}

// ManifestPath returns the manifest file location for a repository root
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}

// LockPath returns the advisory lock file location for a repository root
func LockPath(root string) string {
	return filepath.Join(root, LockFileName)
}

// RepositoryPath returns the location of a managed file inside the repository
func RepositoryPath(root, name string) string {
	return filepath.Join(root, name)
}

// IsWithin reports whether path is root or lies below it
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsReserved reports whether name is taken by dotman's own files inside the
// repository: the manifest, its temp files and the lock file
func IsReserved(name string) bool {
	return name == ManifestFileName ||
		name == LockFileName ||
		strings.HasPrefix(name, ManifestFileName+".")
}

// ConfigDir returns the dotman config directory, respecting DOTMAN_CONFIG_DIR
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if resolved, err := Resolve(dir); err == nil {
			return resolved
		}
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// PointerPath returns the fixed location of the active-repository pointer
func PointerPath() string {
	return filepath.Join(ConfigDir(), PointerFileName)
}

// ConfigFilePath returns the location of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// StateDir returns the dotman state directory, $XDG_STATE_HOME/dotman,
// falling back to ~/.local/state/dotman. The variable is read on every call
// so tests can redirect it.
func StateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := HomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, AppDirName)
}

// LogFilePath returns the location of the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}
