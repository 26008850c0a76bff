package linker

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
)

// Linker creates and removes symlinks on a filesystem
type Linker struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates a Linker on fs. A nil fs means the OS filesystem.
func New(fs types.FS) *Linker {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Linker{
		fs:     fs,
		logger: logging.GetLogger("linker"),
	}
}

// LinkOne makes destination a symlink to source.
//
// A missing source fails the entry before the destination is touched, so a
// forced link never deletes something it cannot replace.
func (l *Linker) LinkOne(source, destination string, force bool) LinkResult {
	result := LinkResult{Source: source, Destination: destination}
	logger := l.logger.With().Str("source", source).Str("destination", destination).Logger()

	if _, err := l.fs.Stat(source); err != nil {
		result.Outcome = Failed
		result.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s: repository copy %s is missing", destination, source).
			WithDetail("source", source).
			WithDetail("destination", destination)
		logger.Error().Err(err).Msg("Repository copy missing")
		return result
	}

	result.Outcome = Created
	if info, err := l.fs.Lstat(destination); err == nil {
		if !force {
			result.Outcome = SkippedExists
			result.AlreadyLinked = l.pointsTo(destination, info, source)
			logger.Info().Bool("already_linked", result.AlreadyLinked).Msg("Destination exists, skipping")
			return result
		}

		if err := l.fs.Remove(destination); err != nil {
			result.Outcome = Failed
			result.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to remove existing %s", destination).
				WithDetail("source", source).
				WithDetail("destination", destination)
			logger.Error().Err(err).Msg("Failed to remove existing destination")
			return result
		}
		result.Outcome = Overwritten
		logger.Warn().Str("previous_mode", info.Mode().String()).Msg("Overwriting existing destination")
	} else if !os.IsNotExist(err) {
		result.Outcome = Failed
		result.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to inspect %s", destination).
			WithDetail("destination", destination)
		return result
	}

	if err := l.fs.MkdirAll(filepath.Dir(destination), 0755); err != nil {
		result.Outcome = Failed
		result.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create parent directory for %s", destination).
			WithDetail("destination", destination)
		return result
	}

	if err := l.fs.Symlink(source, destination); err != nil {
		result.Outcome = Failed
		result.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink from %s to %s", destination, source).
			WithDetail("source", source).
			WithDetail("destination", destination)
		logger.Error().Err(err).Msg("Failed to create symlink")
		return result
	}

	logger.Info().Str("outcome", result.Outcome.String()).Msg("Linked")
	return result
}

// UnlinkOne removes target if, and only if, it is a symlink
func (l *Linker) UnlinkOne(target string) LinkResult {
	result := LinkResult{Destination: target, Outcome: SkippedNotSymlink}
	logger := l.logger.With().Str("target", target).Logger()

	info, err := l.fs.Lstat(target)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		logger.Info().Msg("Not a symlink or does not exist, skipping")
		return result
	}

	if err := l.fs.Remove(target); err != nil {
		result.Outcome = Failed
		result.Err = errors.Wrapf(err, errors.ErrSymlinkRemove, "failed to remove symlink at %s", target).
			WithDetail("target", target)
		logger.Error().Err(err).Msg("Failed to remove symlink")
		return result
	}

	result.Outcome = Removed
	logger.Info().Msg("Removed symlink")
	return result
}

// pointsTo reports whether path (already Lstat'ed) is a symlink to source
func (l *Linker) pointsTo(path string, info os.FileInfo, source string) bool {
	if info.Mode()&os.ModeSymlink == 0 {
		return false
	}
	dest, err := l.fs.Readlink(path)
	if err != nil {
		return false
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	return filepath.Clean(dest) == filepath.Clean(source)
}
