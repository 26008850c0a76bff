package add

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/dotman/pkg/commands/internal"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/manifest"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
)

// AddOptions defines the options for the Add command.
type AddOptions struct {
	// Path is the file to bring under management. "~" is expanded and
	// relative paths are taken from the working directory.
	Path string

	Config     *config.Config
	FileSystem types.FS
}

// AddResult describes the adopted file.
type AddResult struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	// AlreadyManaged is set when Target was already a symlink into the
	// repository. Nothing was changed.
	AlreadyManaged bool `json:"already_managed" yaml:"already_managed"`
}

// Add moves a file into the repository, links its original location back
// to the repository copy and records it in the manifest.
func Add(opts AddOptions) (*AddResult, error) {
	log := logging.GetLogger("commands.add")
	done := logging.LogOperationStart(log, "add")
	defer done()

	repo, err := internal.Open(opts.FileSystem, opts.Config)
	if err != nil {
		return nil, err
	}
	fs := repo.FS

	lock, err := manifest.Lock(repo.Root)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("Failed to release repository lock")
		}
	}()
	// Another add may have saved while we waited for the lock
	if err := repo.Reload(); err != nil {
		return nil, err
	}

	target, err := paths.Normalize(opts.Path)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("target", target).Logger()

	info, err := fs.Lstat(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "file not found at %s", target).
			WithDetail("path", target)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return managedSymlink(fs, repo, target, log)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Newf(errors.ErrSourceNotFile, "%s is not a regular file (only single files can be added)", target).
			WithDetail("path", target).
			WithDetail("mode", info.Mode().String())
	}
	if paths.IsWithin(repo.Root, target) {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is already inside the dotfiles directory", target).
			WithDetail("path", target).
			WithDetail("root", repo.Root)
	}

	name, err := ManagedName(target)
	if err != nil {
		return nil, err
	}

	source := repo.Manifest.SourcePath(name)
	if existing, ok := repo.Manifest.Target(name); ok {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%q is already managed (linked to %s)", name, existing).
			WithDetail("name", name).
			WithDetail("target", existing)
	}
	if _, err := fs.Lstat(source); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "%s already exists in the dotfiles directory", source).
			WithDetail("name", name).
			WithDetail("path", source)
	}

	log.Info().Str("name", name).Str("source", source).Msg("Moving file into repository")
	if err := relocate(fs, target, source, log); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", target, source).
			WithDetail("from", target).
			WithDetail("to", source)
	}

	linked := linker.New(fs).LinkOne(source, target, true)
	if linked.Failed() {
		log.Error().Err(linked.Err).Msg("Failed to create symlink, moving file back")
		return nil, rollback(fs, source, target, false, linked.Err, log)
	}

	repo.Manifest.Add(name, target)
	if err := repo.Store.Save(repo.Manifest); err != nil {
		log.Error().Err(err).Msg("Failed to save manifest, undoing add")
		return nil, rollback(fs, source, target, true, err, log)
	}

	log.Info().Str("name", name).Msg("Added")
	return &AddResult{Name: name, Source: source, Target: target}, nil
}

// ManagedName derives the manifest name from a path: its final component
// with one leading dot removed (~/.bashrc -> bashrc).
func ManagedName(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimPrefix(base, ".")

	switch {
	case !utf8.ValidString(base):
		return "", errors.Newf(errors.ErrInvalidFileName, "file name of %q is not valid UTF-8", path).
			WithDetail("path", path)
	case name == "" || name == "." || name == ".." || strings.ContainsRune(name, filepath.Separator):
		return "", errors.Newf(errors.ErrInvalidFileName, "cannot derive a file name from %q", path).
			WithDetail("path", path)
	case paths.IsReserved(name):
		return "", errors.Newf(errors.ErrInvalidFileName, "%q is reserved for dotman's own files", name).
			WithDetail("path", path).
			WithDetail("name", name)
	}
	return name, nil
}

// managedSymlink handles a path that is already a symlink. One pointing
// into the repository is an idempotent no-op.
func managedSymlink(fs types.FS, repo *internal.Repository, target string, log zerolog.Logger) (*AddResult, error) {
	dest, err := fs.Readlink(target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "failed to read symlink %s", target).
			WithDetail("path", target)
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(target), dest)
	}
	dest = filepath.Clean(dest)

	if !paths.IsWithin(repo.Root, dest) {
		return nil, errors.Newf(errors.ErrSourceNotFile, "%s is a symlink to %s, add the file it points to instead", target, dest).
			WithDetail("path", target).
			WithDetail("link_target", dest)
	}

	name, _ := repo.Manifest.ManagesTarget(target)
	if name == "" {
		name = filepath.Base(dest)
	}
	log.Info().Str("name", name).Str("source", dest).Msg("Already managed, nothing to do")
	return &AddResult{Name: name, Source: dest, Target: target, AlreadyManaged: true}, nil
}

// rollback undoes a partial add: removes the new symlink (when linked) and
// moves the repository copy back to its original location.
func rollback(fs types.FS, source, target string, linked bool, cause error, log zerolog.Logger) error {
	code := errors.GetErrorCode(cause)
	if code == errors.ErrUnknown {
		code = errors.ErrInternal
	}

	if linked {
		if err := fs.Remove(target); err != nil && !os.IsNotExist(err) {
			log.Error().Err(err).Msg("Failed to remove symlink during rollback")
			return errors.Wrapf(cause, code, "add failed and rollback could not remove the symlink at %s; your file is at %s", target, source).
				WithDetail("source", source).
				WithDetail("target", target)
		}
	}

	if err := relocate(fs, source, target, log); err != nil {
		log.Error().Err(err).Msg("Failed to move file back during rollback")
		return errors.Wrapf(cause, code, "add failed and the file could not be moved back; it is at %s", source).
			WithDetail("source", source).
			WithDetail("target", target)
	}

	return errors.Wrapf(cause, code, "failed to add %s, original file restored", target).
		WithDetail("source", source).
		WithDetail("target", target)
}
