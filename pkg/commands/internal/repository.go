package internal

import (
	"os"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/manifest"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
)

// RootSource records how the repository root was found
type RootSource string

const (
	RootFromConfig  RootSource = "config"
	RootFromPointer RootSource = "pointer"
	RootFromDefault RootSource = "default"
)

// Repository is an opened dotfiles repository with its manifest loaded
type Repository struct {
	Root     string
	Source   RootSource
	FS       types.FS
	Store    *manifest.Store
	Manifest *manifest.Manifest
}

// Defaults fills in a nil filesystem and configuration
func Defaults(fs types.FS, cfg *config.Config) (types.FS, *config.Config) {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return fs, cfg
}

// ResolveRoot finds the active repository root: the configured root, then
// the pointer written by init, then <home>/<repository.name>. The
// directory is not required to exist.
func ResolveRoot(fs types.FS, cfg *config.Config) (string, RootSource, error) {
	fs, cfg = Defaults(fs, cfg)
	logger := logging.GetLogger("commands.repository")

	if cfg.Repository.Root != "" {
		root, err := paths.Normalize(cfg.Repository.Root)
		if err != nil {
			return "", "", err
		}
		logger.Debug().Str("root", root).Msg("Repository root from configuration")
		return root, RootFromConfig, nil
	}

	pointerPath := paths.PointerPath()
	root, err := manifest.ReadPointer(fs, pointerPath)
	if err == nil {
		logger.Debug().Str("root", root).Str("pointer", pointerPath).Msg("Repository root from pointer")
		return root, RootFromPointer, nil
	}
	if !errors.IsErrorCode(err, errors.ErrNotFound) {
		return "", "", err
	}

	root, err = paths.DefaultRepository(cfg.Repository.Name)
	if err != nil {
		return "", "", err
	}
	logger.Debug().Str("root", root).Msg("Repository root from default location")
	return root, RootFromDefault, nil
}

// Open locates the repository and loads its manifest. A missing
// repository directory is reported as ErrRepoNotInitialized.
func Open(fs types.FS, cfg *config.Config) (*Repository, error) {
	fs, cfg = Defaults(fs, cfg)

	root, source, err := ResolveRoot(fs, cfg)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(root)
	if err != nil || !info.IsDir() {
		notInit := errors.Newf(errors.ErrRepoNotInitialized,
			"dotfiles directory not found at %s, run `dotman init` first", root).
			WithDetail("root", root).
			WithDetail("source", string(source))
		if err != nil && !os.IsNotExist(err) {
			notInit.Wrapped = err
		}
		return nil, notInit
	}

	store := manifest.NewStore(fs)
	m, err := store.Load(root)
	if err != nil {
		return nil, err
	}

	return &Repository{
		Root:     root,
		Source:   source,
		FS:       fs,
		Store:    store,
		Manifest: m,
	}, nil
}

// Reload re-reads the manifest, e.g. after acquiring the repository lock
func (r *Repository) Reload() error {
	m, err := r.Store.Load(r.Root)
	if err != nil {
		return err
	}
	r.Manifest = m
	return nil
}
