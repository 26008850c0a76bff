package initialize

import (
	"github.com/arthur-debert/dotman/pkg/commands/internal"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/manifest"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
)

// InitOptions defines the options for the Init command.
type InitOptions struct {
	// Dir is the repository location. Empty means the configured root, or
	// <home>/<repository.name>.
	Dir string

	Config     *config.Config
	FileSystem types.FS
}

// InitResult describes what Init did.
type InitResult struct {
	Root string `json:"root" yaml:"root"`
	// AlreadyExists is set when Root was already present. Nothing was
	// written in that case.
	AlreadyExists bool `json:"already_exists" yaml:"already_exists"`
	// PointerPath is where the active repository was recorded
	PointerPath string `json:"pointer_path,omitempty" yaml:"pointer_path,omitempty"`
	// Warning carries a REPO_EXISTS error when AlreadyExists is set. Init
	// still succeeds.
	Warning error `json:"-" yaml:"-"`
}

// Init creates the repository directory with an empty manifest and records
// it as the active repository.
func Init(opts InitOptions) (*InitResult, error) {
	log := logging.GetLogger("commands.init")
	done := logging.LogOperationStart(log, "init")
	defer done()

	fs, cfg := internal.Defaults(opts.FileSystem, opts.Config)

	root, err := targetDir(opts.Dir, cfg)
	if err != nil {
		return nil, err
	}
	result := &InitResult{Root: root}

	if _, err := fs.Lstat(root); err == nil {
		log.Warn().Str("root", root).Msg("Directory already exists, nothing to do")
		result.AlreadyExists = true
		result.Warning = errors.Newf(errors.ErrRepoExists, "directory %s already exists", root).
			WithDetail("root", root)
		return result, nil
	}

	if err := fs.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create dotfiles directory at %s", root).
			WithDetail("root", root)
	}

	if err := manifest.NewStore(fs).Save(manifest.Create(root)); err != nil {
		return nil, err
	}

	pointerPath := paths.PointerPath()
	if err := manifest.WritePointer(fs, pointerPath, root); err != nil {
		return nil, err
	}
	result.PointerPath = pointerPath

	log.Info().Str("root", root).Str("pointer", pointerPath).Msg("Initialized repository")
	return result, nil
}

func targetDir(dir string, cfg *config.Config) (string, error) {
	if dir != "" {
		return paths.Normalize(dir)
	}
	if cfg.Repository.Root != "" {
		return paths.Normalize(cfg.Repository.Root)
	}
	return paths.DefaultRepository(cfg.Repository.Name)
}
