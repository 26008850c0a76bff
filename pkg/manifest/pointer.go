package manifest

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// Pointer records the active repository root at a fixed location
type Pointer struct {
	Root string `toml:"dotfiles_dir"`
}

// ReadPointer returns the repository root recorded at path.
// A missing pointer yields an ErrNotFound error.
func ReadPointer(fs types.FS, path string) (string, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(err, errors.ErrNotFound, "no repository pointer").
				WithDetail("path", path)
		}
		return "", errors.Wrapf(err, errors.ErrManifestRead, "failed to read repository pointer at %s", path).
			WithDetail("path", path)
	}

	var p Pointer
	if err := toml.Unmarshal(data, &p); err != nil {
		return "", errors.Wrapf(err, errors.ErrManifestParse, "failed to parse repository pointer at %s", path).
			WithDetail("path", path)
	}
	if p.Root == "" || !filepath.IsAbs(p.Root) {
		return "", errors.Newf(errors.ErrManifestParse, "repository pointer at %s has no absolute dotfiles_dir", path).
			WithDetail("path", path)
	}
	return p.Root, nil
}

// WritePointer records root as the active repository
func WritePointer(fs types.FS, path, root string) error {
	data, err := toml.Marshal(Pointer{Root: root})
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to encode repository pointer")
	}
	if err := writeAtomic(fs, path, data); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write repository pointer to %s", path).
			WithDetail("path", path)
	}
	return nil
}
