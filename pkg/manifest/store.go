package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

const filePerm = 0644

// Store loads and saves manifests on a filesystem
type Store struct {
	fs types.FS
}

// NewStore creates a store on fs. A nil fs means the OS filesystem.
func NewStore(fs types.FS) *Store {
	if fs == nil {
		fs = filesystem.NewOS()
	}
	return &Store{fs: fs}
}

// Load reads root/dotfiles.toml
func (s *Store) Load(root string) (*Manifest, error) {
	path := paths.ManifestPath(root)
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest at %s", path).
			WithDetail("path", path)
	}

	m, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse manifest at %s", path).
			WithDetail("path", path)
	}

	if m.Root != "" && filepath.Clean(m.Root) != filepath.Clean(root) {
		logger.Warn().
			Str("recorded", m.Root).
			Str("actual", root).
			Msg("Manifest dotfiles_dir does not match its location, using the actual location")
	}
	m.Root = root

	logger.Debug().Int("files", m.Len()).Msg("Manifest loaded")
	return m, nil
}

// Save writes the manifest to <m.Root>/dotfiles.toml, replacing it atomically
func (s *Store) Save(m *Manifest) error {
	path := paths.ManifestPath(m.Root)

	if m.Files == nil {
		m.Files = make(map[string]string)
	}

	data, err := toml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestWrite, "failed to encode manifest").
			WithDetail("path", path)
	}

	if err := writeAtomic(s.fs, path, data); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "failed to write manifest to %s", path).
			WithDetail("path", path)
	}

	logger := logging.GetLogger("manifest")
	logger.Debug().
		Str("path", path).
		Int("files", m.Len()).
		Msg("Manifest saved")
	return nil
}

// Exists reports whether root holds a manifest file
func (s *Store) Exists(root string) bool {
	info, err := s.fs.Stat(paths.ManifestPath(root))
	return err == nil && info.Mode().IsRegular()
}

func decode(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Files == nil {
		m.Files = make(map[string]string)
	}

	for name, target := range m.Files {
		if err := validateEntry(name, target); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

func validateEntry(name, target string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) || paths.IsReserved(name) {
		return errors.Newf(errors.ErrInvalidFileName, "invalid file name %q", name).
			WithDetail("name", name)
	}
	if !filepath.IsAbs(target) {
		return errors.Newf(errors.ErrInvalidInput, "target for %q must be an absolute path, got %q", name, target).
			WithDetail("name", name).
			WithDetail("target", target)
	}
	return nil
}

// tempName returns a temp file name next to path that no earlier write
// can have left behind
func tempName(path string) string {
	return fmt.Sprintf("%s.%d-%d.tmp", path, os.Getpid(), time.Now().UnixNano())
}

// writeAtomic writes data to a temp file next to path, then renames it over
// path. The temp file is removed if the write or rename fails.
func writeAtomic(fs types.FS, path string, data []byte) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tempPath := tempName(path)
	if _, err := fs.Lstat(tempPath); err == nil {
		return errors.Newf(errors.ErrManifestWrite, "temp file %s already exists", tempPath).
			WithDetail("path", tempPath)
	}

	if err := fs.WriteFile(tempPath, data, filePerm); err != nil {
		removeTemp(fs, tempPath)
		return err
	}

	if err := fs.Rename(tempPath, path); err != nil {
		removeTemp(fs, tempPath)
		return err
	}
	return nil
}

func removeTemp(fs types.FS, tempPath string) {
	if err := fs.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		logger := logging.GetLogger("manifest")
		logger.Warn().Err(err).Str("path", tempPath).Msg("Failed to remove temp file")
	}
}
