package types

import (
	"io/fs"
)

// FS is the filesystem interface required for dotman operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error

	// Lstat must not follow symlinks. In-memory implementations without
	// symlink support may fall back to Stat.
	Lstat(name string) (fs.FileInfo, error)
}
