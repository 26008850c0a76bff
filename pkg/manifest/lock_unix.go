//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package manifest

import (
	"os"
	"syscall"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
)

// RepoLock is an exclusive advisory lock on a repository
type RepoLock struct {
	file *os.File
}

// Lock blocks until it holds the exclusive lock on root/.dotman.lock
func Lock(root string) (*RepoLock, error) {
	path := paths.LockPath(root)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRepositoryAccess, "failed to open lock file %s", path).
			WithDetail("path", path)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, errors.ErrRepositoryAccess, "failed to lock %s", path).
			WithDetail("path", path)
	}

	return &RepoLock{file: f}, nil
}

// Unlock releases the lock and closes the file
func (l *RepoLock) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}
