//go:build !(darwin || dragonfly || freebsd || linux || netbsd || openbsd)

package manifest

// RepoLock is a no-op on platforms without flock
type RepoLock struct{}

// Lock returns a no-op lock
func Lock(root string) (*RepoLock, error) {
	return &RepoLock{}, nil
}

// Unlock does nothing
func (l *RepoLock) Unlock() error {
	return nil
}
