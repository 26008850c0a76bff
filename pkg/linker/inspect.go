package linker

import (
	"fmt"
	"os"
)

// EntryState is the current filesystem state of one managed entry
type EntryState int

const (
	// Linked means the target is a symlink to the repository copy
	Linked EntryState = iota
	// NotLinked means nothing exists at the target
	NotLinked
	// Conflict means a file or directory occupies the target
	Conflict
	// WrongTarget means the target is a symlink pointing elsewhere
	WrongTarget
	// SourceMissing means the repository copy is gone
	SourceMissing
)

var stateNames = map[EntryState]string{
	Linked:        "linked",
	NotLinked:     "not_linked",
	Conflict:      "conflict",
	WrongTarget:   "wrong_target",
	SourceMissing: "source_missing",
}

func (s EntryState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText renders the state name in json and yaml reports
func (s EntryState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Inspect reports the state of destination relative to source. It never
// modifies the filesystem.
func (l *Linker) Inspect(source, destination string) EntryState {
	if _, err := l.fs.Stat(source); err != nil {
		return SourceMissing
	}

	info, err := l.fs.Lstat(destination)
	if err != nil {
		return NotLinked
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return Conflict
	}
	if l.pointsTo(destination, info, source) {
		return Linked
	}
	return WrongTarget
}
