package manifest

import (
	"path/filepath"
	"sort"
)

// Manifest is the persisted record of managed files for one repository
type Manifest struct {
	// Root is the repository root. It always equals the directory the
	// manifest file lives in.
	Root string `toml:"dotfiles_dir"`

	// Files maps a managed file name (relative to Root) to the absolute
	// path it was adopted from and is linked back to.
	Files map[string]string `toml:"files"`
}

// Entry is one managed file, as seen by the reconciler and reports
type Entry struct {
	Name   string
	Source string
	Target string
}

// Create returns an empty manifest bound to root. Nothing touches disk
// until the manifest is saved.
func Create(root string) *Manifest {
	return &Manifest{
		Root:  root,
		Files: make(map[string]string),
	}
}

// Add records name -> target, replacing any previous target
func (m *Manifest) Add(name, target string) {
	if m.Files == nil {
		m.Files = make(map[string]string)
	}
	m.Files[name] = target
}

// Target returns the original location recorded for name
func (m *Manifest) Target(name string) (string, bool) {
	target, ok := m.Files[name]
	return target, ok
}

// SourcePath returns the location of the managed copy of name
func (m *Manifest) SourcePath(name string) string {
	return filepath.Join(m.Root, name)
}

// Len returns the number of managed files
func (m *Manifest) Len() int {
	return len(m.Files)
}

// IsEmpty reports whether no files are managed
func (m *Manifest) IsEmpty() bool {
	return len(m.Files) == 0
}

// Names returns the managed file names in sorted order
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Files))
	for name := range m.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns every managed file sorted by name
func (m *Manifest) Entries() []Entry {
	names := m.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, Entry{
			Name:   name,
			Source: m.SourcePath(name),
			Target: m.Files[name],
		})
	}
	return entries
}

// ManagesTarget returns the name recorded for target, if any
func (m *Manifest) ManagesTarget(target string) (string, bool) {
	clean := filepath.Clean(target)
	for name, t := range m.Files {
		if filepath.Clean(t) == clean {
			return name, true
		}
	}
	return "", false
}
