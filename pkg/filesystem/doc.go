// Package filesystem provides filesystem implementations for dotman.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem and an afero-backed one used by tests
// that only need regular files (the manifest store, the pointer file).
package filesystem
