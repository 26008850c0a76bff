// Package types defines the interfaces shared across dotman packages.
// The FS interface lets the manifest store and the link reconciler run
// against the real filesystem or an in-memory one in tests.
package types
