// Package testutil provides an isolated environment for dotman tests.
//
// Every test that touches HOME or the XDG directories should create a
// TestEnvironment: it points HOME, XDG_CONFIG_HOME and XDG_STATE_HOME at
// fresh temp directories and reloads adrg/xdg so the paths package sees
// them. Symlink behaviour is tested on the real filesystem inside that
// sandbox.
package testutil
