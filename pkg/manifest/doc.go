// Package manifest persists the mapping between managed file names and the
// locations they were adopted from.
//
// A repository root holds the manifest file (dotfiles.toml) next to the
// managed files themselves:
//
//	dotfiles_dir = '/home/user/dotfiles'
//
//	[files]
//	bashrc = '/home/user/.bashrc'
//	gitconfig = '/home/user/.gitconfig'
//
// Saves are atomic (temp file + rename). Writers that load, mutate and save
// should hold the advisory repository lock (see Lock) so two concurrent
// invocations do not silently drop each other's entries.
//
// The package also owns the repository pointer: a small file at a fixed
// location (see paths.PointerPath) recording which repository is active, so
// a repository created with a custom directory is found by later commands.
package manifest
