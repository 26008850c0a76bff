// Package commands provides the high-level operations behind the dotman CLI.
//
// Each command is implemented in its own subdirectory:
//   - initialize/ - Init: create the repository and record it as active
//   - add/        - Add: move a file into the repository and link it back
//   - link/       - Link: create every managed symlink
//   - unlink/     - Unlink: remove every managed symlink
//   - list/       - List: report managed files and their link state
//   - internal/   - Repository lookup shared by the commands
//
// Commands take an Options struct and return a Result struct. They never
// print; rendering is left to pkg/output.
//
// This file re-exports the command functions so callers need a single
// import.
package commands

import (
	"github.com/arthur-debert/dotman/pkg/commands/add"
	"github.com/arthur-debert/dotman/pkg/commands/initialize"
	"github.com/arthur-debert/dotman/pkg/commands/link"
	"github.com/arthur-debert/dotman/pkg/commands/list"
	"github.com/arthur-debert/dotman/pkg/commands/unlink"
)

// Init creates the dotfiles repository.
type InitOptions = initialize.InitOptions
type InitResult = initialize.InitResult

func Init(opts InitOptions) (*InitResult, error) {
	return initialize.Init(opts)
}

// Add adopts a file into the repository.
type AddOptions = add.AddOptions
type AddResult = add.AddResult

func Add(opts AddOptions) (*AddResult, error) {
	return add.Add(opts)
}

// Link creates the symlinks for all managed files.
type LinkOptions = link.LinkOptions
type LinkResult = link.LinkResult

func Link(opts LinkOptions) (*LinkResult, error) {
	return link.Link(opts)
}

// Unlink removes the symlinks for all managed files.
type UnlinkOptions = unlink.UnlinkOptions
type UnlinkResult = unlink.UnlinkResult

func Unlink(opts UnlinkOptions) (*UnlinkResult, error) {
	return unlink.Unlink(opts)
}

// List reports the managed files.
type ListOptions = list.ListOptions
type ListResult = list.ListResult
type ListEntry = list.Entry

func List(opts ListOptions) (*ListResult, error) {
	return list.List(opts)
}
