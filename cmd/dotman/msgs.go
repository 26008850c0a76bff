package dotman

import (
	"embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A dotfiles manager that keeps your files in one repository"
	MsgInitShort       = "Create the dotfiles repository"
	MsgAddShort        = "Move a file into the repository and link it back"
	MsgLinkShort       = "Create symlinks for all managed files"
	MsgUnlinkShort     = "Remove symlinks for all managed files"
	MsgListShort       = "List managed files and their link state"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgGuideShort      = "Read the dotman guide"
	MsgGuideLong       = "Guide prints the dotman documentation. Run `dotman guide topics` to list the available topics."

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagNoColor = "Disable coloured output"
	MsgFlagDir     = "Repository location (default ~/dotfiles)"
	MsgFlagForce   = "Replace files or symlinks occupying target locations"
	MsgFlagFormat  = "Output format: text, json or yaml (default from output.format)"

	// Errors
	MsgErrNoCommand = "no command specified"
	MsgErrFormat    = "unknown format %q (want text, json or yaml)"
	MsgErrShell     = "unsupported shell %q (want bash, zsh, fish or powershell)"
)

//go:embed msgs/*.txt
var msgFiles embed.FS

//go:embed topics/*.md
var topicFiles embed.FS

func msg(name string) string {
	data, err := msgFiles.ReadFile("msgs/" + name + ".txt")
	if err != nil {
		panic("missing message file: " + name)
	}
	return strings.TrimSpace(string(data))
}

// Long messages from embedded files
var (
	MsgRootLong       = msg("root-long")
	MsgInitLong       = msg("init-long")
	MsgInitExample    = msg("init-example")
	MsgAddLong        = msg("add-long")
	MsgAddExample     = msg("add-example")
	MsgLinkLong       = msg("link-long")
	MsgLinkExample    = msg("link-example")
	MsgUnlinkLong     = msg("unlink-long")
	MsgUnlinkExample  = msg("unlink-example")
	MsgListLong       = msg("list-long")
	MsgListExample    = msg("list-example")
	MsgCompletionLong = msg("completion-long")
	MsgUsageTemplate  = msg("usage-template")
)
