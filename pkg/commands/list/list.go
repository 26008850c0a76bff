package list

import (
	"github.com/arthur-debert/dotman/pkg/commands/internal"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
)

// ListOptions defines the options for the List command.
type ListOptions struct {
	Config     *config.Config
	FileSystem types.FS
}

// Entry is one managed file and the state of its target
type Entry struct {
	Name   string            `json:"name" yaml:"name"`
	Source string            `json:"source" yaml:"source"`
	Target string            `json:"target" yaml:"target"`
	State  linker.EntryState `json:"state" yaml:"state"`
}

// ListResult is the read-only report produced by List.
type ListResult struct {
	Root    string  `json:"root" yaml:"root"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// List reports every managed file, sorted by name. It never modifies the
// filesystem.
func List(opts ListOptions) (*ListResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "List").Msg("Executing command")

	repo, err := internal.Open(opts.FileSystem, opts.Config)
	if err != nil {
		return nil, err
	}

	lnk := linker.New(repo.FS)
	result := &ListResult{Root: repo.Root, Entries: []Entry{}}
	for _, e := range repo.Manifest.Entries() {
		result.Entries = append(result.Entries, Entry{
			Name:   e.Name,
			Source: e.Source,
			Target: e.Target,
			State:  lnk.Inspect(e.Source, e.Target),
		})
	}

	log.Info().Str("command", "List").Int("entries", len(result.Entries)).Msg("Command finished")
	return result, nil
}
