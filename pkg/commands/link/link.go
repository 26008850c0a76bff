package link

import (
	"github.com/arthur-debert/dotman/pkg/commands/internal"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
)

// LinkOptions defines the options for the Link command.
type LinkOptions struct {
	// Force replaces whatever occupies a target location
	Force bool

	Config     *config.Config
	FileSystem types.FS
}

// LinkResult holds the per-entry outcomes of a Link run.
type LinkResult struct {
	Root string `json:"root" yaml:"root"`
	// NothingToDo is set when the manifest is empty
	NothingToDo bool `json:"nothing_to_do" yaml:"nothing_to_do"`
	*linker.BatchResult
}

// Link creates the symlink for every managed file. Entries are processed
// in name order and a failing entry does not stop the others; the returned
// error aggregates every failure and the result is always populated.
func Link(opts LinkOptions) (*LinkResult, error) {
	log := logging.GetLogger("commands.link")
	done := logging.LogOperationStart(log, "link")
	defer done()

	repo, err := internal.Open(opts.FileSystem, opts.Config)
	if err != nil {
		return nil, err
	}

	result := &LinkResult{Root: repo.Root, BatchResult: &linker.BatchResult{}}
	if repo.Manifest.IsEmpty() {
		log.Info().Msg("No files to link")
		result.NothingToDo = true
		return result, nil
	}

	result.BatchResult = linker.New(repo.FS).LinkAll(repo.Manifest, opts.Force)

	log.Info().
		Bool("force", opts.Force).
		Int("created", result.Count(linker.Created)).
		Int("overwritten", result.Count(linker.Overwritten)).
		Int("skipped", result.Count(linker.SkippedExists)).
		Int("failed", result.Count(linker.Failed)).
		Msg("Link finished")
	return result, result.Err()
}
