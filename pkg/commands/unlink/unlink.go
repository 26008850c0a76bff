package unlink

import (
	"github.com/arthur-debert/dotman/pkg/commands/internal"
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/linker"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
)

// UnlinkOptions defines the options for the Unlink command.
type UnlinkOptions struct {
	Config     *config.Config
	FileSystem types.FS
}

// UnlinkResult holds the per-entry outcomes of an Unlink run.
type UnlinkResult struct {
	Root        string `json:"root" yaml:"root"`
	NothingToDo bool   `json:"nothing_to_do" yaml:"nothing_to_do"`
	*linker.BatchResult
}

// Unlink removes the symlink at every managed target. Regular files are
// never touched and the manifest is left as is, so a later Link restores
// everything.
func Unlink(opts UnlinkOptions) (*UnlinkResult, error) {
	log := logging.GetLogger("commands.unlink")
	done := logging.LogOperationStart(log, "unlink")
	defer done()

	repo, err := internal.Open(opts.FileSystem, opts.Config)
	if err != nil {
		return nil, err
	}

	result := &UnlinkResult{Root: repo.Root, BatchResult: &linker.BatchResult{}}
	if repo.Manifest.IsEmpty() {
		log.Info().Msg("No files to unlink")
		result.NothingToDo = true
		return result, nil
	}

	result.BatchResult = linker.New(repo.FS).UnlinkAll(repo.Manifest)

	log.Info().
		Int("removed", result.Count(linker.Removed)).
		Int("skipped", result.Count(linker.SkippedNotSymlink)).
		Int("failed", result.Count(linker.Failed)).
		Msg("Unlink finished")
	return result, result.Err()
}
