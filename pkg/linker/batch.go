package linker

import (
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/manifest"
)

// BatchResult collects per-entry results of a LinkAll or UnlinkAll run
type BatchResult struct {
	Results []LinkResult `json:"results" yaml:"results"`
}

// Count returns how many entries ended with outcome
func (b *BatchResult) Count(outcome LinkOutcome) int {
	n := 0
	for _, r := range b.Results {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// Failures returns the failed entries
func (b *BatchResult) Failures() []LinkResult {
	var failed []LinkResult
	for _, r := range b.Results {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err aggregates every failed entry into one ErrLinkFailed error, or returns
// nil when all entries succeeded
func (b *BatchResult) Err() error {
	failed := b.Failures()
	if len(failed) == 0 {
		return nil
	}

	names := make([]string, 0, len(failed))
	for _, r := range failed {
		names = append(names, r.Name)
	}

	err := errors.Newf(errors.ErrLinkFailed, "%d of %d entries failed: %s",
		len(failed), len(b.Results), strings.Join(names, ", ")).
		WithDetail("failed", names)
	if len(failed) == 1 {
		err.Wrapped = failed[0].Err
	}
	return err
}

// LinkAll links every manifest entry, in name order, without stopping at
// failures
func (l *Linker) LinkAll(m *manifest.Manifest, force bool) *BatchResult {
	batch := &BatchResult{}
	for _, entry := range m.Entries() {
		result := l.LinkOne(entry.Source, entry.Target, force)
		result.Name = entry.Name
		batch.Results = append(batch.Results, result)
	}
	return batch
}

// UnlinkAll removes the symlink of every manifest entry, in name order,
// without stopping at failures. The manifest is not modified.
func (l *Linker) UnlinkAll(m *manifest.Manifest) *BatchResult {
	batch := &BatchResult{}
	for _, entry := range m.Entries() {
		result := l.UnlinkOne(entry.Target)
		result.Name = entry.Name
		result.Source = entry.Source
		batch.Results = append(batch.Results, result)
	}
	return batch
}
