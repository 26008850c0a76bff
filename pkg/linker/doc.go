// Package linker reconciles symlinks with a manifest.
//
// Every operation works on a single entry and reports a LinkOutcome instead
// of aborting: LinkOne creates the symlink from an original location back to
// the repository copy, UnlinkOne removes it again, Inspect reports the
// current state without touching anything. LinkAll and UnlinkAll run those
// over every manifest entry, sorted by name, and collect the per-entry
// results so one failure never stops its siblings.
//
// Force semantics:
//
//   - without force, anything already present at the destination (file,
//     directory, symlink, dangling symlink) is left alone: SkippedExists
//   - with force, it is removed and replaced: Overwritten
//
// UnlinkOne only ever removes symlinks. A regular file that sits at a
// managed path, for instance because the user restored it by hand, is
// reported as SkippedNotSymlink and kept.
package linker
