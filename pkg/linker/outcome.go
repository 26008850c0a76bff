package linker

import "fmt"

// LinkOutcome is the result of reconciling a single entry
type LinkOutcome int

const (
	// Created means a new symlink was made where nothing existed
	Created LinkOutcome = iota
	// Overwritten means an existing destination was replaced (force)
	Overwritten
	// SkippedExists means the destination was occupied and left untouched
	SkippedExists
	// Removed means a symlink was deleted
	Removed
	// SkippedNotSymlink means the target was not a symlink and was kept
	SkippedNotSymlink
	// Failed means the operation could not be completed; see Err
	Failed
)

var outcomeNames = map[LinkOutcome]string{
	Created:           "created",
	Overwritten:       "overwritten",
	SkippedExists:     "skipped_exists",
	Removed:           "removed",
	SkippedNotSymlink: "skipped_not_symlink",
	Failed:            "failed",
}

func (o LinkOutcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// MarshalText renders the outcome name in json and yaml reports
func (o LinkOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Mutated reports whether the filesystem was changed
func (o LinkOutcome) Mutated() bool {
	return o == Created || o == Overwritten || o == Removed
}

// LinkResult describes what happened to one entry
type LinkResult struct {
	Name        string      `json:"name" yaml:"name"`
	Source      string      `json:"source" yaml:"source"`
	Destination string      `json:"destination" yaml:"destination"`
	Outcome     LinkOutcome `json:"outcome" yaml:"outcome"`

	// AlreadyLinked is set on SkippedExists when the destination is already
	// a symlink to Source
	AlreadyLinked bool `json:"already_linked,omitempty" yaml:"already_linked,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Failed reports whether this entry failed
func (r LinkResult) Failed() bool {
	return r.Outcome == Failed
}
