// Package sink provides destinations for extracted archive members.
package sink

import (
	"io"

	"github.com/meigma/ar/internal/artype"
)

// Entry is an alias for artype.Entry.
type Entry = artype.Entry

// Sink creates one output per extracted member.
//
// Implementations decide where content is written and may skip members.
type Sink interface {
	// ShouldProcess returns false if this entry should be skipped,
	// e.g. because its output already exists.
	ShouldProcess(entry *Entry) bool

	// Writer returns a writer for the entry's payload, named by its
	// trimmed name. The caller copies the payload, then calls Commit, or
	// Discard if the copy failed on the write side.
	Writer(entry *Entry) (Committer, error)
}

// Committer is a writer that can be committed or discarded.
type Committer interface {
	io.Writer

	// Commit finalizes the write, making content available.
	Commit() error

	// Discard aborts the write and cleans up any temporary resources.
	Discard() error
}
