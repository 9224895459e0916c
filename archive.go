package ar

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/meigma/ar/internal/index"
)

// source is what an Archive reads from: sequential reads and seeks for
// scanning and extraction, ReadAt for member readers and digests.
type source interface {
	io.ReadSeeker
	io.ReaderAt
}

// Archive is an ar archive opened for reading.
//
// An Archive owns its source for its whole lifetime. BuildIndex (or
// UseSnapshot) must succeed before members can be listed or extracted.
type Archive struct {
	src     source
	closer  io.Closer
	name    string
	size    int64
	entries []Entry
	indexed bool

	maxEntrySize int64
	progress     ProgressFunc
	logger       *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (a *Archive) log() *slog.Logger {
	if a.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.logger
}

// Open opens the archive file at path. Call Close when done.
func Open(path string, opts ...Option) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}
	a := newArchive(f, info.Size(), opts)
	a.closer = f
	a.name = path
	return a, nil
}

// OpenReaderAt opens an archive held by r, which must provide size bytes.
// Use it for in-memory archives or remote sources such as http.Source.
func OpenReaderAt(r io.ReaderAt, size int64, opts ...Option) *Archive {
	return newArchive(io.NewSectionReader(r, 0, size), size, opts)
}

func newArchive(src source, size int64, opts []Option) *Archive {
	a := &Archive{src: src, size: size}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Close releases the underlying file, if Open created one.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Size returns the archive length in bytes.
func (a *Archive) Size() int64 {
	return a.size
}

// BuildIndex scans every header and records the members in archive order.
//
// The signature is validated first. A corrupt header fails the whole scan
// with a *FormatError and leaves the Archive unindexed.
func (a *Archive) BuildIndex() error {
	a.entries, a.indexed = nil, false
	if _, err := a.src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind archive: %w", err)
	}

	logger := a.log()
	if a.name != "" {
		logger = logger.With("archive", a.name)
	}
	scanner := index.NewScanner(
		index.WithMaxEntrySize(a.maxEntrySize),
		index.WithProgress(a.progress),
		index.WithLogger(logger),
	)
	entries, err := scanner.Build(a.src)
	if err != nil {
		return a.wrap(err)
	}
	a.entries, a.indexed = entries, true
	return nil
}

// Indexed reports whether the member list is available.
func (a *Archive) Indexed() bool {
	return a.indexed
}

// Entries returns a copy of the members in archive order, or nil if the
// archive has not been indexed.
func (a *Archive) Entries() []Entry {
	if !a.indexed {
		return nil
	}
	return slices.Clone(a.entries)
}

// Lookup returns the first member whose trimmed name is name.
func (a *Archive) Lookup(name string) (Entry, bool) {
	for i := range a.entries {
		if a.entries[i].TrimmedName() == name {
			return a.entries[i], true
		}
	}
	return Entry{}, false
}

// Member returns a reader over the payload of the named member.
// The reader uses ReadAt and does not move the archive's read position.
func (a *Archive) Member(name string) (*io.SectionReader, error) {
	if !a.indexed {
		return nil, ErrNotIndexed
	}
	e, ok := a.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return io.NewSectionReader(a.src, e.Offset, e.Size), nil
}

// List writes a human-readable description of every member to w.
func (a *Archive) List(w io.Writer) error {
	if !a.indexed {
		return ErrNotIndexed
	}
	for i := range a.entries {
		e := &a.entries[i]
		_, err := fmt.Fprintf(w, "file: %s\ntimestamp: %s\nowner: %s\ngroup: %s\nmode: %s\nsize: %d\noffset: %d\n\n",
			e.TrimmedName(),
			strings.TrimSpace(e.Timestamp),
			strings.TrimSpace(e.Owner),
			strings.TrimSpace(e.Group),
			strings.TrimSpace(e.Mode),
			e.Size,
			e.Offset,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// wrap prefixes err with the archive name when there is one.
func (a *Archive) wrap(err error) error {
	if a.name == "" {
		return err
	}
	return fmt.Errorf("%s: %w", a.name, err)
}
