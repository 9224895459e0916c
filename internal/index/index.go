package index

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/meigma/ar/internal/artype"
	"github.com/meigma/ar/internal/header"
)

// Entry is an alias for artype.Entry.
type Entry = artype.Entry

// Scanner builds the entry list of one archive.
type Scanner struct {
	maxEntrySize int64
	progress     artype.ProgressFunc
	logger       *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMaxEntrySize rejects headers that claim more than limit payload bytes.
// Zero or negative disables the limit.
func WithMaxEntrySize(limit int64) Option {
	return func(s *Scanner) {
		s.maxEntrySize = limit
	}
}

// WithProgress reports one StageIndexing event per entry found.
func WithProgress(fn artype.ProgressFunc) Option {
	return func(s *Scanner) {
		s.progress = fn
	}
}

// WithLogger sets the logger for scanning. If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// NewScanner creates a Scanner.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log returns the logger, falling back to a discard logger if nil.
func (s *Scanner) log() *slog.Logger {
	if s.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.logger
}

// Build scans rs from its current position, which must be the start of the
// archive.
//
// It validates the signature, then decodes headers until none remain. On a
// structural error the entries found so far are discarded and a
// *artype.FormatError carrying the header offset is returned.
func (s *Scanner) Build(rs io.ReadSeeker) ([]Entry, error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locate archive start: %w", err)
	}
	if err := header.ReadSignature(rs); err != nil {
		var fe *artype.FormatError
		if errors.As(err, &fe) {
			fe.Offset = start
		}
		return nil, err
	}

	var entries []Entry
	pos := start + int64(header.SignatureSize)
	for {
		h, err := header.Decode(rs)
		if errors.Is(err, artype.ErrNoMoreEntries) {
			break
		}
		if err != nil {
			if errors.Is(err, artype.ErrEndMarkerMismatch) || errors.Is(err, artype.ErrSizeUnparsable) {
				return nil, &artype.FormatError{Offset: pos, Err: err}
			}
			return nil, err
		}
		if s.maxEntrySize > 0 && h.Size > s.maxEntrySize {
			return nil, &artype.FormatError{
				Offset: pos,
				Err:    fmt.Errorf("%w: %d > %d", artype.ErrEntryTooLarge, h.Size, s.maxEntrySize),
			}
		}

		offset := pos + int64(header.Size)
		skip := h.Size + header.Pad(h.Size)
		if skip > math.MaxInt64-offset {
			return nil, &artype.FormatError{
				Offset: pos,
				Err:    fmt.Errorf("%w: size %d overflows archive offset", artype.ErrSizeUnparsable, h.Size),
			}
		}
		if pos, err = rs.Seek(skip, io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("skip payload of %q: %w", h.Name, err)
		}

		e := Entry{
			Name:      h.Name,
			Timestamp: h.Timestamp,
			Owner:     h.Owner,
			Group:     h.Group,
			Mode:      h.Mode,
			Size:      h.Size,
			Offset:    offset,
		}
		entries = append(entries, e)
		s.log().Debug("indexed entry", "name", e.TrimmedName(), "size", e.Size, "offset", e.Offset)
		if s.progress != nil {
			s.progress(artype.ProgressEvent{
				Stage:     artype.StageIndexing,
				Path:      e.TrimmedName(),
				BytesDone: uint64(pos - start), //nolint:gosec // pos never precedes start
				FilesDone: len(entries),
			})
		}
	}

	s.log().Info("archive indexed", "entries", len(entries))
	return entries, nil
}

// Build scans rs with a default Scanner.
func Build(rs io.ReadSeeker) ([]Entry, error) {
	return NewScanner().Build(rs)
}
