package ar

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/meigma/ar/internal/sink"
)

// ExtractStats summarizes an extraction.
type ExtractStats struct {
	// FileCount is the number of members written, including truncated ones.
	FileCount int

	// TotalBytes is the number of payload bytes written.
	TotalBytes uint64

	// Skipped is the number of members the sink declined.
	Skipped int

	// Warnings holds one *TruncatedError per member whose payload ended early.
	Warnings []error
}

// ExtractAll writes every member to a file under destDir, named by the
// member's trimmed name. Existing files are replaced, so when several
// members share a name the last one wins. ExtractWithSkipExisting keeps
// existing files instead.
func (a *Archive) ExtractAll(ctx context.Context, destDir string, opts ...ExtractOption) (ExtractStats, error) {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	fileSink := sink.NewFileSink(destDir,
		sink.WithSkipExisting(cfg.skipExisting),
		sink.WithPreserveMode(cfg.preserveMode),
		sink.WithDirectWrites(cfg.directWrites),
	)
	return a.Extract(ctx, fileSink, opts...)
}

// Extract copies every member, in archive order, to an output obtained from s.
//
// Exactly Size bytes are copied per member. If the archive ends first, the
// output keeps what was copied, a *TruncatedError is added to the stats'
// Warnings, and extraction continues with the next member. Failing to create
// or write an output aborts the extraction.
//
// The context is checked between members.
func (a *Archive) Extract(ctx context.Context, s Sink, opts ...ExtractOption) (ExtractStats, error) {
	var stats ExtractStats
	if !a.indexed {
		return stats, ErrNotIndexed
	}
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	for i := range a.entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		e := &a.entries[i]
		name := e.TrimmedName()
		if !s.ShouldProcess(e) {
			a.log().Debug("skipped member", "name", name)
			stats.Skipped++
			continue
		}

		written, warning, err := a.extractEntry(s, e)
		if err != nil {
			return stats, a.wrap(err)
		}
		stats.FileCount++
		stats.TotalBytes += uint64(written) //nolint:gosec // written is never negative
		if warning != nil {
			a.log().Warn("member truncated", "name", name, "size", e.Size, "written", written)
			stats.Warnings = append(stats.Warnings, warning)
		} else {
			a.log().Debug("extracted member", "name", name, "size", e.Size)
		}
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage:      StageExtracting,
				Path:       name,
				BytesDone:  stats.TotalBytes,
				FilesDone:  stats.FileCount,
				FilesTotal: len(a.entries),
			})
		}
	}
	return stats, nil
}

// extractEntry copies one payload. warning is non-nil when the source ran out
// before Size bytes; err is non-nil when the output could not be written.
func (a *Archive) extractEntry(s Sink, e *Entry) (written int64, warning, err error) {
	name := e.TrimmedName()
	if _, err := a.src.Seek(e.Offset, io.SeekStart); err != nil {
		return 0, nil, fmt.Errorf("seek to %s: %w", name, err)
	}

	w, err := s.Writer(e)
	if err != nil {
		return 0, nil, fmt.Errorf("create %s: %w", name, err)
	}
	tw := &trackingWriter{w: w}
	written, copyErr := io.CopyN(tw, a.src, e.Size)
	if tw.err != nil {
		_ = w.Discard() //nolint:errcheck // the write error is more useful
		return written, nil, fmt.Errorf("write %s: %w", name, tw.err)
	}
	if err := w.Commit(); err != nil {
		return written, nil, fmt.Errorf("commit %s: %w", name, err)
	}
	if copyErr != nil {
		if errors.Is(copyErr, io.EOF) {
			copyErr = io.ErrUnexpectedEOF
		}
		return written, &TruncatedError{Name: name, Want: e.Size, Written: written, Cause: copyErr}, nil
	}
	return written, nil, nil
}

// trackingWriter records the first write error so that copy failures can be
// attributed to the destination rather than the source.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}
