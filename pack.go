package ar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/meigma/ar/internal/header"
	"github.com/meigma/ar/internal/platform"
)

// CreateFromSources creates the archive file at path from sources, in order.
//
// On failure the partially written file is left in place for the caller to
// remove.
func CreateFromSources(ctx context.Context, path string, sources []string, opts ...PackOption) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return Pack(ctx, f, sources, opts...)
}

// Pack writes the signature and then one member per source path to w.
//
// Each member's name is the source path (see PackWithBaseName), its mode is
// the source's st_mode, and its size is the source's length. The first
// error aborts the pack; ErrSourceMissing and ErrSourceUnreadable identify
// failures on the source side.
//
// The context is checked between sources.
func Pack(ctx context.Context, w io.Writer, sources []string, opts ...PackOption) error {
	cfg := packConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &packer{cfg: cfg}

	if err := header.WriteSignature(w); err != nil {
		return fmt.Errorf("write signature: %w", err)
	}

	var total uint64
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := p.packOne(w, src)
		if err != nil {
			return err
		}
		total += uint64(n) //nolint:gosec // n is a file size
		p.log().Debug("packed member", "path", src, "size", n)
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage:      StagePacking,
				Path:       src,
				BytesDone:  total,
				FilesDone:  i + 1,
				FilesTotal: len(sources),
			})
		}
	}
	p.log().Info("archive packed", "members", len(sources), "payload_bytes", total)
	return nil
}

// packer holds state for archive creation.
type packer struct {
	cfg packConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (p *packer) log() *slog.Logger {
	if p.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.cfg.logger
}

// packOne writes the header, payload and pad byte for one source and
// returns the payload length.
func (p *packer) packOne(w io.Writer, src string) (int64, error) {
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %w", ErrSourceMissing, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s: not a regular file", ErrSourceUnreadable, src)
	}

	name := filepath.ToSlash(src)
	if p.cfg.baseName {
		name = filepath.Base(src)
	}
	size := info.Size()
	h, err := header.New(name, platform.FileMode(info), size)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", src, err)
	}
	if _, err := h.WriteTo(w); err != nil {
		return 0, fmt.Errorf("write header for %s: %w", src, err)
	}

	tw := &trackingWriter{w: w}
	n, err := io.CopyN(tw, f, size)
	if tw.err != nil {
		return n, fmt.Errorf("write %s: %w", src, tw.err)
	}
	if err != nil {
		return n, fmt.Errorf("%w: %s: read %d of %d bytes: %w", ErrSourceUnreadable, src, n, size, err)
	}

	if header.Pad(size) == 1 {
		if _, err := w.Write([]byte{header.PadByte}); err != nil {
			return n, fmt.Errorf("write pad for %s: %w", src, err)
		}
	}
	return n, nil
}
