package ar

import (
	_ "crypto/sha256" // register digest.Canonical
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
)

// Digest returns the sha256 digest of e's payload.
// A payload shorter than e.Size yields a *TruncatedError.
func (a *Archive) Digest(e Entry) (digest.Digest, error) {
	d := digest.Canonical.Digester()
	n, err := io.Copy(d.Hash(), io.NewSectionReader(a.src, e.Offset, e.Size))
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", e.TrimmedName(), err)
	}
	if n < e.Size {
		return "", &TruncatedError{Name: e.TrimmedName(), Want: e.Size, Written: n, Cause: io.ErrUnexpectedEOF}
	}
	return d.Digest(), nil
}

// Sum returns the sha256 digest of the whole archive.
func (a *Archive) Sum() (digest.Digest, error) {
	dg, err := digest.Canonical.FromReader(io.NewSectionReader(a.src, 0, a.size))
	if err != nil {
		return "", a.wrap(fmt.Errorf("digest archive: %w", err))
	}
	return dg, nil
}
