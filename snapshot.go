package ar

import (
	"fmt"
	"io"
	"slices"

	"github.com/meigma/ar/internal/index"
)

// SaveIndex writes a FlatBuffers snapshot of the index to w. The snapshot
// records the archive size and digest so UseSnapshot can detect staleness.
func (a *Archive) SaveIndex(w io.Writer) error {
	if !a.indexed {
		return ErrNotIndexed
	}
	sum, err := a.Sum()
	if err != nil {
		return err
	}
	data := index.Marshal(&Snapshot{
		ArchiveSize:   a.size,
		ArchiveDigest: sum.String(),
		Entries:       a.entries,
	})
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write index snapshot: %w", err)
	}
	a.log().Debug("index snapshot written", "entries", len(a.entries), "bytes", len(data))
	return nil
}

// LoadIndex decodes a snapshot written by SaveIndex.
func LoadIndex(data []byte) (*Snapshot, error) {
	return index.Unmarshal(data)
}

// UseSnapshot adopts s as the index after checking that it was taken from an
// archive with the same size and digest. It returns ErrStaleSnapshot otherwise.
func (a *Archive) UseSnapshot(s *Snapshot) error {
	if s.ArchiveSize != a.size {
		return fmt.Errorf("%w: size %d, archive is %d bytes", ErrStaleSnapshot, s.ArchiveSize, a.size)
	}
	sum, err := a.Sum()
	if err != nil {
		return err
	}
	if s.ArchiveDigest != sum.String() {
		return fmt.Errorf("%w: digest %s, archive is %s", ErrStaleSnapshot, s.ArchiveDigest, sum)
	}
	a.entries, a.indexed = slices.Clone(s.Entries), true
	return nil
}
