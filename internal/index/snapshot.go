package index

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/meigma/ar/internal/fb"
)

// SnapshotVersion is the version written into new snapshots.
const SnapshotVersion uint32 = 1

// Snapshot is a decoded index snapshot.
type Snapshot struct {
	Version uint32

	// ArchiveSize is the byte length of the archive the snapshot was taken from.
	ArchiveSize int64

	// ArchiveDigest identifies the archive content, e.g. "sha256:...".
	ArchiveDigest string

	Entries []Entry
}

// Marshal serializes s to FlatBuffers. The Version field is ignored and
// SnapshotVersion is written instead.
func Marshal(s *Snapshot) []byte {
	builder := flatbuffers.NewBuilder(1024)

	// Build entries in reverse order (FlatBuffers requirement)
	offsets := make([]flatbuffers.UOffsetT, len(s.Entries))
	for i := len(s.Entries) - 1; i >= 0; i-- {
		e := s.Entries[i]
		name := builder.CreateString(e.Name)
		timestamp := builder.CreateString(e.Timestamp)
		owner := builder.CreateString(e.Owner)
		group := builder.CreateString(e.Group)
		mode := builder.CreateString(e.Mode)

		fb.EntryStart(builder)
		fb.EntryAddName(builder, name)
		fb.EntryAddTimestamp(builder, timestamp)
		fb.EntryAddOwner(builder, owner)
		fb.EntryAddGroup(builder, group)
		fb.EntryAddMode(builder, mode)
		fb.EntryAddSize(builder, e.Size)
		fb.EntryAddOffset(builder, e.Offset)
		offsets[i] = fb.EntryEnd(builder)
	}

	fb.IndexStartEntriesVector(builder, len(offsets))
	for i := len(offsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(offsets[i])
	}
	entries := builder.EndVector(len(offsets))
	digest := builder.CreateString(s.ArchiveDigest)

	fb.IndexStart(builder)
	fb.IndexAddVersion(builder, SnapshotVersion)
	fb.IndexAddArchiveSize(builder, s.ArchiveSize)
	fb.IndexAddArchiveDigest(builder, digest)
	fb.IndexAddEntries(builder, entries)
	fb.FinishIndexBuffer(builder, fb.IndexEnd(builder))
	return builder.FinishedBytes()
}

// Unmarshal decodes a snapshot produced by Marshal.
func Unmarshal(data []byte) (s *Snapshot, err error) {
	// The generated accessors panic on out-of-range offsets.
	defer func() {
		if r := recover(); r != nil {
			s = nil
			err = fmt.Errorf("ar: failed to parse index snapshot: %v", r)
		}
	}()
	if len(data) < flatbuffers.SizeUOffsetT {
		return nil, errors.New("ar: empty index snapshot")
	}

	root := fb.GetRootAsIndex(data, 0)
	if v := root.Version(); v == 0 || v > SnapshotVersion {
		return nil, fmt.Errorf("ar: unsupported index snapshot version %d", v)
	}

	s = &Snapshot{
		Version:       root.Version(),
		ArchiveSize:   root.ArchiveSize(),
		ArchiveDigest: string(root.ArchiveDigest()),
		Entries:       make([]Entry, 0, root.EntriesLength()),
	}
	var e fb.Entry
	for i := range root.EntriesLength() {
		if !root.Entries(&e, i) {
			break
		}
		s.Entries = append(s.Entries, Entry{
			Name:      string(e.Name()),
			Timestamp: string(e.Timestamp()),
			Owner:     string(e.Owner()),
			Group:     string(e.Group()),
			Mode:      string(e.Mode()),
			Size:      e.Size(),
			Offset:    e.Offset(),
		})
	}
	return s, nil
}
