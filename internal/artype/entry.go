package artype

import (
	"io/fs"
	"strconv"
	"strings"
)

// Entry describes one archive member.
//
// The text fields hold the raw fixed-width header bytes, including the space
// padding. Use TrimmedName for filesystem paths.
type Entry struct {
	// Name is the raw 16-byte name field.
	Name string

	// Timestamp is the raw 12-byte modification time field.
	Timestamp string

	// Owner is the raw 6-byte owner id field.
	Owner string

	// Group is the raw 6-byte group id field.
	Group string

	// Mode is the raw 8-byte octal mode field.
	Mode string

	// Size is the payload length in bytes.
	Size int64

	// Offset is the archive position of the first payload byte.
	Offset int64
}

// TrimmedName returns Name without surrounding whitespace.
func (e *Entry) TrimmedName() string {
	return strings.TrimSpace(e.Name)
}

// Perm parses the octal mode field and returns its permission bits.
// ok is false when the field is not an octal number.
func (e *Entry) Perm() (perm fs.FileMode, ok bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(e.Mode), 8, 32)
	if err != nil {
		return 0, false
	}
	return fs.FileMode(v).Perm(), true
}

// End returns the offset of the next header, past the payload and its pad byte.
func (e *Entry) End() int64 {
	return e.Offset + e.Size + e.Size%2
}
