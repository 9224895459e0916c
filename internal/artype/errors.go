package artype

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive operations.
var (
	// ErrSignatureMismatch is returned when an archive does not start with the
	// global signature. A short read of the signature is reported the same way.
	ErrSignatureMismatch = errors.New("ar: signature mismatch")

	// ErrEndMarkerMismatch is returned when a member header does not end with
	// the two-byte end marker.
	ErrEndMarkerMismatch = errors.New("ar: header end marker mismatch")

	// ErrSizeUnparsable is returned when a header's size field is not a
	// non-negative decimal integer.
	ErrSizeUnparsable = errors.New("ar: size field unparsable")

	// ErrNoMoreEntries signals that no further header could be read.
	// It marks the normal end of an archive and is never returned by BuildIndex.
	ErrNoMoreEntries = errors.New("ar: no more entries")

	// ErrFieldOverflow is returned when a value does not fit its fixed-width
	// header field.
	ErrFieldOverflow = errors.New("ar: field overflow")

	// ErrEntryTooLarge is returned when a header claims more payload bytes
	// than the configured limit.
	ErrEntryTooLarge = errors.New("ar: entry too large")

	// ErrSourceMissing is returned when a member source does not exist.
	ErrSourceMissing = errors.New("ar: source missing")

	// ErrSourceUnreadable is returned when a member source cannot be opened,
	// stat'ed, or read in full.
	ErrSourceUnreadable = errors.New("ar: source unreadable")

	// ErrPayloadTruncated is returned when fewer than size payload bytes
	// are available for a member.
	ErrPayloadTruncated = errors.New("ar: payload truncated")

	// ErrNotIndexed is returned when an operation needs the index and
	// BuildIndex has not completed.
	ErrNotIndexed = errors.New("ar: archive not indexed")

	// ErrNotFound is returned when no member has the requested name.
	ErrNotFound = errors.New("ar: member not found")

	// ErrStaleSnapshot is returned when an index snapshot does not describe
	// the archive it is checked against.
	ErrStaleSnapshot = errors.New("ar: stale index snapshot")
)

// FormatError reports a structural problem found at a byte offset.
type FormatError struct {
	// Offset is the archive position of the header or signature that failed.
	Offset int64
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v (offset %d)", e.Err, e.Offset)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// TruncatedError is a per-member extraction warning.
type TruncatedError struct {
	Name    string
	Want    int64
	Written int64
	// Cause is the read error that stopped the copy, usually io.EOF.
	Cause error
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("ar: %s: payload truncated: wrote %d of %d bytes: %v", e.Name, e.Written, e.Want, e.Cause)
}

// Unwrap lets errors.Is match both ErrPayloadTruncated and the read cause.
func (e *TruncatedError) Unwrap() []error {
	return []error{ErrPayloadTruncated, e.Cause}
}
