package ar

import "github.com/meigma/ar/internal/artype"

// Errors re-exported from internal/artype.
var (
	// ErrSignatureMismatch is returned when the first 8 bytes are not "!<arch>\n".
	ErrSignatureMismatch = artype.ErrSignatureMismatch

	// ErrEndMarkerMismatch is returned when a header does not end with "`\n".
	ErrEndMarkerMismatch = artype.ErrEndMarkerMismatch

	// ErrSizeUnparsable is returned when a size field is not a non-negative decimal.
	ErrSizeUnparsable = artype.ErrSizeUnparsable

	// ErrFieldOverflow is returned when a name, mode or size does not fit its field.
	ErrFieldOverflow = artype.ErrFieldOverflow

	// ErrEntryTooLarge is returned when a header exceeds WithMaxEntrySize.
	ErrEntryTooLarge = artype.ErrEntryTooLarge

	// ErrSourceMissing is returned when a source path does not exist.
	ErrSourceMissing = artype.ErrSourceMissing

	// ErrSourceUnreadable is returned when a source cannot be opened or read in full.
	ErrSourceUnreadable = artype.ErrSourceUnreadable

	// ErrPayloadTruncated is matched by every TruncatedError.
	ErrPayloadTruncated = artype.ErrPayloadTruncated

	// ErrNotIndexed is returned when BuildIndex has not completed.
	ErrNotIndexed = artype.ErrNotIndexed

	// ErrNotFound is returned when no member has the requested name.
	ErrNotFound = artype.ErrNotFound

	// ErrStaleSnapshot is returned when a snapshot does not match the archive.
	ErrStaleSnapshot = artype.ErrStaleSnapshot
)
