package artype

// ProgressEvent represents a progress update during indexing, packing, or extraction.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the member or source currently being processed, if applicable.
	Path string

	// BytesDone is the number of payload bytes completed so far.
	BytesDone uint64

	// FilesDone is the number of members completed.
	FilesDone int

	// FilesTotal is the total number of members.
	// Zero indicates the total is unknown (e.g., while indexing).
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageIndexing indicates headers are being scanned.
	StageIndexing ProgressStage = iota

	// StagePacking indicates sources are being written into a new archive.
	StagePacking

	// StageExtracting indicates members are being extracted.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageIndexing:
		return "indexing"
	case StagePacking:
		return "packing"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)
