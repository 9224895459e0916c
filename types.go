package ar

import (
	"github.com/meigma/ar/internal/artype"
	"github.com/meigma/ar/internal/index"
	"github.com/meigma/ar/internal/sink"
)

// Re-export types from internal packages for the public API.
type (
	// Entry describes one archive member.
	Entry = artype.Entry

	// FormatError reports a structural problem at an archive offset.
	FormatError = artype.FormatError

	// TruncatedError is the per-member warning for a short payload.
	TruncatedError = artype.TruncatedError

	// ProgressEvent represents a progress update during operations.
	ProgressEvent = artype.ProgressEvent

	// ProgressStage identifies the current phase of an operation.
	ProgressStage = artype.ProgressStage

	// ProgressFunc receives progress updates during operations.
	ProgressFunc = artype.ProgressFunc

	// Sink creates one output per extracted member.
	Sink = sink.Sink

	// Committer is a member output that is committed or discarded.
	Committer = sink.Committer

	// Snapshot is a decoded index snapshot.
	Snapshot = index.Snapshot
)

// Re-export progress stage constants.
const (
	StageIndexing   = artype.StageIndexing
	StagePacking    = artype.StagePacking
	StageExtracting = artype.StageExtracting
)
