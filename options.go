package ar

import "log/slog"

// Option configures an Archive.
type Option func(*Archive)

// WithLogger sets the logger for indexing and extraction.
// If not set, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Archive) {
		a.logger = logger
	}
}

// WithMaxEntrySize makes BuildIndex reject any header that claims more than
// limit payload bytes. Zero, the default, disables the limit.
func WithMaxEntrySize(limit int64) Option {
	return func(a *Archive) {
		a.maxEntrySize = limit
	}
}

// WithProgress sets a callback that receives one event per indexed member.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Archive) {
		a.progress = fn
	}
}

// extractConfig holds configuration for extraction.
type extractConfig struct {
	skipExisting bool
	preserveMode bool
	directWrites bool
	progress     ProgressFunc
}

// ExtractOption configures extraction.
type ExtractOption func(*extractConfig)

// ExtractWithSkipExisting leaves files that already exist untouched. By
// default they are replaced. It only affects ExtractAll.
func ExtractWithSkipExisting(skip bool) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.skipExisting = skip
	}
}

// ExtractWithPreserveMode applies each header's permission bits to the
// extracted file. It only affects ExtractAll.
func ExtractWithPreserveMode(preserve bool) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.preserveMode = preserve
	}
}

// ExtractWithDirectWrites writes straight to the final path instead of a temp
// file that is renamed on completion. It only affects ExtractAll.
func ExtractWithDirectWrites(enabled bool) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.directWrites = enabled
	}
}

// ExtractWithProgress sets a callback that receives one event per extracted member.
func ExtractWithProgress(fn ProgressFunc) ExtractOption {
	return func(cfg *extractConfig) {
		cfg.progress = fn
	}
}

// packConfig holds configuration for archive creation.
type packConfig struct {
	baseName bool
	progress ProgressFunc
	logger   *slog.Logger
}

// PackOption configures archive creation.
type PackOption func(*packConfig)

// PackWithBaseName stores only the last element of each source path as the
// member name. By default the path is stored as given.
func PackWithBaseName(enabled bool) PackOption {
	return func(cfg *packConfig) {
		cfg.baseName = enabled
	}
}

// PackWithProgress sets a callback that receives one event per packed source.
func PackWithProgress(fn ProgressFunc) PackOption {
	return func(cfg *packConfig) {
		cfg.progress = fn
	}
}

// PackWithLogger sets the logger for archive creation.
func PackWithLogger(logger *slog.Logger) PackOption {
	return func(cfg *packConfig) {
		cfg.logger = logger
	}
}
