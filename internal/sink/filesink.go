package sink

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FileSink writes members to files under a destination directory.
//
// By default, each member is written to a temporary file in the same directory
// and renamed to its final path on Commit, so a partially written member is
// never visible at the final path.
type FileSink struct {
	destDir      string
	skipExisting bool
	preserveMode bool
	directWrite  bool
}

// FileSinkOption configures a FileSink.
type FileSinkOption func(*FileSink)

// WithSkipExisting leaves files that already exist untouched.
// By default, existing files are replaced, so a later member with the same
// name as an earlier one wins.
func WithSkipExisting(skip bool) FileSinkOption {
	return func(s *FileSink) {
		s.skipExisting = skip
	}
}

// WithPreserveMode applies the permission bits of the header's mode field.
// By default, files are created 0666 less the umask and modes are not applied.
func WithPreserveMode(preserve bool) FileSinkOption {
	return func(s *FileSink) {
		s.preserveMode = preserve
	}
}

// WithDirectWrites disables temp files and writes directly to the final path.
func WithDirectWrites(enabled bool) FileSinkOption {
	return func(s *FileSink) {
		s.directWrite = enabled
	}
}

// NewFileSink creates a FileSink that writes to destDir.
func NewFileSink(destDir string, opts ...FileSinkOption) *FileSink {
	s := &FileSink{
		destDir: destDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ShouldProcess returns false if the file already exists and WithSkipExisting
// is set.
func (s *FileSink) ShouldProcess(entry *Entry) bool {
	if !s.skipExisting {
		return true
	}
	name := cleanName(entry)
	if !fs.ValidPath(name) {
		// Let Writer report the invalid name.
		return true
	}
	_, err := os.Stat(filepath.Join(s.destDir, filepath.FromSlash(name)))
	return os.IsNotExist(err)
}

// Writer returns a Committer for the member's output file.
//
// Names that are not valid fs paths after cleaning (absolute, "..", empty) are rejected
// with an *fs.PathError wrapping fs.ErrInvalid.
func (s *FileSink) Writer(entry *Entry) (Committer, error) {
	name := cleanName(entry)
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "extract", Path: name, Err: fs.ErrInvalid}
	}
	destRel := filepath.FromSlash(name)
	destPath := filepath.Join(s.destDir, destRel)

	root, err := os.OpenRoot(s.destDir)
	if err != nil {
		return nil, fmt.Errorf("open destination root %s: %w", s.destDir, err)
	}
	if dir := filepath.Dir(destRel); dir != "." {
		if err := root.MkdirAll(dir, 0o750); err != nil {
			_ = root.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if s.directWrite {
		file, err := root.OpenFile(destRel, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o666) //nolint:gosec // umask applies
		if err != nil {
			_ = root.Close() //nolint:errcheck // best-effort cleanup
			return nil, fmt.Errorf("create file %s: %w", destPath, err)
		}
		return &committer{entry: entry, destPath: destPath, destRel: destRel, file: file, fileRel: destRel, root: root, sink: s}, nil
	}

	tempFile, tempRel, err := createTempFile(root, filepath.Dir(destRel), ".ar-")
	if err != nil {
		_ = root.Close() //nolint:errcheck // best-effort cleanup
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &committer{entry: entry, destPath: destPath, destRel: destRel, file: tempFile, fileRel: tempRel, root: root, sink: s}, nil
}

// committer writes to fileRel and, when that is a temp file, renames it to
// destRel on Commit.
type committer struct {
	entry    *Entry
	destPath string
	destRel  string
	file     *os.File
	fileRel  string
	root     *os.Root
	sink     *FileSink
}

// Write implements io.Writer.
func (c *committer) Write(p []byte) (int, error) {
	return c.file.Write(p)
}

// Commit closes the file, applies the mode if requested, and moves it into place.
func (c *committer) Commit() error {
	if err := c.file.Close(); err != nil {
		return c.fail(fmt.Errorf("close file: %w", err))
	}

	if c.sink.preserveMode {
		if perm, ok := c.entry.Perm(); ok {
			if err := c.root.Chmod(c.fileRel, perm); err != nil {
				return c.fail(fmt.Errorf("chmod: %w", err))
			}
		}
	}

	if c.fileRel != c.destRel {
		if err := c.root.Rename(c.fileRel, c.destRel); err != nil {
			return c.fail(fmt.Errorf("rename to %s: %w", c.destPath, err))
		}
	}

	return c.root.Close()
}

// Discard closes and removes the file.
func (c *committer) Discard() error {
	_ = c.file.Close() //nolint:errcheck // we're cleaning up
	if err := c.root.Remove(c.fileRel); err != nil {
		_ = c.root.Close() //nolint:errcheck // best-effort cleanup
		return err
	}
	return c.root.Close()
}

func (c *committer) fail(err error) error {
	_ = c.root.Remove(c.fileRel) //nolint:errcheck // best-effort cleanup
	_ = c.root.Close()           //nolint:errcheck // best-effort cleanup
	return err
}

// cleanName returns the entry's trimmed name in slash form with "./" and
// duplicate separators removed. Absolute and ".." names stay invalid.
func cleanName(entry *Entry) string {
	name := entry.TrimmedName()
	if name == "" {
		return name
	}
	return path.Clean(filepath.ToSlash(name))
}

func createTempFile(root *os.Root, dir, prefix string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		name, err := randomSuffix()
		if err != nil {
			return nil, "", err
		}
		relPath := filepath.Join(dir, prefix+name)
		f, err := root.OpenFile(relPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666) //nolint:gosec // umask applies
		if err == nil {
			return f, relPath, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}

func randomSuffix() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
