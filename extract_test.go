package ar

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/ar/internal/testutil"
)

func TestExtractAll_HelloWorld(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, testutil.Member{Name: "hello.txt", Data: []byte("world")})
	a := openIndexed(t, data)

	dest := t.TempDir()
	stats, err := a.ExtractAll(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, uint64(5), stats.TotalBytes)
	assert.Empty(t, stats.Warnings)

	got, err := os.ReadFile(filepath.Join(dest, "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))
}

func TestExtractAll_NotIndexed(t *testing.T) {
	t.Parallel()

	a := OpenReaderAt(bytes.NewReader(testutil.Signature), int64(len(testutil.Signature)))
	_, err := a.ExtractAll(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrNotIndexed)
}

func TestExtractAll_Empty(t *testing.T) {
	t.Parallel()

	a := openIndexed(t, testutil.Signature)
	dest := t.TempDir()
	stats, err := a.ExtractAll(context.Background(), dest)
	require.NoError(t, err)
	assert.Zero(t, stats.FileCount)

	names, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestExtractAll_TruncatedPayload(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, testutil.Member{Name: "full", Data: []byte("abcd")})
	data = append(data, testutil.HeaderBytes(t, "short", 0o100644, 10)...)
	data = append(data, "1234"...)

	a := openIndexed(t, data)
	require.Len(t, a.Entries(), 2)

	dest := t.TempDir()
	stats, err := a.ExtractAll(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, uint64(8), stats.TotalBytes)
	require.Len(t, stats.Warnings, 1)

	warning := stats.Warnings[0]
	require.ErrorIs(t, warning, ErrPayloadTruncated)
	require.ErrorIs(t, warning, io.ErrUnexpectedEOF)
	var te *TruncatedError
	require.ErrorAs(t, warning, &te)
	assert.Equal(t, "short", te.Name)
	assert.Equal(t, int64(10), te.Want)
	assert.Equal(t, int64(4), te.Written)

	got, err := os.ReadFile(filepath.Join(dest, "short"))
	require.NoError(t, err)
	assert.Equal(t, "1234", string(got))
	got, err = os.ReadFile(filepath.Join(dest, "full"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(got))
}

func TestExtractAll_ReplacesExistingAndDuplicates(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t,
		testutil.Member{Name: "a.txt", Data: []byte("first")},
		testutil.Member{Name: "a.txt", Data: []byte("second")},
		testutil.Member{Name: "b.txt", Data: []byte("new")},
	)
	a := openIndexed(t, data)

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "b.txt"), []byte("stale"), 0o600))

	stats, err := a.ExtractAll(context.Background(), dest)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.FileCount)
	assert.Zero(t, stats.Skipped)

	got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
	got, err = os.ReadFile(filepath.Join(dest, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestExtractAll_SkipExisting(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t,
		testutil.Member{Name: "keep", Data: []byte("new")},
		testutil.Member{Name: "fresh", Data: []byte("data")},
	)
	a := openIndexed(t, data)

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "keep"), []byte("old"), 0o600))

	stats, err := a.ExtractAll(context.Background(), dest, ExtractWithSkipExisting(true))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, 1, stats.FileCount)

	got, err := os.ReadFile(filepath.Join(dest, "keep"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	got, err = os.ReadFile(filepath.Join(dest, "fresh"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

func TestExtractAll_WhitespacePaddedName(t *testing.T) {
	t.Parallel()

	data := append([]byte{}, testutil.Signature...)
	data = append(data, testutil.HeaderBytes(t, "tab.txt\t", 0o100644, 2)...)
	data = append(data, "ok"...)
	a := openIndexed(t, data)

	dest := t.TempDir()
	_, err := a.ExtractAll(context.Background(), dest)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "tab.txt"))
	require.NoError(t, err)
	assert.Equal(t, "ok", string(got))
}

func TestExtractAll_PreserveMode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	data := testutil.BuildArchive(t, testutil.Member{Name: "run.sh", Mode: 0o100755, Data: []byte("#!/bin/sh\n")})
	a := openIndexed(t, data)

	dest := t.TempDir()
	_, err := a.ExtractAll(context.Background(), dest, ExtractWithPreserveMode(true))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dest, "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o755), info.Mode().Perm())
}

func TestExtractAll_RejectsEscapingName(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, testutil.Member{Name: "../evil", Data: []byte("x")})
	a := openIndexed(t, data)

	_, err := a.ExtractAll(context.Background(), t.TempDir())
	require.ErrorIs(t, err, fs.ErrInvalid)
}

func TestExtractAll_Progress(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t,
		testutil.Member{Name: "a", Data: []byte("1")},
		testutil.Member{Name: "b", Data: []byte("22")},
	)
	a := openIndexed(t, data)

	var events []ProgressEvent
	_, err := a.ExtractAll(context.Background(), t.TempDir(), ExtractWithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, StageExtracting, events[1].Stage)
	assert.Equal(t, "b", events[1].Path)
	assert.Equal(t, uint64(3), events[1].BytesDone)
	assert.Equal(t, 2, events[1].FilesDone)
	assert.Equal(t, 2, events[1].FilesTotal)
}

func TestExtract_ContextCanceled(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, testutil.Member{Name: "a", Data: []byte("1")})
	a := openIndexed(t, data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := a.ExtractAll(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.FileCount)
}

// memorySink collects members in memory.
type memorySink struct {
	files   map[string][]byte
	skip    string
	failing string
}

func (s *memorySink) ShouldProcess(e *Entry) bool {
	return e.TrimmedName() != s.skip
}

func (s *memorySink) Writer(e *Entry) (Committer, error) {
	name := e.TrimmedName()
	if name == s.failing {
		return &memoryCommitter{fail: true}, nil
	}
	return &memoryCommitter{commit: func(b []byte) { s.files[name] = b }}, nil
}

type memoryCommitter struct {
	buf    bytes.Buffer
	fail   bool
	commit func([]byte)
}

var errDiskFull = errors.New("disk full")

func (c *memoryCommitter) Write(p []byte) (int, error) {
	if c.fail {
		return 0, errDiskFull
	}
	return c.buf.Write(p)
}

func (c *memoryCommitter) Commit() error {
	c.commit(c.buf.Bytes())
	return nil
}

func (c *memoryCommitter) Discard() error { return nil }

func TestExtract_CustomSink(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t,
		testutil.Member{Name: "a", Data: []byte("one")},
		testutil.Member{Name: "b", Data: []byte("two")},
		testutil.Member{Name: "c", Data: []byte("three")},
	)
	a := openIndexed(t, data)

	s := &memorySink{files: map[string][]byte{}, skip: "b"}
	stats, err := a.Extract(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, map[string][]byte{"a": []byte("one"), "c": []byte("three")}, s.files)
}

func TestExtract_WriteErrorAborts(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t,
		testutil.Member{Name: "a", Data: []byte("one")},
		testutil.Member{Name: "b", Data: []byte("two")},
		testutil.Member{Name: "c", Data: []byte("three")},
	)
	a := openIndexed(t, data)

	s := &memorySink{files: map[string][]byte{}, failing: "b"}
	stats, err := a.Extract(context.Background(), s)
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, 1, stats.FileCount)
	assert.Contains(t, s.files, "a")
	assert.NotContains(t, s.files, "c")
}
