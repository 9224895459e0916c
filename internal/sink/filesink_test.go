package sink

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string) *Entry {
	return &Entry{Name: name + "    ", Mode: "100640  ", Size: 3}
}

func TestFileSink_CommitRenamesIntoPlace(t *testing.T) {
	t.Parallel()

	for _, direct := range []bool{false, true} {
		dir := t.TempDir()
		s := NewFileSink(dir, WithDirectWrites(direct))

		w, err := s.Writer(entry("a.txt"))
		require.NoError(t, err)
		_, err = w.Write([]byte("abc"))
		require.NoError(t, err)
		require.NoError(t, w.Commit())

		got, err := os.ReadFile(filepath.Join(dir, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		des, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, des, 1, "temp files must not remain (direct=%v)", direct)
	}
}

func TestFileSink_Discard(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewFileSink(dir)

	w, err := s.Writer(entry("a.txt"))
	require.NoError(t, err)
	_, err = w.Write([]byte("abc"))
	require.NoError(t, err)
	require.NoError(t, w.Discard())

	des, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, des)
}

func TestFileSink_Subdirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := NewFileSink(dir)

	w, err := s.Writer(entry("./sub/b.txt"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	_, err = os.Stat(filepath.Join(dir, "sub", "b.txt"))
	require.NoError(t, err)
}

func TestFileSink_RejectsInvalidNames(t *testing.T) {
	t.Parallel()

	s := NewFileSink(t.TempDir())
	for _, name := range []string{"../escape", "/etc/passwd", "", "."} {
		_, err := s.Writer(entry(name))
		var pathErr *fs.PathError
		require.ErrorAs(t, err, &pathErr, "name %q", name)
		assert.ErrorIs(t, pathErr.Err, fs.ErrInvalid)
	}
}

func TestFileSink_ShouldProcess(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exists"), []byte("x"), 0o600))

	s := NewFileSink(dir)
	assert.True(t, s.ShouldProcess(entry("exists")))
	assert.True(t, s.ShouldProcess(entry("missing")))

	s = NewFileSink(dir, WithSkipExisting(true))
	assert.False(t, s.ShouldProcess(entry("exists")))
	assert.True(t, s.ShouldProcess(entry("missing")))
}

func TestFileSink_ReplacesExisting(t *testing.T) {
	t.Parallel()

	for _, direct := range []bool{false, true} {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("stale data"), 0o600))

		s := NewFileSink(dir, WithDirectWrites(direct))
		w, err := s.Writer(entry("a.txt"))
		require.NoError(t, err)
		_, err = w.Write([]byte("new"))
		require.NoError(t, err)
		require.NoError(t, w.Commit())

		got, err := os.ReadFile(filepath.Join(dir, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new", string(got), "direct=%v", direct)
	}
}

func TestFileSink_DefaultModeFollowsUmask(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	for _, direct := range []bool{false, true} {
		dir := t.TempDir()

		// A file created 0666 shows what the process umask leaves.
		ref, err := os.OpenFile(filepath.Join(dir, "ref"), os.O_CREATE|os.O_WRONLY, 0o666)
		require.NoError(t, err)
		require.NoError(t, ref.Close())
		refInfo, err := os.Stat(filepath.Join(dir, "ref"))
		require.NoError(t, err)

		s := NewFileSink(dir, WithDirectWrites(direct))
		w, err := s.Writer(entry("out"))
		require.NoError(t, err)
		require.NoError(t, w.Commit())

		info, err := os.Stat(filepath.Join(dir, "out"))
		require.NoError(t, err)
		assert.Equal(t, refInfo.Mode().Perm(), info.Mode().Perm(), "direct=%v", direct)
	}
}

func TestFileSink_PreserveMode(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not preserved on windows")
	}

	dir := t.TempDir()
	s := NewFileSink(dir, WithPreserveMode(true))

	w, err := s.Writer(entry("m"))
	require.NoError(t, err)
	require.NoError(t, w.Commit())

	info, err := os.Stat(filepath.Join(dir, "m"))
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o640), info.Mode().Perm())
}
