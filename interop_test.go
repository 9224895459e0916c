package ar

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	goar "github.com/mkrautz/goar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Archives written by Pack must be readable by other ar implementations.
func TestPack_ReadableByGoar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := map[string]string{
		"debian-binary": "2.0\n",
		"odd.txt":       "abc",
		"empty":         "",
	}
	order := []string{"debian-binary", "odd.txt", "empty"}
	sources := make([]string, 0, len(order))
	for _, name := range order {
		sources = append(sources, writeSource(t, dir, name, want[name], 0o644))
	}

	var buf bytes.Buffer
	require.NoError(t, Pack(context.Background(), &buf, sources, PackWithBaseName(true)))

	r := goar.NewReader(bytes.NewReader(buf.Bytes()))
	var names []string
	for {
		hdr, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		names = append(names, hdr.Name)
		assert.Equal(t, want[hdr.Name], string(data), hdr.Name)
	}
	assert.Equal(t, order, names)
}

func TestCreateFromSources_ReadableByGoar(t *testing.T) {
	t.Parallel()

	src := writeSource(t, t.TempDir(), "control", "Package: ar\n", 0o600)
	archivePath := filepath.Join(t.TempDir(), "pkg.a")
	require.NoError(t, CreateFromSources(context.Background(), archivePath, []string{src}, PackWithBaseName(true)))

	f, err := os.Open(archivePath)
	require.NoError(t, err)
	defer f.Close()

	r := goar.NewReader(f)
	hdr, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "control", hdr.Name)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Package: ar\n", string(data))

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}
