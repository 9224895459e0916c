// Package testutil builds ar archives byte by byte for tests, independently
// of the package's own writer.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

// Member is one archive member for BuildArchive.
type Member struct {
	Name string
	Mode uint32
	Data []byte
}

// Signature is the raw global signature.
var Signature = []byte{0x21, 0x3C, 0x61, 0x72, 0x63, 0x68, 0x3E, 0x0A}

// HeaderBytes formats a 60-byte header the way a plain ar(1) writer would.
func HeaderBytes(tb testing.TB, name string, mode uint32, size int) []byte {
	tb.Helper()
	h := fmt.Sprintf("%-16s%-12s%-6s%-6s%-8o%-10d`\n", name, "0", "0", "0", mode, size)
	if len(h) != 60 {
		tb.Fatalf("header for %q is %d bytes", name, len(h))
	}
	return []byte(h)
}

// BuildArchive returns the signature followed by every member's header,
// payload and pad byte.
func BuildArchive(tb testing.TB, members ...Member) []byte {
	tb.Helper()
	var buf bytes.Buffer
	buf.Write(Signature)
	for _, m := range members {
		mode := m.Mode
		if mode == 0 {
			mode = 0o100644
		}
		buf.Write(HeaderBytes(tb, m.Name, mode, len(m.Data)))
		buf.Write(m.Data)
		if len(m.Data)%2 == 1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// MockByteSource implements a simple in-memory random access source.
type MockByteSource struct {
	data  []byte
	reads int
}

// NewMockByteSource returns a byte source backed by the provided data.
func NewMockByteSource(data []byte) *MockByteSource {
	return &MockByteSource{data: data}
}

// ReadAt implements io.ReaderAt semantics over the backing slice.
func (m *MockByteSource) ReadAt(p []byte, off int64) (int, error) {
	m.reads++
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the total size of the backing data.
func (m *MockByteSource) Size() int64 {
	return int64(len(m.data))
}

// Reads returns the number of ReadAt calls made so far.
func (m *MockByteSource) Reads() int {
	return m.reads
}
