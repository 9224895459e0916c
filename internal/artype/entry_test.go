package artype

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_TrimmedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{raw: "hello.txt       ", want: "hello.txt"},
		{raw: "tab.txt\t        ", want: "tab.txt"},
		{raw: "  lead          ", want: "lead"},
		{raw: "                ", want: ""},
	}
	for _, tt := range tests {
		e := Entry{Name: tt.raw}
		assert.Equal(t, tt.want, e.TrimmedName(), "raw %q", tt.raw)
	}
}

func TestEntry_Perm(t *testing.T) {
	t.Parallel()

	e := Entry{Mode: "100755  "}
	perm, ok := e.Perm()
	assert.True(t, ok)
	assert.Equal(t, fs.FileMode(0o755), perm)

	e = Entry{Mode: "rwxr-xr-"}
	_, ok = e.Perm()
	assert.False(t, ok)
}

func TestEntry_End(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(68+5+1), (&Entry{Offset: 68, Size: 5}).End())
	assert.Equal(t, int64(68+4), (&Entry{Offset: 68, Size: 4}).End())
}
