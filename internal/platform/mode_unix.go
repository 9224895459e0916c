//go:build unix

package platform

import (
	"io/fs"
	"syscall"
)

// FileMode returns the raw st_mode of a file, type bits included (e.g.
// 0o100644 for a regular file), as ar(1) records it.
func FileMode(info fs.FileInfo) uint32 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(stat.Mode) //nolint:unconvert // Mode is uint16 on some platforms
	}
	return synthesize(info)
}
