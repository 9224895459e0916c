//go:build !unix

package platform

import "io/fs"

// FileMode returns a unix-style mode for info. There is no st_mode on this
// platform, so the regular-file type bits are combined with the permissions.
func FileMode(info fs.FileInfo) uint32 {
	return synthesize(info)
}
