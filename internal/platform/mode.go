// Package platform isolates operating-system specific file metadata.
package platform

import "io/fs"

// regularFile is S_IFREG.
const regularFile = 0o100000

func synthesize(info fs.FileInfo) uint32 {
	mode := uint32(info.Mode().Perm())
	if info.Mode().IsRegular() {
		mode |= regularFile
	}
	return mode
}
