//go:generate flatc --go --go-namespace fb -o internal schema/index.fbs

// Package ar reads and writes archives in the classic Unix ar layout.
//
// An archive is the 8-byte signature "!<arch>\n" followed by members. Each
// member is a 60-byte ASCII header, the payload, and one '\n' pad byte when
// the payload length is odd:
//
//	name[16] timestamp[12] owner[6] group[6] mode[8] size[10] "`\n"
//
// Long file names, symbol tables and compression are not supported.
//
// # Reading
//
// The format has no table of contents, so an archive is indexed by scanning
// every header once:
//
//	a, err := ar.Open("lib.a")
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	if err := a.BuildIndex(); err != nil {
//	    return err
//	}
//	for _, e := range a.Entries() {
//	    fmt.Println(e.TrimmedName(), e.Size)
//	}
//	stats, err := a.ExtractAll(ctx, "out")
//
// Truncated payloads do not stop extraction; they are reported in
// ExtractStats.Warnings.
//
// # Writing
//
//	err := ar.CreateFromSources(ctx, "out.a", []string{"a.o", "b.o"})
//
// Timestamp, owner and group are written as "0"; the mode field records the
// source's st_mode in octal.
//
// # Index snapshots
//
// SaveIndex writes the scanned index as a FlatBuffers snapshot so that later
// listings can skip the scan. UseSnapshot checks that a snapshot still
// matches the archive before adopting it.
//
// An Archive is not safe for concurrent use: all operations share the
// underlying read position.
package ar
