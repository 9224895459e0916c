// Package index scans an ar archive into an ordered list of entries, and
// encodes that list as a FlatBuffers snapshot.
//
// The ar format stores no member count or table of contents, so a scan of
// every header is the only way to discover members. Payloads are skipped with
// Seek and never read.
package index
