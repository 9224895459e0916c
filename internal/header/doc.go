// Package header reads and writes the ar global signature and the fixed
// 60-byte member header.
//
// A header is laid out as
//
//	name[16] timestamp[12] owner[6] group[6] mode[8] size[10] end[2]
//
// with every text field left-justified and space padded. A payload of odd
// length is followed by one PadByte so that every header starts on an even
// offset.
package header
