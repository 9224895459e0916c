// Package field encodes and decodes the fixed-width, space-padded ASCII
// fields used by ar member headers.
package field

import (
	"fmt"
	"strconv"

	"github.com/meigma/ar/internal/artype"
)

// Pad is the filler byte for unused field positions.
const Pad = ' '

// Put writes s left-justified into dst and fills the rest of dst with spaces.
// It returns ErrFieldOverflow if s is longer than dst.
func Put(dst []byte, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %q exceeds %d bytes", artype.ErrFieldOverflow, s, len(dst))
	}
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = Pad
	}
	return nil
}

// Justify returns s left-justified in a field of width bytes.
func Justify(s string, width int) (string, error) {
	buf := make([]byte, width)
	if err := Put(buf, s); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Trim strips surrounding spaces from a raw field.
func Trim(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && b[start] == Pad {
		start++
	}
	for end > start && b[end-1] == Pad {
		end--
	}
	return b[start:end]
}

// Decimal parses a space-padded, non-negative base-10 integer.
// Signs, embedded spaces, and empty fields are rejected.
func Decimal(b []byte) (int64, error) {
	digits := Trim(b)
	if len(digits) == 0 {
		return 0, fmt.Errorf("empty decimal field")
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid decimal field %q", b)
		}
	}
	return strconv.ParseInt(string(digits), 10, 64)
}

// PutDecimal writes v in base 10, left-justified in dst.
func PutDecimal(dst []byte, v int64) error {
	if v < 0 {
		return fmt.Errorf("%w: negative value %d", artype.ErrFieldOverflow, v)
	}
	return Put(dst, strconv.FormatInt(v, 10))
}

// PutOctal writes v in base 8, left-justified in dst.
func PutOctal(dst []byte, v uint32) error {
	return Put(dst, strconv.FormatUint(uint64(v), 8))
}
