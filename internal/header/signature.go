package header

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/ar/internal/artype"
)

// Signature is the magic sequence that opens every archive.
const Signature = "!<arch>\n"

// SignatureSize is the length of Signature in bytes.
const SignatureSize = len(Signature)

// WriteSignature writes the global signature to w.
func WriteSignature(w io.Writer) error {
	_, err := io.WriteString(w, Signature)
	return err
}

// ReadSignature consumes exactly SignatureSize bytes from r and checks them
// against Signature. A short read is reported as ErrSignatureMismatch.
func ReadSignature(r io.Reader) error {
	var buf [SignatureSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return &artype.FormatError{Err: fmt.Errorf("%w: short read", artype.ErrSignatureMismatch)}
		}
		return fmt.Errorf("read signature: %w", err)
	}
	if string(buf[:]) != Signature {
		return &artype.FormatError{Err: fmt.Errorf("%w: %q", artype.ErrSignatureMismatch, buf[:])}
	}
	return nil
}
