package header

import (
	"errors"
	"fmt"
	"io"

	"github.com/meigma/ar/internal/artype"
	"github.com/meigma/ar/internal/field"
)

// Field widths, in header order.
const (
	NameSize      = 16
	TimestampSize = 12
	OwnerSize     = 6
	GroupSize     = 6
	ModeSize      = 8
	SizeSize      = 10
	EndSize       = 2

	// Size is the total length of an encoded header.
	Size = NameSize + TimestampSize + OwnerSize + GroupSize + ModeSize + SizeSize + EndSize
)

// EndMarker terminates every header.
const EndMarker = "`\n"

// PadByte follows every odd-length payload.
const PadByte byte = '\n'

// placeholder is written to the timestamp, owner and group fields.
const placeholder = "0"

// Header is one decoded member header. Text fields keep their padding so
// that Encode reproduces the original bytes.
type Header struct {
	Name      string
	Timestamp string
	Owner     string
	Group     string
	Mode      string
	Size      int64
}

// New builds the header for a member called name with the given mode and
// payload size. Timestamp, owner and group are written as "0".
// It fails with ErrFieldOverflow if any value does not fit its field.
func New(name string, mode uint32, size int64) (Header, error) {
	var buf [Size]byte
	if err := build(buf[:], name, mode, size); err != nil {
		return Header{}, err
	}
	return parse(buf[:])
}

// Encode returns the 60-byte wire form of h.
func (h *Header) Encode() ([Size]byte, error) {
	var buf [Size]byte
	s := slicer(buf[:])
	if err := field.Put(s.next(NameSize), h.Name); err != nil {
		return buf, fmt.Errorf("name: %w", err)
	}
	if err := field.Put(s.next(TimestampSize), h.Timestamp); err != nil {
		return buf, fmt.Errorf("timestamp: %w", err)
	}
	if err := field.Put(s.next(OwnerSize), h.Owner); err != nil {
		return buf, fmt.Errorf("owner: %w", err)
	}
	if err := field.Put(s.next(GroupSize), h.Group); err != nil {
		return buf, fmt.Errorf("group: %w", err)
	}
	if err := field.Put(s.next(ModeSize), h.Mode); err != nil {
		return buf, fmt.Errorf("mode: %w", err)
	}
	if err := field.PutDecimal(s.next(SizeSize), h.Size); err != nil {
		return buf, fmt.Errorf("size: %w", err)
	}
	copy(s.next(EndSize), EndMarker)
	return buf, nil
}

// WriteTo encodes h and writes it to w. Nothing is written if h does not fit.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	buf, err := h.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf[:])
	return int64(n), err
}

// Decode reads one header from r.
//
// If fewer than Size bytes are available, including none at all, Decode
// returns ErrNoMoreEntries. A wrong end marker yields ErrEndMarkerMismatch and
// an unparsable size yields ErrSizeUnparsable.
func Decode(r io.Reader) (Header, error) {
	var buf [Size]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, artype.ErrNoMoreEntries
		}
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	return parse(buf[:])
}

// Pad returns the number of pad bytes that follow a payload of size bytes.
func Pad(size int64) int64 {
	return size % 2
}

func parse(buf []byte) (Header, error) {
	s := slicer(buf)
	h := Header{
		Name:      string(s.next(NameSize)),
		Timestamp: string(s.next(TimestampSize)),
		Owner:     string(s.next(OwnerSize)),
		Group:     string(s.next(GroupSize)),
		Mode:      string(s.next(ModeSize)),
	}
	sizeField := s.next(SizeSize)
	if end := s.next(EndSize); string(end) != EndMarker {
		return Header{}, fmt.Errorf("%w: got %q", artype.ErrEndMarkerMismatch, end)
	}
	size, err := field.Decimal(sizeField)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", artype.ErrSizeUnparsable, err)
	}
	h.Size = size
	return h, nil
}

func build(buf []byte, name string, mode uint32, size int64) error {
	s := slicer(buf)
	if err := field.Put(s.next(NameSize), name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	for _, width := range []int{TimestampSize, OwnerSize, GroupSize} {
		if err := field.Put(s.next(width), placeholder); err != nil {
			return err
		}
	}
	if err := field.PutOctal(s.next(ModeSize), mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if err := field.PutDecimal(s.next(SizeSize), size); err != nil {
		return fmt.Errorf("size: %w", err)
	}
	copy(s.next(EndSize), EndMarker)
	return nil
}

type slicer []byte

func (sp *slicer) next(n int) []byte {
	s := *sp
	b := s[:n:n]
	*sp = s[n:]
	return b
}
