// Package blockcache serves small reads from a random-access source out of
// fixed-size cached blocks.
//
// Indexing an archive issues one 60-byte read per header. Over a remote
// source each of those is a round trip; reading whole blocks instead turns a
// scan of many small members into a handful of requests.
package blockcache

import (
	"errors"
	"fmt"
	"io"
)

// DefaultBlockSize is the default block size.
const DefaultBlockSize int64 = 64 << 10

// DefaultMaxBlocks is the default number of blocks kept in memory.
const DefaultMaxBlocks = 64

// DefaultMaxBlocksPerRead caps cached blocks per ReadAt to avoid caching
// large sequential reads such as member payloads.
const DefaultMaxBlocksPerRead = 4

// Reader caches reads from a source in fixed-size blocks.
// It is not safe for concurrent use.
type Reader struct {
	src              io.ReaderAt
	size             int64
	blockSize        int64
	maxBlocks        int
	maxBlocksPerRead int

	blocks map[int64][]byte
	order  []int64 // insertion order, oldest first
}

// Option configures a Reader.
type Option func(*Reader)

// WithBlockSize sets the block size used for caching.
func WithBlockSize(n int64) Option {
	return func(r *Reader) {
		r.blockSize = n
	}
}

// WithMaxBlocks sets how many blocks are kept; the oldest block is evicted
// first.
func WithMaxBlocks(n int) Option {
	return func(r *Reader) {
		r.maxBlocks = n
	}
}

// WithMaxBlocksPerRead bypasses caching when a ReadAt spans more than n blocks.
// Values <= 0 disable the limit.
func WithMaxBlocksPerRead(n int) Option {
	return func(r *Reader) {
		r.maxBlocksPerRead = n
	}
}

// New wraps src, which holds size bytes.
func New(src io.ReaderAt, size int64, opts ...Option) (*Reader, error) {
	if src == nil {
		return nil, errors.New("block cache: source is nil")
	}
	r := &Reader{
		src:              src,
		size:             size,
		blockSize:        DefaultBlockSize,
		maxBlocks:        DefaultMaxBlocks,
		maxBlocksPerRead: DefaultMaxBlocksPerRead,
		blocks:           make(map[int64][]byte),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.blockSize <= 0 {
		return nil, errors.New("block cache: block size must be > 0")
	}
	if r.maxBlocks <= 0 {
		return nil, errors.New("block cache: max blocks must be > 0")
	}
	return r, nil
}

// Size returns the size of the wrapped source.
func (r *Reader) Size() int64 {
	return r.size
}

// ReadAt implements io.ReaderAt.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if off < 0 {
		return 0, fmt.Errorf("read at %d: negative offset", off)
	}
	if off >= r.size {
		return 0, io.EOF
	}

	expected := int64(len(p))
	if off+expected > r.size {
		expected = r.size - off
	}

	startBlock := off / r.blockSize
	endBlock := (off + expected - 1) / r.blockSize
	if r.maxBlocksPerRead > 0 && endBlock-startBlock+1 > int64(r.maxBlocksPerRead) {
		return r.src.ReadAt(p, off)
	}

	var n int64
	for blockIndex := startBlock; blockIndex <= endBlock; blockIndex++ {
		blockStart := blockIndex * r.blockSize
		blockEnd := min(blockStart+r.blockSize, r.size)

		data, err := r.block(blockIndex, blockStart, blockEnd-blockStart)
		if err != nil {
			return int(n), err
		}

		copyStart := max(off, blockStart)
		copyEnd := min(off+expected, blockEnd)
		n += int64(copy(p[copyStart-off:copyEnd-off], data[copyStart-blockStart:copyEnd-blockStart]))
	}

	if expected < int64(len(p)) {
		return int(n), io.EOF
	}
	return int(n), nil
}

func (r *Reader) block(index, start, length int64) ([]byte, error) {
	if data, ok := r.blocks[index]; ok {
		return data, nil
	}
	buf := make([]byte, length)
	n, err := r.src.ReadAt(buf, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if int64(n) != length {
		return nil, io.ErrUnexpectedEOF
	}

	if len(r.order) >= r.maxBlocks {
		delete(r.blocks, r.order[0])
		r.order = r.order[1:]
	}
	r.blocks[index] = buf
	r.order = append(r.order, index)
	return buf, nil
}
