package cep

import (
	"io"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Source adalah store record yang bisa dibaca secara acak dengan panjang
// total yang diketahui tanpa membaca seluruh isinya.
type Source interface {
	io.ReaderAt
	io.Closer
	// Size returns the total length of the store in bytes.
	Size() int64
}

// BytesSource serves records from memory.
type BytesSource struct {
	data   []byte
	closed atomic.Bool
}

// NewBytesSource wraps data without copying it.
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

func (b *BytesSource) Size() int64 { return int64(len(b.data)) }

func (b *BytesSource) ReadAt(p []byte, off int64) (int, error) {
	if b.closed.Load() {
		return 0, ErrSourceClosed
	}
	return readAtBytes(b.data, p, off)
}

func (b *BytesSource) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return ErrSourceClosed
	}
	return nil
}

// readAtBytes implements io.ReaderAt semantics over an in-memory slice. It is
// shared by the memory and mmap sources.
func readAtBytes(data, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errors.Newf("negative offset %d", off)
	}
	if off >= int64(len(data)) {
		return 0, io.EOF
	}
	n := copy(p, data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
