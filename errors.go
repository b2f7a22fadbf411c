package cep

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidKeyLength is returned when a search key is not exactly
	// KeyLength bytes long. No read is performed.
	ErrInvalidKeyLength = errors.New("cep: key must be exactly 8 bytes")

	// ErrIO marks a failed or short probe read. The store is corrupt or
	// truncated; this is never reported as a miss.
	ErrIO = errors.New("cep: probe read failed")

	// ErrTrailingBytes is returned in strict mode when the store length is not
	// a multiple of RecordSize.
	ErrTrailingBytes = errors.New("cep: store length is not a multiple of the record size")

	ErrInvalidRecordSize = errors.New("cep: invalid record size")
	ErrStoreLocked       = errors.New("cep: store is locked by another process")
	ErrSourceClosed      = errors.New("cep: source is closed")
)

// ProbeError reports a failed probe read. It matches ErrIO and unwraps to
// the underlying read error, if any.
type ProbeError struct {
	Index  int64 // record index being probed
	Offset int64 // byte offset of that record
	Got    int   // bytes actually read
	Err    error // cause; nil for a short read without error
}

func (e *ProbeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: short read of record %d at offset %d: got %d of %d bytes",
			ErrIO, e.Index, e.Offset, e.Got, RecordSize)
	}
	return fmt.Sprintf("%v: record %d at offset %d: %v", ErrIO, e.Index, e.Offset, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

func (e *ProbeError) Is(target error) bool { return target == ErrIO }
