package cep

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
)

// Find runs a binary search for key over the first size bytes of r, which
// must hold AddressRecords sorted ascending by cep.
//
// A trailing partial record is ignored (floor division). Not found is
// reported as found == false with a nil error; a failed or short read is an
// error marked with ErrIO.
func Find(r io.ReaderAt, size int64, key string) (AddressRecord, bool, error) {
	var p prober
	return p.find(r, size, key)
}

// prober holds the per-call knobs of one search. The zero value searches with
// a fresh buffer and no hooks.
type prober struct {
	buf     []byte
	onProbe func(index int64, rec *AddressRecord, cmp int)
}

func (p *prober) find(r io.ReaderAt, size int64, key string) (AddressRecord, bool, error) {
	if len(key) != KeyLength {
		return AddressRecord{}, false, errors.Wrapf(ErrInvalidKeyLength, "got %d bytes", len(key))
	}
	k := []byte(key)

	buf := p.buf
	if len(buf) != RecordSize {
		buf = make([]byte, RecordSize)
	}

	first, last := int64(0), lastIndex(size)
	for first <= last {
		middle := (first + last) / 2
		rec, err := readRecord(r, buf, middle)
		if err != nil {
			return AddressRecord{}, false, err
		}

		cmp := bytes.Compare(k, rec.CEPRaw[:])
		if p.onProbe != nil {
			p.onProbe(middle, &rec, cmp)
		}
		switch {
		case cmp == 0:
			return rec, true, nil
		case cmp > 0:
			first = middle + 1
		default:
			last = middle - 1
		}
	}
	return AddressRecord{}, false, nil
}

// lastIndex returns the index of the last whole record, -1 for an empty store.
func lastIndex(size int64) int64 {
	if size < 0 {
		return -1
	}
	return size/RecordSize - 1
}

func readRecord(r io.ReaderAt, buf []byte, index int64) (AddressRecord, error) {
	off := index * RecordSize
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		// io.ReaderAt may return io.EOF together with a full read at the end.
		err = nil
	}
	if err != nil || n != len(buf) {
		return AddressRecord{}, &ProbeError{Index: index, Offset: off, Got: n, Err: err}
	}
	return DecodeRecord(buf)
}
