package cep

import (
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Searcher menjalankan binary search atas satu Source berisi AddressRecord
// yang sudah terurut berdasarkan cep.
//
// Satu-satunya state adalah statistik; tidak ada state pencarian yang tersisa
// di antara pemanggilan. Karena setiap probe memakai ReadAt, Searcher aman
// dipakai beberapa goroutine sekaligus.
type Searcher struct {
	src     Source
	options Options
	logger  *zap.Logger
	bufPool *sync.Pool

	warnOnce sync.Once

	statLookups  uint64
	statFound    uint64
	statNotFound uint64
	statFailures uint64
	statProbes   uint64
}

// NewSearcher membuat Searcher dengan opsi default (lihat DefaultOptions).
func NewSearcher(src Source) *Searcher {
	return NewSearcherWithOptions(src, DefaultOptions())
}

// NewSearcherWithOptions membuat Searcher dengan opsi kustom.
func NewSearcherWithOptions(src Source, opts Options) *Searcher {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Searcher{
		src:     src,
		options: opts,
		logger:  logger,
		bufPool: newBufPool(opts.BufferPoolSize),
	}
}

// Find looks up key. A miss returns found == false and a nil error.
func (s *Searcher) Find(key string) (AddressRecord, bool, error) {
	atomic.AddUint64(&s.statLookups, 1)

	rec, found, err := s.find(key)
	switch {
	case err != nil:
		atomic.AddUint64(&s.statFailures, 1)
		s.logger.Warn("cep lookup failed", zap.String("key", key), zap.Error(err))
	case found:
		atomic.AddUint64(&s.statFound, 1)
	default:
		atomic.AddUint64(&s.statNotFound, 1)
		s.logger.Debug("cep not found", zap.String("key", key))
	}
	return rec, found, err
}

func (s *Searcher) find(key string) (AddressRecord, bool, error) {
	size := s.src.Size()
	if rem := size % RecordSize; rem != 0 {
		if s.options.StrictLength {
			return AddressRecord{}, false, errors.Wrapf(ErrTrailingBytes,
				"size %d leaves %d trailing bytes", size, rem)
		}
		s.warnOnce.Do(func() {
			s.logger.Warn("ignoring trailing partial record",
				zap.Int64("size", size),
				zap.Int64("trailingBytes", rem),
				zap.Int64("records", size/RecordSize))
		})
	}

	buf := s.getBufFromPool()
	defer s.returnBufToPool(buf)

	p := prober{
		buf: buf,
		onProbe: func(index int64, rec *AddressRecord, cmp int) {
			atomic.AddUint64(&s.statProbes, 1)
			if ce := s.logger.Check(zap.DebugLevel, "probe"); ce != nil {
				ce.Write(
					zap.String("key", key),
					zap.Int64("index", index),
					zap.String("cep", rec.CEP()),
					zap.Int("cmp", cmp))
			}
		},
	}
	return p.find(s.src, size, key)
}
