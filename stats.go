package cep

import "sync/atomic"

// Stats menyimpan statistik pencarian.
// HitRatio dalam persentase (0-100) dari pencarian yang selesai tanpa error.
type Stats struct {
	Lookups  uint64
	Found    uint64
	NotFound uint64
	Failures uint64
	Probes   uint64
	HitRatio float64
}

// GetStats mengambil snapshot statistik tanpa lock.
func (s *Searcher) GetStats() Stats {
	found := atomic.LoadUint64(&s.statFound)
	notFound := atomic.LoadUint64(&s.statNotFound)
	total := found + notFound
	ratio := 0.0
	if total > 0 {
		ratio = float64(found) / float64(total) * 100.0
	}
	return Stats{
		Lookups:  atomic.LoadUint64(&s.statLookups),
		Found:    found,
		NotFound: notFound,
		Failures: atomic.LoadUint64(&s.statFailures),
		Probes:   atomic.LoadUint64(&s.statProbes),
		HitRatio: ratio,
	}
}

// ResetStats mengatur ulang semua penghitung.
func (s *Searcher) ResetStats() {
	atomic.StoreUint64(&s.statLookups, 0)
	atomic.StoreUint64(&s.statFound, 0)
	atomic.StoreUint64(&s.statNotFound, 0)
	atomic.StoreUint64(&s.statFailures, 0)
	atomic.StoreUint64(&s.statProbes, 0)
}

// RecordCount mengembalikan jumlah record utuh yang terlihat oleh pencarian.
func (s *Searcher) RecordCount() int64 { return lastIndex(s.src.Size()) + 1 }
