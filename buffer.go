package cep

import "sync"

func newBufPool(size int) *sync.Pool {
	if size <= 0 {
		return nil
	}
	return &sync.Pool{New: func() any { return make([]byte, RecordSize) }}
}

// getBufFromPool mengambil buffer dari pool atau membuat baru jika tidak tersedia.
// Ukuran buffer selalu RecordSize byte. Buffer dipakai eksklusif oleh satu
// pencarian; record hasil decode tidak pernah menunjuk ke buffer ini.
func (s *Searcher) getBufFromPool() []byte {
	if s.bufPool != nil {
		return s.bufPool.Get().([]byte)
	}
	return make([]byte, RecordSize)
}

// returnBufToPool mengembalikan buffer ke pool untuk digunakan kembali.
// Hanya buffer dengan ukuran tepat yang dimasukkan kembali.
func (s *Searcher) returnBufToPool(buf []byte) {
	if s.bufPool != nil && len(buf) == RecordSize {
		s.bufPool.Put(buf)
	}
}
