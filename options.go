package cep

import "go.uber.org/zap"

// Options menyediakan opsi konfigurasi untuk Searcher.
//
//   - StrictLength:   tolak store yang panjangnya bukan kelipatan RecordSize
//   - BufferPoolSize: aktifkan pool buffer probe (0 = nonaktif)
//   - Logger:         logger zap; nil berarti zap.NewNop()
//
// Lihat DefaultOptions() untuk nilai bawaan.
type Options struct {
	StrictLength   bool        // Error bila ada sisa byte setelah record terakhir
	BufferPoolSize int         // >0 = reuse buffer probe lewat sync.Pool
	Logger         *zap.Logger // Log per probe di level debug
}

// DefaultOptions mengembalikan konfigurasi default yang digunakan NewSearcher.
// Sisa byte di akhir store diabaikan secara diam-diam (hanya warning di log).
func DefaultOptions() Options {
	return Options{
		StrictLength:   false,
		BufferPoolSize: 16,
	}
}

// FileOptions controls how OpenFile and OpenShards access the disk.
type FileOptions struct {
	UseMmap bool // map the file read-only instead of issuing pread per probe
	Lock    bool // hold a shared flock while the source is open
}

// DefaultFileOptions mirrors the previous cache defaults: mmap on, no locking.
func DefaultFileOptions() FileOptions {
	return FileOptions{UseMmap: true}
}
