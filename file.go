package cep

import (
	"os"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

// FileSource membaca record langsung dari satu file di disk.
//
// Apabila opsi UseMmap aktif, field mmap berisi hasil unix.Mmap (read-only)
// sehingga setiap probe cukup menyalin memori tanpa syscall I/O. File kosong
// tidak pernah di-mmap.
type FileSource struct {
	file   *os.File     // descriptor file fisik
	mmap   []byte       // region memory-map (nil bila mmap dimatikan)
	lock   *flock.Flock // shared lock (nil bila Lock dimatikan)
	path   string       // path file pada disk
	size   int64        // panjang file saat dibuka
	closed atomic.Bool
}

// OpenFile membuka file record untuk dibaca.
func OpenFile(path string, opts FileOptions) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gagal membuka %s", path)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "gagal stat %s", path)
	}

	s := &FileSource{file: f, path: path, size: st.Size()}

	if opts.Lock {
		lk := flock.New(path)
		ok, err := lk.TryRLock()
		if err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "gagal mengunci %s", path)
		}
		if !ok {
			f.Close()
			return nil, errors.Wrapf(ErrStoreLocked, "%s", path)
		}
		s.lock = lk
	}

	if opts.UseMmap && s.size > 0 {
		m, err := unix.Mmap(int(f.Fd()), 0, int(s.size), unix.PROT_READ, unix.MAP_SHARED)
		if err != nil {
			_ = s.release()
			return nil, errors.Wrapf(err, "gagal mmap %s", path)
		}
		s.mmap = m
	}
	return s, nil
}

// Size returns the file length captured at open time.
func (s *FileSource) Size() int64 { return s.size }

// Path returns the file path on disk.
func (s *FileSource) Path() string { return s.path }

// Mapped reports whether reads are served from a memory map.
func (s *FileSource) Mapped() bool { return s.mmap != nil }

func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	if s.closed.Load() {
		return 0, ErrSourceClosed
	}
	if s.mmap != nil {
		return readAtBytes(s.mmap, p, off)
	}
	return s.file.ReadAt(p, off)
}
