package cep

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Close menutup semua sumber daya (mmap, lock & file) milik source.
func (s *FileSource) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSourceClosed
	}
	return s.release()
}

func (s *FileSource) release() error {
	var err error
	if s.mmap != nil {
		if e := unix.Munmap(s.mmap); e != nil {
			err = errors.CombineErrors(err, errors.Wrapf(e, "gagal unmap %s", s.path))
		}
		s.mmap = nil
	}
	if s.lock != nil {
		if e := s.lock.Unlock(); e != nil {
			err = errors.CombineErrors(err, errors.Wrapf(e, "gagal unlock %s", s.path))
		}
	}
	if e := s.file.Close(); e != nil {
		err = errors.CombineErrors(err, errors.Wrapf(e, "gagal menutup %s", s.path))
	}
	return err
}

// Close menutup semua shard. Error pertama dikembalikan, sisanya digabung
// sebagai secondary error.
func (s *ShardedSource) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSourceClosed
	}
	return closeAll(s.shards)
}

func closeAll(shards []*shard) error {
	var firstErr error
	for i, sh := range shards {
		if err := sh.src.Close(); err != nil {
			firstErr = errors.CombineErrors(firstErr, errors.Wrapf(err, "gagal menutup shard %d", i))
		}
	}
	return firstErr
}
