package cep

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// shard merepresentasikan satu bagian dari store yang dipecah ke beberapa file.
//
// Setiap shard memuat rentang byte berurutan. Field offset menyimpan posisi
// byte pertama shard di dalam store logis agar findShard dapat cepat
// menghitung shard yang tepat.
type shard struct {
	src    Source // file atau source lain untuk shard ini
	size   int64  // jumlah byte dalam shard
	offset int64  // offset byte shard di store logis
}

// ShardedSource menyajikan beberapa source terurut sebagai satu store logis.
// Pembacaan yang melewati batas shard disambung otomatis, sehingga record
// boleh terpotong di antara dua file.
type ShardedSource struct {
	shards []*shard
	size   int64
	closed atomic.Bool
}

// NewShardedSource menggabungkan srcs sesuai urutan. Shard kosong diabaikan
// saat pencarian, tetapi tetap ditutup oleh Close.
func NewShardedSource(srcs ...Source) *ShardedSource {
	shards := make([]*shard, len(srcs))
	var offset int64
	for i, src := range srcs {
		shards[i] = &shard{src: src, size: src.Size(), offset: offset}
		offset += shards[i].size
	}
	return &ShardedSource{
		shards: shards,
		size:   lo.SumBy(shards, func(s *shard) int64 { return s.size }),
	}
}

// OpenShards membuka setiap path dengan OpenFile lalu menggabungkannya.
// Bila salah satu gagal, shard yang sudah terbuka ditutup kembali.
func OpenShards(paths []string, opts FileOptions) (*ShardedSource, error) {
	if len(paths) == 0 {
		return nil, errors.New("cep: no shard paths given")
	}
	srcs := make([]Source, 0, len(paths))
	for i, p := range paths {
		f, err := OpenFile(p, opts)
		if err != nil {
			for _, opened := range srcs {
				opened.Close()
			}
			return nil, errors.Wrapf(err, "gagal membuka shard %d", i)
		}
		srcs = append(srcs, f)
	}
	return NewShardedSource(srcs...), nil
}

func (s *ShardedSource) Size() int64 { return s.size }

// ShardCount mengembalikan jumlah shard.
func (s *ShardedSource) ShardCount() int { return len(s.shards) }

func (s *ShardedSource) ReadAt(p []byte, off int64) (int, error) {
	if s.closed.Load() {
		return 0, ErrSourceClosed
	}
	if off < 0 {
		return 0, errors.Newf("negative offset %d", off)
	}

	var n int
	for n < len(p) {
		pos := off + int64(n)
		sh, rel, err := s.findShard(pos)
		if err != nil {
			return n, err
		}
		want := len(p) - n
		if avail := sh.size - rel; int64(want) > avail {
			want = int(avail)
		}
		m, err := sh.src.ReadAt(p[n:n+want], rel)
		n += m
		if m == want {
			continue
		}
		if err == nil {
			err = errors.Newf("short read from shard at offset %d", pos)
		}
		return n, err
	}
	return n, nil
}
