package cep

import "io"

// findShard menentukan shard mana yang berisi offset byte tertentu.
//
// Mengembalikan pointer ke shard dan offset relatif di dalam shard, atau
// io.EOF bila offset berada di luar store.
func (s *ShardedSource) findShard(off int64) (*shard, int64, error) {
	if off >= s.size {
		return nil, 0, io.EOF
	}
	for _, sh := range s.shards {
		if off >= sh.offset && off < sh.offset+sh.size {
			return sh, off - sh.offset, nil
		}
	}
	// Seharusnya tidak terjadi.
	return nil, 0, io.ErrUnexpectedEOF
}
