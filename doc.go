// Package cep looks up fixed-width postal-address records by CEP inside a
// large file sorted by CEP, using binary search over direct-addressed
// 300-byte blocks. The file is never loaded as a whole; each probe is one
// positioned read of a single record.
//
// The library is organised into several files for clarity:
//
//	record.go       – record layout, decode & encode
//	search.go       – Find, the probe loop
//	searcher.go     – Searcher: options, stats & logging around Find
//	options.go      – configuration structs & defaults
//	source.go       – Source interface & in-memory source
//	file.go         – file source with optional mmap & flock
//	shard.go        – one logical store over several files
//	shard_lookup.go – helper to locate a shard for an offset
//	object.go       – S3-compatible object source (minio)
//	buffer.go       – pooled probe buffers
//	stats.go        – lightweight stats accessors
//	close.go        – close helpers
//
// The file must already be sorted ascending by CEP; this package never writes
// to it.
package cep
