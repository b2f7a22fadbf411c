package cep

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardedSourceReadAtStitchesShards(t *testing.T) {
	data := []byte("abcdefghijklmnopqrstuvwxyz")
	src := NewShardedSource(
		NewBytesSource(data[:5]),
		NewBytesSource(nil),
		NewBytesSource(data[5:12]),
		NewBytesSource(data[12:]),
	)
	defer src.Close()
	assert.Equal(t, int64(len(data)), src.Size())
	assert.Equal(t, 4, src.ShardCount())

	for off := 0; off < len(data); off++ {
		for n := 1; off+n <= len(data); n++ {
			buf := make([]byte, n)
			got, err := src.ReadAt(buf, int64(off))
			require.NoError(t, err, "off=%d n=%d", off, n)
			assert.Equal(t, n, got)
			assert.Equal(t, data[off:off+n], buf)
		}
	}

	buf := make([]byte, 10)
	n, err := src.ReadAt(buf, 20)
	assert.Equal(t, 6, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, data[20:], buf[:n])

	_, err = src.ReadAt(buf, int64(len(data)))
	assert.ErrorIs(t, err, io.EOF)

	_, err = src.ReadAt(buf, -1)
	assert.Error(t, err)
}

func TestOpenShardsFind(t *testing.T) {
	ceps := randomCEPs(newTestRand(), 50)
	data := buildStore(t, ceps...)

	// cut points deliberately split records across files
	cuts := []int{0, 7*RecordSize + 13, 20 * RecordSize, 33*RecordSize + 299, len(data)}
	dir := t.TempDir()
	var paths []string
	for i := 0; i+1 < len(cuts); i++ {
		p := filepath.Join(dir, "cep.dat."+string(rune('0'+i)))
		paths = append(paths, writeFileAt(t, p, data[cuts[i]:cuts[i+1]]))
	}

	for _, useMmap := range []bool{false, true} {
		src, err := OpenShards(paths, FileOptions{UseMmap: useMmap})
		require.NoError(t, err)
		assert.Equal(t, int64(len(data)), src.Size())

		s := NewSearcher(src)
		for _, c := range ceps {
			rec, found, err := s.Find(c)
			require.NoError(t, err)
			require.True(t, found, c)
			assert.Equal(t, c, rec.CEP())
		}
		require.NoError(t, src.Close())
		assert.ErrorIs(t, src.Close(), ErrSourceClosed)
	}
}

func TestOpenShardsFailureClosesOpened(t *testing.T) {
	dir := t.TempDir()
	good := writeFileAt(t, filepath.Join(dir, "cep.0"), buildStore(t, "01000000"))

	_, err := OpenShards([]string{good, filepath.Join(dir, "missing")}, FileOptions{Lock: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shard 1")

	// the first shard released its shared lock
	writer := flock.New(good)
	locked, err := writer.TryLock()
	require.NoError(t, err)
	assert.True(t, locked)
	require.NoError(t, writer.Unlock())

	_, err = OpenShards(nil, DefaultFileOptions())
	assert.Error(t, err)
}

func TestShardedSourceShortShard(t *testing.T) {
	data := buildStore(t, "01000000", "02000000")
	// shard claims more bytes than it can deliver
	lying := &countingSource{
		countingReader: &countingReader{r: bytes.NewReader(data[:RecordSize])},
		size:           int64(len(data)),
	}
	_, _, err := Find(NewShardedSource(lying), int64(len(data)), "02000000")
	assert.ErrorIs(t, err, ErrIO)
}
