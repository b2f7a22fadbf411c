package cep

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildStore encodes one record per cep, in the given order.
func buildStore(t testing.TB, ceps ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	for i, c := range ceps {
		rec := NewAddressRecord(
			fmt.Sprintf("Rua %d", i),
			fmt.Sprintf("Bairro %d", i),
			"Cidade",
			"Estado",
			"UF",
			c,
		)
		b, err := rec.MarshalBinary()
		require.NoError(t, err)
		buf.Write(b)
	}
	return buf.Bytes()
}

// randomCEPs returns n distinct sorted 8-digit keys.
func randomCEPs(rng *rand.Rand, n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		c := fmt.Sprintf("%08d", rng.Intn(100000000))
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func newTestRand() *rand.Rand { return rand.New(rand.NewSource(7)) }

// countingReader records every probe issued against the wrapped reader.
type countingReader struct {
	r io.ReaderAt

	mu      sync.Mutex
	reads   int
	maxEnd  int64
	offsets []int64
}

func (c *countingReader) ReadAt(p []byte, off int64) (int, error) {
	c.mu.Lock()
	c.reads++
	c.offsets = append(c.offsets, off)
	if end := off + int64(len(p)); end > c.maxEnd {
		c.maxEnd = end
	}
	c.mu.Unlock()
	return c.r.ReadAt(p, off)
}

// countingSource adapts countingReader to Source.
type countingSource struct {
	*countingReader
	size int64
}

func newCountingSource(data []byte) *countingSource {
	return &countingSource{
		countingReader: &countingReader{r: bytes.NewReader(data)},
		size:           int64(len(data)),
	}
}

func (c *countingSource) Size() int64  { return c.size }
func (c *countingSource) Close() error { return nil }

// readerFunc lets a test script ReadAt results.
type readerFunc func(p []byte, off int64) (int, error)

func (f readerFunc) ReadAt(p []byte, off int64) (int, error) { return f(p, off) }
