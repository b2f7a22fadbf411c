package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cep "github.com/luhtfiimanal/go-cep-archive"
)

func writeStore(t *testing.T, recs ...cep.AddressRecord) string {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range recs {
		b, err := r.MarshalBinary()
		require.NoError(t, err)
		buf.Write(b)
	}
	path := filepath.Join(t.TempDir(), "cep_ordenado.dat")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testStore(t *testing.T) string {
	return writeStore(t,
		cep.NewAddressRecord("Praça da Sé", "Sé", "São Paulo", "São Paulo", "SP", "01001000"),
		cep.NewAddressRecord("Avenida Paulista", "Bela Vista", "São Paulo", "São Paulo", "SP", "01310100"),
		cep.NewAddressRecord("Avenida Atlântica", "Copacabana", "Rio de Janeiro", "Rio de Janeiro", "RJ", "22021001"),
	)
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run("cepsearch", args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFound(t *testing.T) {
	path := testStore(t)

	code, stdout, stderr := runCLI("-data", path, "01310100")
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "\nAvenida Paulista\nBela Vista\nSão Paulo\nSão Paulo\nSP\n01310100\n", stdout)
}

func TestRunNotFound(t *testing.T) {
	path := testStore(t)

	code, stdout, stderr := runCLI("-data", path, "99999999")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "address not found")
}

func TestRunExitCodes(t *testing.T) {
	path := testStore(t)
	missing := filepath.Join(t.TempDir(), "missing.dat")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no argument", []string{"-data", path}, exitArgError},
		{"two arguments", []string{"-data", path, "01001000", "01310100"}, exitArgError},
		{"unknown flag", []string{"-verbose", "01001000"}, exitArgError},
		{"short cep", []string{"-data", path, "0100100"}, exitCEPFormatError},
		{"long cep", []string{"-data", path, "010010000"}, exitCEPFormatError},
		{"missing file", []string{"-data", missing, "01001000"}, exitFileNotFound},
		{"missing config", []string{"-config", missing, "01001000"}, exitArgError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, _, _ := runCLI(test.args...)
			assert.Equal(t, test.want, code)
		})
	}
}

func TestRunCEPLengthCheckedBeforeOpen(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.dat")
	code, _, _ := runCLI("-data", missing, "123")
	assert.Equal(t, exitCEPFormatError, code)
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	all := testStore(t)
	data, err := os.ReadFile(all)
	require.NoError(t, err)

	// split the store in the middle of the second record
	cut := cep.RecordSize + 100
	first := filepath.Join(dir, "cep.0")
	second := filepath.Join(dir, "cep.1")
	require.NoError(t, os.WriteFile(first, data[:cut], 0o644))
	require.NoError(t, os.WriteFile(second, data[cut:], 0o644))

	cfgPath := filepath.Join(dir, "cepsearch.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
data:
  source: shards
  shards:
    - `+first+`
    - `+second+`
  lock: true
log:
  level: error
`), 0o644))

	code, stdout, stderr := runCLI("-config", cfgPath, "01310100")
	assert.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Avenida Paulista\n")
}

func TestRunStrictLengthReadError(t *testing.T) {
	path := testStore(t)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte{'x'})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	code, _, _ := runCLI("-data", path, "01001000")
	assert.Equal(t, exitOK, code)

	cfgPath := filepath.Join(t.TempDir(), "strict.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data:\n  strictLength: true\nlog:\n  level: error\n"), 0o644))
	code, _, stderr := runCLI("-config", cfgPath, "-data", path, "01001000")
	assert.Equal(t, exitReadError, code)
	assert.Contains(t, stderr, "search failed")
}
