package benchreport_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockjoin/engine/internal/benchreport"
)

const sampleBench = `goos: linux
goarch: amd64
pkg: github.com/blockjoin/engine/internal/join
BenchmarkBNLJ-8   	      10	 100000000 ns/op
`

func TestCompareRequiresAtLeastOneFile(t *testing.T) {
	var buf bytes.Buffer
	err := benchreport.Compare(&buf)
	require.Error(t, err)
}

func TestCompareSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "before.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleBench), 0o644))

	var buf bytes.Buffer
	require.NoError(t, benchreport.Compare(&buf, path))
	require.NotEmpty(t, buf.String())
}
