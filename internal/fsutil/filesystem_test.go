package fsutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystemReadWrite(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()

	require.NoError(t, m.WriteFile("scans/gap_scan_1.csv", []byte("angle,confidence\n10,0.9\n"), 0644))

	data, err := m.ReadFile("scans/gap_scan_1.csv")
	require.NoError(t, err)
	assert.Equal(t, "angle,confidence\n10,0.9\n", string(data))

	// Reads return a copy; mutating it must not affect the stored file.
	data[0] = 'X'
	again, err := m.ReadFile("scans/gap_scan_1.csv")
	require.NoError(t, err)
	assert.Equal(t, byte('a'), again[0])
}

func TestMemoryFileSystemMissingFile(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()

	_, err := m.ReadFile("nope.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.Stat("nope.csv")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.False(t, m.Exists("nope.csv"))
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.MkdirAll("out/analysis_results_20260829_1200", 0755))

	assert.True(t, m.Exists("out"))
	assert.True(t, m.Exists("out/analysis_results_20260829_1200"))

	info, err := m.Stat("out/analysis_results_20260829_1200")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMemoryFileSystemStat(t *testing.T) {
	t.Parallel()

	m := NewMemoryFileSystem()
	require.NoError(t, m.WriteFile("report.md", []byte("# report"), 0600))

	info, err := m.Stat("report.md")
	require.NoError(t, err)
	assert.Equal(t, "report.md", info.Name())
	assert.Equal(t, int64(8), info.Size())
	assert.False(t, info.IsDir())
}
