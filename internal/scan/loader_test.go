package scan

import (
	"context"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapsense-data/gapscan.report/internal/fsutil"
	"github.com/gapsense-data/gapscan.report/internal/timeutil"
)

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	mem := fsutil.NewMemoryFileSystem()
	require.NoError(t, mem.WriteFile("gap_scan_20241122_192025.csv",
		[]byte("angle,confidence,precision,recall,f1_score,filtered_distance,is_gap\n"+
			"10,0.9,0.95,0.92,0.93,1.2,false\n"+
			"11,0.4,0.90,0.88,0.89,5.6,true\n"), 0644))

	at := time.Date(2024, 11, 22, 19, 20, 25, 0, time.UTC)
	l := &Loader{FS: mem, Comma: DefaultComma, Clock: timeutil.NewMockClock(at)}
	res := l.Load(context.Background(), "gap_scan_20241122_192025.csv")

	require.True(t, res.OK(), "load error: %v", res.Err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Summary.TotalScans)
	assert.Equal(t, 1, res.Summary.GapsDetected)
	assert.Equal(t, 10.0, res.Records[0].Angle)
	assert.Equal(t, 5.6, res.Records[1].Float(FieldFilteredDistance))
	assert.Equal(t, at, res.LoadedAt)
}

func TestLoaderMissingFile(t *testing.T) {
	t.Parallel()

	l := &Loader{FS: fsutil.NewMemoryFileSystem()}
	res := l.Load(context.Background(), "missing.csv")

	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, fs.ErrNotExist)
	assert.Empty(t, res.Records, "failed load carries no partial records")
}

func TestLoaderCancelledContext(t *testing.T) {
	t.Parallel()

	mem := fsutil.NewMemoryFileSystem()
	require.NoError(t, mem.WriteFile("scan.csv", []byte("angle\n1\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Loader{FS: mem}
	res := l.Load(ctx, "scan.csv")
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.Empty(t, res.Records)
}
