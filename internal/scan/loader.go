package scan

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gapsense-data/gapscan.report/internal/fsutil"
	"github.com/gapsense-data/gapscan.report/internal/timeutil"
)

// LoadResult is the explicit outcome of one load: either a parsed,
// summarised dataset or a failure reason. It is the unit the Store holds.
type LoadResult struct {
	Path     string
	Records  []Record
	Summary  Summary
	LoadedAt time.Time
	Err      error
}

// OK reports whether the load succeeded.
func (r LoadResult) OK() bool { return r.Err == nil }

// Loader reads a scan file and runs the normalize + summarize stages.
type Loader struct {
	FS    fsutil.FileSystem
	Comma rune
	// Clock stamps LoadedAt; nil selects the real clock.
	Clock timeutil.Clock
}

// NewLoader returns a Loader over the real filesystem with the default
// delimiter.
func NewLoader() *Loader {
	return &Loader{FS: fsutil.OSFileSystem{}, Comma: DefaultComma, Clock: timeutil.RealClock{}}
}

// Load performs one whole-file read followed by the synchronous parse and
// summarize stages. The only failure mode is a load failure: an unreadable
// file, a catastrophic parse error, or a cancelled context. A failed
// result carries no partial records.
func (l *Loader) Load(ctx context.Context, path string) LoadResult {
	clock := l.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	res := LoadResult{Path: path, LoadedAt: clock.Now()}

	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		return res
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		return res
	}

	// The read may have suspended; re-check before the parse stage. Once
	// parsing starts it runs to completion.
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		return res
	}

	comma := l.Comma
	if comma == 0 {
		comma = DefaultComma
	}
	records, err := NormalizeReader(bytes.NewReader(data), comma)
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", path, err)
		return res
	}

	res.Records = records
	res.Summary = Summarize(records)
	return res
}
