package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapsense-data/gapscan.report/internal/scan"
)

func TestWriteComparison(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteComparison(&buf, Comparison{
		RunID: "0b6f2d1e-run",
		Summary: scan.Summary{
			TotalScans:    120,
			GapsDetected:  14,
			AvgConfidence: 0.871,
			MeanPrecision: 0.952,
			MeanRecall:    0.918,
			MeanF1:        0.934,
		},
		Competitors: []Competitor{
			{Name: "UltraScan-X", Precision: 0.91, Recall: 0.88, F1: 0.895, AvgConfidence: 0.8},
		},
	})
	require.NoError(t, err)

	md := buf.String()
	assert.Contains(t, md, "# Gap Detection Performance Comparison")
	assert.Contains(t, md, "Run `0b6f2d1e-run` | Total Scans: 120 | Gaps Detected: 14 | Avg Confidence: 0.871")
	assert.Contains(t, md, "| This work | 0.952 | 0.918 | 0.934 | 0.871 |")
	assert.Contains(t, md, "| UltraScan-X | 0.910 | 0.880 | 0.895 | 0.800 |")

	// Header row precedes data rows.
	lines := strings.Split(strings.TrimSpace(md), "\n")
	require.GreaterOrEqual(t, len(lines), 6)
	assert.Equal(t, "| System | Precision | Recall | F1 | Avg Confidence |", lines[4])
}

func TestWriteComparisonNaNMetrics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteComparison(&buf, Comparison{
		RunID:       "run-2",
		SystemLabel: "prototype",
		Summary: scan.Summary{
			TotalScans:    3,
			AvgConfidence: math.NaN(),
			MeanPrecision: math.NaN(),
			MeanRecall:    math.NaN(),
			MeanF1:        math.NaN(),
		},
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "| prototype | n/a | n/a | n/a | n/a |")
}
