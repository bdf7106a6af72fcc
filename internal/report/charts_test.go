package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gapsense-data/gapscan.report/internal/scan"
)

func sampleRecords(t *testing.T) []scan.Record {
	t.Helper()
	records, err := scan.Normalize(
		"angle,confidence,precision,recall,f1_score,filtered_distance,is_gap\n" +
			"10,0.9,0.95,0.92,0.93,1.2,false\n" +
			"11,,0.90,0.88,0.89,5.6,true\n" +
			"12,0.7,0.85,0.80,0.82,2.0,false\n")
	require.NoError(t, err)
	return records
}

func TestRenderReportPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderReportPage(&buf, "gap_scan_20241122_192025", sampleRecords(t))
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Detection Performance Over Time")
	assert.Contains(t, html, "Confidence and Distance Analysis")
	assert.Contains(t, html, "precision")
	assert.Contains(t, html, "recall")
	assert.Contains(t, html, "f1_score")
	assert.Contains(t, html, "confidence")
	assert.Contains(t, html, "filtered_distance")
}

func TestRenderReportPageEmptyDataset(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := RenderReportPage(&buf, "empty", nil)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestLineSeriesGaps(t *testing.T) {
	t.Parallel()

	records := sampleRecords(t)
	data := lineSeries(records, scan.FieldConfidence)
	require.Len(t, data, 3)

	assert.Equal(t, 0.9, data[0].Value)
	assert.Nil(t, data[1].Value, "NaN confidence must become a null point, not zero")
	assert.Equal(t, 0.7, data[2].Value)
}

func TestAngleAxisOrderAndNaN(t *testing.T) {
	t.Parallel()

	records := []scan.Record{
		{Angle: 12},
		{Angle: math.NaN()},
		{Angle: 10.5},
	}
	assert.Equal(t, []string{"12", "", "10.5"}, angleAxis(records))
}
