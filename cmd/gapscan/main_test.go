package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOutputPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		file  string
		want  string
	}{
		{
			name:  "figure numbered title",
			title: "Figure 4a: Gap Detection in Controlled Setting",
			file:  "gap_scan_20241122_192025.csv",
			want:  "Figure 4a_gap_scan_20241122_192025",
		},
		{
			name:  "title without figure number",
			title: "ad-hoc scan",
			file:  "gap_scan_20241122_194117.csv",
			want:  "gap_scan_20241122_194117",
		},
		{
			name:  "empty title",
			title: "",
			file:  "scans/gap_scan.csv",
			want:  "gap_scan",
		},
		{
			name:  "leading colon",
			title: ": odd",
			file:  "scan.csv",
			want:  "scan",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, outputPrefix(tc.title, tc.file))
		})
	}
}

func TestMakeOutputDir(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 11, 22, 19, 20, 25, 0, time.UTC)
	got := makeOutputDir("out", at)
	assert.Equal(t, filepath.Join("out", "analysis_results_20241122_1920"), got)
}

func TestExperimentTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gap_scan_20241122_192025", experimentTitle("data/gap_scan_20241122_192025.csv"))
}
