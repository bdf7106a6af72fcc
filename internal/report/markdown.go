package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/gapsense-data/gapscan.report/internal/scan"
)

// Competitor is one comparison row for an externally published system.
type Competitor struct {
	Name          string
	Precision     float64
	Recall        float64
	F1            float64
	AvgConfidence float64
}

// Comparison describes the markdown comparison document for one run.
type Comparison struct {
	Title       string
	RunID       string
	SystemLabel string
	Summary     scan.Summary
	Competitors []Competitor
}

// WriteComparison emits the comparison table as GitHub-flavoured markdown:
// a title, a metadata line mirroring the chart title block, and one table
// row per system with this run's measured metrics first.
func WriteComparison(w io.Writer, c Comparison) error {
	var sb strings.Builder

	title := c.Title
	if title == "" {
		title = "Gap Detection Performance Comparison"
	}
	label := c.SystemLabel
	if label == "" {
		label = "This work"
	}

	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Run `%s` | Total Scans: %d | Gaps Detected: %d | Avg Confidence: %s\n\n",
		c.RunID, c.Summary.TotalScans, c.Summary.GapsDetected, fmtMetric(c.Summary.AvgConfidence))

	sb.WriteString("| System | Precision | Recall | F1 | Avg Confidence |\n")
	sb.WriteString("|--------|----------:|-------:|---:|---------------:|\n")
	fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
		label,
		fmtMetric(c.Summary.MeanPrecision),
		fmtMetric(c.Summary.MeanRecall),
		fmtMetric(c.Summary.MeanF1),
		fmtMetric(c.Summary.AvgConfidence))
	for _, comp := range c.Competitors {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
			comp.Name,
			fmtMetric(comp.Precision),
			fmtMetric(comp.Recall),
			fmtMetric(comp.F1),
			fmtMetric(comp.AvgConfidence))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write comparison table: %w", err)
	}
	return nil
}

// fmtMetric formats a metric cell; NaN renders as n/a so a missing column
// never masquerades as zero.
func fmtMetric(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
