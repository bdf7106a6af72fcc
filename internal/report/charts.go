// Package report renders scan datasets into HTML charts, PNG figures and
// the markdown comparison table. All drawing is delegated to go-echarts
// and gonum/plot; this package only shapes series data.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gapsense-data/gapscan.report/internal/scan"
)

const (
	titlePerformance = "Detection Performance Over Time"
	titleConfidence  = "Confidence and Distance Analysis"
)

// DetectionPerformanceChart plots precision, recall and f1_score against
// scan angle.
func DetectionPerformanceChart(records []scan.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "760px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: titlePerformance, Subtitle: fmt.Sprintf("scans=%d", len(records))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Angle", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score", NameLocation: "middle", NameGap: 40}),
	)

	line.SetXAxis(angleAxis(records)).
		AddSeries("precision", lineSeries(records, scan.FieldPrecision)).
		AddSeries("recall", lineSeries(records, scan.FieldRecall)).
		AddSeries("f1_score", lineSeries(records, scan.FieldF1Score))
	return line
}

// ConfidenceDistanceChart plots confidence and filtered distance against
// scan angle.
func ConfidenceDistanceChart(records []scan.Record) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "760px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: titleConfidence, Subtitle: fmt.Sprintf("scans=%d", len(records))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Angle", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{NameLocation: "middle", NameGap: 40}),
	)

	line.SetXAxis(angleAxis(records)).
		AddSeries("confidence", lineSeries(records, scan.FieldConfidence)).
		AddSeries("filtered_distance", lineSeries(records, scan.FieldFilteredDistance))
	return line
}

// RenderReportPage writes one HTML page with the two charts side by side.
func RenderReportPage(w io.Writer, pageTitle string, records []scan.Record) error {
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		DetectionPerformanceChart(records),
		ConfidenceDistanceChart(records),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report page: %w", err)
	}
	return nil
}

// angleAxis formats the angle column for the category axis, preserving
// source row order.
func angleAxis(records []scan.Record) []string {
	xs := make([]string, len(records))
	for i, r := range records {
		if math.IsNaN(r.Angle) {
			xs[i] = ""
			continue
		}
		xs[i] = strconv.FormatFloat(r.Angle, 'g', -1, 64)
	}
	return xs
}

// lineSeries extracts one column as chart data. NaN becomes a nil value so
// ECharts leaves a gap in the line rather than plotting zero.
func lineSeries(records []scan.Record, field string) []opts.LineData {
	data := make([]opts.LineData, len(records))
	for i, r := range records {
		v := r.Float(field)
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: nil}
			continue
		}
		data[i] = opts.LineData{Value: v}
	}
	return data
}
