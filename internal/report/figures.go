package report

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gapsense-data/gapscan.report/internal/monitoring"
	"github.com/gapsense-data/gapscan.report/internal/scan"
)

var (
	colourPrimary = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 255}
	colourGap     = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 255}
	colourWarning = color.RGBA{R: 0xf1, G: 0xc4, B: 0x0f, A: 255}
	colourOK      = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 255}
)

// Figures renders the supplemental PNG figures for one scan: the gap
// scatter, confidence histogram, metrics bar chart and the confidence
// time series with its moving average.
type Figures struct {
	OutputDir string
	// Window is the rolling window for moving averages; <=0 selects the
	// default.
	Window int
}

// Generate writes the PNG figures for the named scan and returns the paths
// written. Figures with no plottable data are skipped with a log line
// rather than failing the run.
func (f *Figures) Generate(name string, records []scan.Record, sum scan.Summary) ([]string, error) {
	window := f.Window
	if window <= 0 {
		window = scan.DefaultRollingWindow
	}

	type figure struct {
		suffix string
		build  func() (*plot.Plot, error)
	}
	figures := []figure{
		{"scatter", func() (*plot.Plot, error) { return gapScatterPlot(records) }},
		{"confidence_hist", func() (*plot.Plot, error) { return confidenceHistPlot(records, sum) }},
		{"metrics", func() (*plot.Plot, error) { return metricsBarPlot(sum) }},
		{"confidence_ts", func() (*plot.Plot, error) { return confidenceSeriesPlot(records, window) }},
	}

	var written []string
	for _, fig := range figures {
		p, err := fig.build()
		if err != nil {
			return written, fmt.Errorf("figure %s_%s: %w", name, fig.suffix, err)
		}
		if p == nil {
			monitoring.Logf("skipping figure %s_%s: no plottable data", name, fig.suffix)
			continue
		}
		out := filepath.Join(f.OutputDir, fmt.Sprintf("%s_%s.png", name, fig.suffix))
		if err := p.Save(11*vg.Inch, 5*vg.Inch, out); err != nil {
			return written, fmt.Errorf("save figure %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}

// gapScatterPlot plots filtered distance against angle, with detected gaps
// highlighted and the baseline/threshold rules when those columns exist.
func gapScatterPlot(records []scan.Record) (*plot.Plot, error) {
	var all, gaps plotter.XYs
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		x := r.Angle
		y := r.Float(scan.FieldFilteredDistance)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		all = append(all, plotter.XY{X: x, Y: y})
		if r.Bool(scan.FieldIsGap) {
			gaps = append(gaps, plotter.XY{X: x, Y: y})
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	if len(all) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Gap Detection Analysis"
	p.X.Label.Text = "Angle (degrees)"
	p.Y.Label.Text = "Distance (cm)"

	sc, err := plotter.NewScatter(all)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = colourPrimary
	sc.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(sc)
	p.Legend.Add("scan points", sc)

	if len(gaps) > 0 {
		gsc, err := plotter.NewScatter(gaps)
		if err != nil {
			return nil, err
		}
		gsc.GlyphStyle.Color = colourGap
		gsc.GlyphStyle.Radius = vg.Points(4)
		p.Add(gsc)
		p.Legend.Add("detected gaps", gsc)
	}

	// Baseline and threshold rules come from the first row when the
	// exporter includes those columns.
	if len(records) > 0 && records[0].Has(scan.FieldBaselineDistance) {
		if err := addRule(p, minX, maxX, records[0].Float(scan.FieldBaselineDistance), colourWarning, "baseline"); err != nil {
			return nil, err
		}
	}
	if len(records) > 0 && records[0].Has(scan.FieldThreshold) {
		if err := addRule(p, minX, maxX, records[0].Float(scan.FieldThreshold), colourGap, "threshold"); err != nil {
			return nil, err
		}
	}

	p.Legend.Top = true
	return p, nil
}

func addRule(p *plot.Plot, minX, maxX, y float64, c color.Color, label string) error {
	if math.IsNaN(y) {
		return nil
	}
	line, err := plotter.NewLine(plotter.XYs{{X: minX, Y: y}, {X: maxX, Y: y}})
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1)
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

// confidenceHistPlot draws the confidence distribution.
func confidenceHistPlot(records []scan.Record, sum scan.Summary) (*plot.Plot, error) {
	var vals plotter.Values
	for _, r := range records {
		if !math.IsNaN(r.Confidence) {
			vals = append(vals, r.Confidence)
		}
	}
	if len(vals) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Confidence Distribution (mean %.2f)", sum.AvgConfidence)
	p.X.Label.Text = "Confidence Score"
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(vals, 30)
	if err != nil {
		return nil, err
	}
	h.FillColor = colourPrimary
	p.Add(h)
	return p, nil
}

// metricsBarPlot draws the performance metrics as percentages.
func metricsBarPlot(sum scan.Summary) (*plot.Plot, error) {
	if sum.TotalScans == 0 {
		return nil, nil
	}

	labels := []string{"Detection Rate", "Avg Confidence", "Max Confidence"}
	vals := plotter.Values{
		sum.DetectionRatePct,
		nanToZero(sum.AvgConfidence * 100),
		nanToZero(sum.MaxConfidence * 100),
	}

	p := plot.New()
	p.Title.Text = "Performance Metrics"
	p.Y.Label.Text = "Percent"

	bars, err := plotter.NewBarChart(vals, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = colourOK
	p.Add(bars)
	p.NominalX(labels...)
	return p, nil
}

// confidenceSeriesPlot draws per-row confidence with its rolling mean over
// the measurement index.
func confidenceSeriesPlot(records []scan.Record, window int) (*plot.Plot, error) {
	series := scan.ConfidenceSeries(records)
	ma := scan.RollingMean(series, window)

	raw := xysFromSeries(series)
	smoothed := xysFromSeries(ma)
	if len(raw) == 0 {
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Time Series Analysis"
	p.X.Label.Text = "Measurement Index"
	p.Y.Label.Text = "Confidence Score"

	rawLine, err := plotter.NewLine(raw)
	if err != nil {
		return nil, err
	}
	rawLine.Color = colourWarning
	rawLine.Width = vg.Points(1)
	p.Add(rawLine)
	p.Legend.Add("confidence", rawLine)

	if len(smoothed) > 0 {
		maLine, err := plotter.NewLine(smoothed)
		if err != nil {
			return nil, err
		}
		maLine.Color = colourOK
		maLine.Width = vg.Points(1.5)
		p.Add(maLine)
		p.Legend.Add(fmt.Sprintf("rolling mean (%d)", window), maLine)
	}

	p.Legend.Top = true
	return p, nil
}

// xysFromSeries indexes a series, dropping NaN points so gonum/plot never
// sees them.
func xysFromSeries(series []float64) plotter.XYs {
	var out plotter.XYs
	for i, v := range series {
		if math.IsNaN(v) {
			continue
		}
		out = append(out, plotter.XY{X: float64(i), Y: v})
	}
	return out
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
