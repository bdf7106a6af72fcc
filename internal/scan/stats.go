package scan

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DefaultRollingWindow matches the exporter's analysis convention for
// moving averages over scan rows.
const DefaultRollingWindow = 20

// Summary aggregates one scan file for the report title block and the
// comparison table.
type Summary struct {
	TotalScans    int
	GapsDetected  int
	AvgConfidence float64
	MaxConfidence float64

	// DetectionRatePct is gaps detected over total scans, as a percentage.
	DetectionRatePct float64

	MeanPrecision float64
	MeanRecall    float64
	MeanF1        float64
}

// Summarize computes summary statistics over a scan. NaN cells are
// excluded from means and maxima; an all-NaN column summarises to NaN.
func Summarize(records []Record) Summary {
	s := Summary{
		TotalScans:    len(records),
		AvgConfidence: math.NaN(),
		MaxConfidence: math.NaN(),
		MeanPrecision: math.NaN(),
		MeanRecall:    math.NaN(),
		MeanF1:        math.NaN(),
	}

	var conf, prec, rec, f1 []float64
	for _, r := range records {
		if r.Bool(FieldIsGap) {
			s.GapsDetected++
		}
		conf = appendFinite(conf, r.Confidence)
		prec = appendFinite(prec, r.Precision)
		rec = appendFinite(rec, r.Recall)
		f1 = appendFinite(f1, r.F1Score)
	}

	if len(conf) > 0 {
		s.AvgConfidence = stat.Mean(conf, nil)
		s.MaxConfidence = conf[0]
		for _, v := range conf[1:] {
			if v > s.MaxConfidence {
				s.MaxConfidence = v
			}
		}
	}
	if len(prec) > 0 {
		s.MeanPrecision = stat.Mean(prec, nil)
	}
	if len(rec) > 0 {
		s.MeanRecall = stat.Mean(rec, nil)
	}
	if len(f1) > 0 {
		s.MeanF1 = stat.Mean(f1, nil)
	}
	if s.TotalScans > 0 {
		s.DetectionRatePct = float64(s.GapsDetected) / float64(s.TotalScans) * 100
	}
	return s
}

func appendFinite(dst []float64, v float64) []float64 {
	if math.IsNaN(v) {
		return dst
	}
	return append(dst, v)
}

// RollingMean computes a trailing moving average. Positions before the
// window has filled are NaN; a NaN inside a window propagates to that
// window's output.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		window = DefaultRollingWindow
	}
	for i := range values {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		out[i] = stat.Mean(values[i-window+1:i+1], nil)
	}
	return out
}

// ConfidenceSeries extracts the confidence column for rolling analysis.
func ConfidenceSeries(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Confidence
	}
	return out
}

// GapSignal converts the is_gap column into a 0/1 series; a rolling mean
// over it (times 100) gives the rolling detection rate.
func GapSignal(records []Record) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		if r.Bool(FieldIsGap) {
			out[i] = 1
		}
	}
	return out
}
