// Package scan parses ultrasonic gap-detection scan exports into typed
// records and computes the summary statistics the report tooling plots.
package scan

import "math"

// Designated numeric columns. These are always coerced to float64 on the
// Record itself; a missing or non-numeric cell yields NaN, never zero.
const (
	FieldAngle      = "angle"
	FieldConfidence = "confidence"
	FieldPrecision  = "precision"
	FieldRecall     = "recall"
	FieldF1Score    = "f1_score"
)

// Well-known passthrough columns. They keep whatever type the generic
// inference assigns (the exporter writes them numerically, but nothing
// validates that).
const (
	FieldFilteredDistance = "filtered_distance"
	FieldIsGap            = "is_gap"
	FieldBaselineDistance = "baseline_distance"
	FieldThreshold        = "threshold"
)

// Record is one row of a gap-detection scan. Rows keep their source order;
// the chart X-axis is never re-sorted.
type Record struct {
	Angle      float64
	Confidence float64
	Precision  float64
	Recall     float64
	F1Score    float64

	// Fields holds every non-designated column with its inferred type
	// (float64, bool, or string).
	Fields map[string]any
}

// Float returns the named column as a float64, NaN when the column is
// absent or not numeric. Chart consumers rely on NaN to render gaps
// instead of fake zero points.
func (r Record) Float(name string) float64 {
	switch name {
	case FieldAngle:
		return r.Angle
	case FieldConfidence:
		return r.Confidence
	case FieldPrecision:
		return r.Precision
	case FieldRecall:
		return r.Recall
	case FieldF1Score:
		return r.F1Score
	}
	if v, ok := r.Fields[name].(float64); ok {
		return v
	}
	return math.NaN()
}

// Bool returns the named passthrough column as a bool, false when the
// column is absent or not boolean.
func (r Record) Bool(name string) bool {
	v, ok := r.Fields[name].(bool)
	return ok && v
}

// Has reports whether the named passthrough column is present on the row.
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}
