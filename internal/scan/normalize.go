package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultComma is the delimiter the scan exporter writes.
const DefaultComma = ','

// Normalize parses raw CSV text into scan records. The first line names
// the columns; blank lines are skipped; rows keep their source order.
func Normalize(raw string) ([]Record, error) {
	return NormalizeReader(strings.NewReader(raw), DefaultComma)
}

// NormalizeReader parses CSV from r using the given delimiter.
//
// Designated numeric columns are coerced to float64 (NaN on a missing or
// non-numeric cell). Every other column gets best-effort typing: numeric
// tokens become float64, true/false become bool, anything else stays a
// string. Malformed rows are not rejected; they degrade through the same
// best-effort typing, so only an unreadable input fails the whole call.
func NormalizeReader(r io.Reader, comma rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+2, err)
		}
		records = append(records, normalizeRow(header, row))
	}
	return records, nil
}

func normalizeRow(header, row []string) Record {
	rec := Record{
		Angle:      math.NaN(),
		Confidence: math.NaN(),
		Precision:  math.NaN(),
		Recall:     math.NaN(),
		F1Score:    math.NaN(),
		Fields:     make(map[string]any, len(header)),
	}

	for i, name := range header {
		if name == "" {
			continue
		}

		// Short rows leave designated fields NaN and passthrough
		// fields absent.
		var cell string
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}

		switch name {
		case FieldAngle:
			rec.Angle = coerceFloat(cell)
		case FieldConfidence:
			rec.Confidence = coerceFloat(cell)
		case FieldPrecision:
			rec.Precision = coerceFloat(cell)
		case FieldRecall:
			rec.Recall = coerceFloat(cell)
		case FieldF1Score:
			rec.F1Score = coerceFloat(cell)
		default:
			if i < len(row) {
				rec.Fields[name] = inferValue(cell)
			}
		}
	}
	return rec
}

// coerceFloat converts a designated numeric cell, yielding NaN for empty
// or non-numeric input so charts render a gap instead of a zero.
func coerceFloat(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// inferValue applies generic typing to a passthrough cell: number, then
// boolean literal, then string.
func inferValue(cell string) any {
	if cell == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v
	}
	if strings.EqualFold(cell, "true") {
		return true
	}
	if strings.EqualFold(cell, "false") {
		return false
	}
	return cell
}
