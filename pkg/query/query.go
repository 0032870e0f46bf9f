package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinFields is the number of fields a bubble chart needs: one label and three
// measures.
const MinFields = 4

// MissingLabel is shown for rows without a label value.
const MissingLabel = "–"

// Field describes one column of a query result.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	LabelShort  string `json:"label_short,omitempty"`
	Type        string `json:"type,omitempty"`
	ValueFormat string `json:"value_format,omitempty"`
}

// DisplayLabel returns the most descriptive non-empty label.
func (f Field) DisplayLabel() string {
	switch {
	case f.Label != "":
		return f.Label
	case f.LabelShort != "":
		return f.LabelShort
	}
	return f.Name
}

// Fields groups field descriptors the way the host reports them.
type Fields struct {
	Dimensions []Field `json:"dimensions"`
	Measures   []Field `json:"measures"`
}

// Ordered returns dimensions followed by measures.
func (fs Fields) Ordered() []Field {
	out := make([]Field, 0, len(fs.Dimensions)+len(fs.Measures))
	out = append(out, fs.Dimensions...)
	return append(out, fs.Measures...)
}

// Response is the query metadata passed alongside the rows.
type Response struct {
	Fields Fields `json:"fields"`
}

// Link is a drill link attached to a cell.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Type  string `json:"type,omitempty"`
}

// Cell is one value in a row. Only Value and Rendered are used for charting.
type Cell struct {
	Value    any     `json:"value"`
	Rendered *string `json:"rendered,omitempty"`
	HTML     string  `json:"html,omitempty"`
	Links    []Link  `json:"links,omitempty"`
}

// Text returns the host's rendered string when present, otherwise the raw
// value as text.
func (c Cell) Text() string {
	if c.Rendered != nil {
		return *c.Rendered
	}
	return ValueText(c.Value)
}

// Row maps field names to cells.
type Row map[string]Cell

// Rendered holds the display strings for a datum's measures.
type Rendered struct {
	X    string `json:"x"`
	Y    string `json:"y"`
	Size string `json:"size"`
}

// Datum is one bubble's data.
type Datum struct {
	Index    int      `json:"index"`
	Store    string   `json:"store"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Size     float64  `json:"size"`
	Rendered Rendered `json:"rendered"`
}

// Sufficient reports whether rows and fields can produce a chart.
func Sufficient(rows []Row, fields []Field) bool {
	return len(fields) >= MinFields && len(rows) > 0
}

// MapRows converts rows into data using fields positionally. It panics if
// fewer than MinFields fields are given; check with [Sufficient] first.
func MapRows(rows []Row, fields []Field) []Datum {
	label, fx, fy, fs := fields[0].Name, fields[1].Name, fields[2].Name, fields[3].Name
	out := make([]Datum, len(rows))
	for i, row := range rows {
		store := MissingLabel
		if c, ok := row[label]; ok && c.Value != nil {
			store = ValueText(c.Value)
		}
		out[i] = Datum{
			Index: i,
			Store: store,
			X:     Number(row[fx].Value),
			Y:     Number(row[fy].Value),
			Size:  Number(row[fs].Value),
			Rendered: Rendered{
				X:    row[fx].Text(),
				Y:    row[fy].Text(),
				Size: row[fs].Text(),
			},
		}
	}
	return out
}

// Number coerces a cell value to a finite float. Missing, null, non-numeric,
// NaN and infinite values become 0.
func Number(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case interface{ Float64() (float64, error) }:
		x, err := t.Float64()
		if err != nil {
			return 0
		}
		f = x
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = x
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ValueText formats a raw cell value for display.
func ValueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
