package query

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func str(s string) *string { return &s }

var testFields = []Field{
	{Name: "stores.name", Label: "Store"},
	{Name: "orders.discounts", Label: "Discounts Redeemed"},
	{Name: "orders.aov", Label: "AOV with Discount"},
	{Name: "orders.sales", Label: "Total Sales"},
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 12.5, 12.5},
		{"int", 7, 7},
		{"numeric string", " 42.5 ", 42.5},
		{"empty string", "", 0},
		{"text", "n/a", 0},
		{"nan", math.NaN(), 0},
		{"inf", math.Inf(-1), 0},
		{"nan string", "NaN", 0},
		{"true", true, 1},
		{"false", false, 0},
		{"json number", json.Number("3.25"), 3.25},
		{"object", map[string]any{"a": 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.in); got != tt.want {
				t.Errorf("Number(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapRows(t *testing.T) {
	rows := []Row{
		{
			"stores.name":      {Value: "A"},
			"orders.discounts": {Value: 100.0, Rendered: str("100")},
			"orders.aov":       {Value: "50"},
			"orders.sales":     {Value: 1000.0, Rendered: str("€1,000")},
		},
		{
			"orders.discounts": {Value: nil},
			"orders.aov":       {Value: "oops"},
		},
	}
	got := MapRows(rows, testFields)
	want := []Datum{
		{Index: 0, Store: "A", X: 100, Y: 50, Size: 1000, Rendered: Rendered{X: "100", Y: "50", Size: "€1,000"}},
		{Index: 1, Store: MissingLabel, Rendered: Rendered{Y: "oops"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapRowsNumericLabel(t *testing.T) {
	rows := []Row{{"stores.name": {Value: 17.0}}}
	if got := MapRows(rows, testFields)[0].Store; got != "17" {
		t.Errorf("Store = %q, want 17", got)
	}
}

func TestSufficient(t *testing.T) {
	row := []Row{{}}
	if Sufficient(row, testFields[:3]) {
		t.Error("three fields should be insufficient")
	}
	if Sufficient(nil, testFields) {
		t.Error("no rows should be insufficient")
	}
	if !Sufficient(row, testFields) {
		t.Error("four fields and a row should be sufficient")
	}
}

func TestFieldsOrdered(t *testing.T) {
	fs := Fields{
		Dimensions: testFields[:1],
		Measures:   testFields[1:],
	}
	if diff := cmp.Diff(testFields, fs.Ordered()); diff != "" {
		t.Errorf("Ordered() mismatch:\n%s", diff)
	}
	if got := (Field{Name: "a.b", LabelShort: "B"}).DisplayLabel(); got != "B" {
		t.Errorf("DisplayLabel() = %q, want B", got)
	}
	if got := (Field{Name: "a.b"}).DisplayLabel(); got != "a.b" {
		t.Errorf("DisplayLabel() = %q, want a.b", got)
	}
}

func TestReadJSON(t *testing.T) {
	in := `{
	  "fields": {
	    "dimensions": [{"name": "stores.name", "label": "Store"}],
	    "measures": [
	      {"name": "orders.discounts"},
	      {"name": "orders.aov"},
	      {"name": "orders.sales", "label_short": "Sales"}
	    ]
	  },
	  "data": [
	    {"stores.name": {"value": "B"}, "orders.discounts": {"value": 200}, "orders.aov": {"value": 80, "rendered": "€80.00"}, "orders.sales": {"value": 4000}}
	  ]
	}`
	doc, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	fields := doc.Fields.Ordered()
	if len(fields) != 4 {
		t.Fatalf("fields = %d, want 4", len(fields))
	}
	d := MapRows(doc.Data, fields)[0]
	if d.Store != "B" || d.X != 200 || d.Y != 80 || d.Size != 4000 {
		t.Errorf("datum = %+v", d)
	}
	if d.Rendered.Y != "€80.00" || d.Rendered.Size != "4000" {
		t.Errorf("rendered = %+v", d.Rendered)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := map[string]string{
		"malformed":    `{"fields":`,
		"missing name": `{"fields":{"measures":[{"label":"x"}]}}`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(in)); err == nil {
				t.Error("ReadJSON() should fail")
			}
		})
	}
}

func TestImportWriteRoundTrip(t *testing.T) {
	doc := Document{
		Fields: Fields{Dimensions: testFields[:1], Measures: testFields[1:]},
		Data:   []Row{{"stores.name": {Value: "A", Rendered: str("A")}}},
	}
	var buf bytes.Buffer
	if err := WriteJSON(doc, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "query.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON(missing) should fail")
	}
}
