package style

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bubblechart/pkg/format"
)

func TestParseDefaults(t *testing.T) {
	got := Parse(nil)
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Parse(nil) mismatch (-want +got):\n%s", diff)
	}
	if got.XFormat() != format.KindNumber {
		t.Errorf("XFormat() = %q, want number", got.XFormat())
	}
	if got.YFormat() != format.KindCurrency {
		t.Errorf("YFormat() = %q, want currency", got.YFormat())
	}
}

func TestParseCoercion(t *testing.T) {
	o := Parse(map[string]any{
		"color_scheme":     "Coral",
		"background_color": "FFF",
		"show_labels":      "false",
		"show_quadrants":   false,
		"show_legend":      0.0,
		"min_bubble_px":    "4",
		"max_bubble_px":    80,
		"x_axis_title":     "  Redemptions ",
		"x_axis_min":       "-5",
		"y_axis_max":       120.5,
		"y_axis_min":       "",
		"x_axis_log_scale": "true",
		"x_axis_format":    "percent",
		"currency_symbol":  "$",
		"quadrant_labels":  []any{"a", "", "c", "d"},
		"unknown":          struct{}{},
	})

	if o.ColorScheme != "coral" {
		t.Errorf("ColorScheme = %q, want coral", o.ColorScheme)
	}
	if o.Background != "#ffffff" {
		t.Errorf("Background = %q, want #ffffff", o.Background)
	}
	if o.ShowLabels || o.ShowQuadrants || o.ShowLegend {
		t.Errorf("show flags = %v %v %v, want all false", o.ShowLabels, o.ShowQuadrants, o.ShowLegend)
	}
	if o.MinBubblePx != 4 || o.MaxBubblePx != 80 {
		t.Errorf("bubble px = [%v, %v], want [4, 80]", o.MinBubblePx, o.MaxBubblePx)
	}
	if o.XAxisTitle != "Redemptions" {
		t.Errorf("XAxisTitle = %q", o.XAxisTitle)
	}
	if o.XAxisMin == nil || *o.XAxisMin != -5 {
		t.Errorf("XAxisMin = %v, want -5", o.XAxisMin)
	}
	if o.YAxisMax == nil || *o.YAxisMax != 120.5 {
		t.Errorf("YAxisMax = %v, want 120.5", o.YAxisMax)
	}
	if o.YAxisMin != nil || o.XAxisMax != nil {
		t.Error("unset bounds should stay nil")
	}
	if !o.XAxisLogScale {
		t.Error("XAxisLogScale should be true")
	}
	if o.XFormat() != format.KindPercent {
		t.Errorf("XFormat() = %q, want percent", o.XFormat())
	}
	if o.CurrencySymbol != "$" {
		t.Errorf("CurrencySymbol = %q", o.CurrencySymbol)
	}
	want := [4]string{"a", DefaultQuadrantLabels[TopLeft], "c", "d"}
	if o.QuadrantLabels != want {
		t.Errorf("QuadrantLabels = %v, want %v", o.QuadrantLabels, want)
	}
}

func TestParseInvalidValuesKeepDefaults(t *testing.T) {
	o := Parse(map[string]any{
		"background_color": "not-a-color",
		"show_labels":      "maybe",
		"min_bubble_px":    "big",
		"x_axis_min":       "NaN",
		"quadrant_labels":  []any{"only", "three", "labels"},
	})
	d := Default()
	if o.Background != d.Background {
		t.Errorf("Background = %q, want default", o.Background)
	}
	if o.ShowLabels != d.ShowLabels {
		t.Error("ShowLabels should keep default")
	}
	if o.MinBubblePx != d.MinBubblePx {
		t.Errorf("MinBubblePx = %v, want default", o.MinBubblePx)
	}
	if o.XAxisMin != nil {
		t.Errorf("XAxisMin = %v, want nil", *o.XAxisMin)
	}
	if o.QuadrantLabels != d.QuadrantLabels {
		t.Error("QuadrantLabels should keep default")
	}
}

func TestQuadrantLabelsFromString(t *testing.T) {
	o := Parse(map[string]any{"quadrant_labels": "Stars | Hidden gems | Volume plays | Laggards"})
	want := [4]string{"Stars", "Hidden gems", "Volume plays", "Laggards"}
	if o.QuadrantLabels != want {
		t.Errorf("QuadrantLabels = %v, want %v", o.QuadrantLabels, want)
	}
}

func TestPalette(t *testing.T) {
	if got := Palette("forest")[0]; got != "#56ab2f" {
		t.Errorf("Palette(forest)[0] = %q", got)
	}
	if diff := cmp.Diff(Palette("ocean"), Palette("nope")); diff != "" {
		t.Errorf("unknown palette should fall back to ocean:\n%s", diff)
	}
	p := Palette("ocean")
	p[0] = "#000000"
	if Palette("ocean")[0] == "#000000" {
		t.Error("Palette should return a copy")
	}
	if diff := cmp.Diff([]string{"coral", "forest", "ocean", "purple"}, PaletteNames()); diff != "" {
		t.Errorf("PaletteNames() mismatch:\n%s", diff)
	}
}

func TestOrdinalFirstSeenOrderAndCycling(t *testing.T) {
	o := NewOrdinal([]string{"#1", "#2", "#3"})
	keys := []string{"B", "A", "B", "C", "D"}
	want := []string{"#1", "#2", "#1", "#3", "#1"}
	for i, k := range keys {
		if got := o.Color(k); got != want[i] {
			t.Errorf("Color(%q) = %q, want %q", k, got, want[i])
		}
	}
}

func TestLumaThreshold(t *testing.T) {
	tests := []struct {
		hex  string
		dark bool
	}{
		{"#000000", true},
		{"#0f1117", true},
		{"#ffffff", false},
		{"#f5f5f5", false},
		{"#7f7f7f", true},
		{"#808080", false},
		{"#ff0000", true},
		{"#ffff00", false},
	}
	for _, tt := range tests {
		if got := IsDark(tt.hex); got != tt.dark {
			l, _ := Luma(tt.hex)
			t.Errorf("IsDark(%s) = %v (luma %.4f), want %v", tt.hex, got, l, tt.dark)
		}
	}
	if _, err := Luma("#12"); err == nil {
		t.Error("Luma(#12) should fail")
	}
}

func TestThemeFlipsAcrossThreshold(t *testing.T) {
	dark := NewTheme("#7f7f7f", true)
	light := NewTheme("#808080", true)

	if !dark.Dark || light.Dark {
		t.Fatalf("Dark flags = %v / %v, want true / false", dark.Dark, light.Dark)
	}
	if dark.Text != RGBA(255, 255, 255, 1) {
		t.Errorf("dark Text = %v, want white", dark.Text)
	}
	if light.Text.R > 50 {
		t.Errorf("light Text = %v, want near black", light.Text)
	}

	fixed := NewTheme("#ffffff", false)
	if !fixed.Dark {
		t.Error("non-adaptive theme should keep light foreground")
	}

	bad := NewTheme("zzz", true)
	if bad.Background.String() != DefaultBackground {
		t.Errorf("invalid background = %s, want default", bad.Background)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{RGBA(15, 17, 23, 1), "#0f1117"},
		{RGBA(255, 255, 255, 0.45), "rgba(255,255,255,0.45)"},
		{RGBA(0, 0, 0, 0), "rgba(0,0,0,0)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"#ABCDEF", "#abcdef", true},
		{"abc", "#aabbcc", true},
		{" #0f1117 ", "#0f1117", true},
		{"#12345", "", false},
		{"#gggggg", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeHex(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("NormalizeHex(%q) = %q, %v; want %q ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}

func TestColorTextRoundTrip(t *testing.T) {
	for _, c := range []Color{RGBA(15, 17, 23, 1), RGBA(255, 255, 255, 0.45), RGBA(0, 0, 0, 0)} {
		text, err := c.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Color
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != c {
			t.Errorf("round trip %q = %+v, want %+v", text, got, c)
		}
	}

	var c Color
	for _, bad := range []string{"rgba(1,2,3)", "rgba(300,0,0,1)", "#zzz"} {
		if err := c.UnmarshalText([]byte(bad)); err == nil {
			t.Errorf("UnmarshalText(%q) should fail", bad)
		}
	}
}
