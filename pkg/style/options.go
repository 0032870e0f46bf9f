// Package style converts the host's flat option map into typed chart options
// and derives the color theme used by every sink.
//
// Host option maps arrive loosely typed: numbers may be strings, booleans may
// be "true"/"false", and unset values may be empty strings. [Parse] coerces
// each known key, falls back to the default on anything it cannot read, and
// ignores unknown keys.
package style

import (
	"strings"

	"github.com/matzehuels/bubblechart/pkg/format"
)

// Option keys as they appear in the host configuration.
const (
	KeyColorScheme    = "color_scheme"
	KeyBackground     = "background_color"
	KeyShowLabels     = "show_labels"
	KeyShowQuadrants  = "show_quadrants"
	KeyShowLegend     = "show_legend"
	KeyAdaptiveColors = "adaptive_colors"
	KeyMinBubblePx    = "min_bubble_px"
	KeyMaxBubblePx    = "max_bubble_px"
	KeyXAxisTitle     = "x_axis_title"
	KeyYAxisTitle     = "y_axis_title"
	KeyXAxisMin       = "x_axis_min"
	KeyXAxisMax       = "x_axis_max"
	KeyYAxisMin       = "y_axis_min"
	KeyYAxisMax       = "y_axis_max"
	KeyXAxisLogScale  = "x_axis_log_scale"
	KeyXAxisFormat    = "x_axis_format"
	KeyYAxisFormat    = "y_axis_format"
	KeyCurrencySymbol = "currency_symbol"
	KeyQuadrantLabels = "quadrant_labels"
)

// Defaults.
const (
	DefaultScheme      = "ocean"
	DefaultBackground  = "#0f1117"
	DefaultMinBubblePx = 8.0
	DefaultMaxBubblePx = 60.0
)

// Quadrant label positions.
const (
	TopRight = iota
	TopLeft
	BottomRight
	BottomLeft
)

// DefaultQuadrantLabels are shown in TR, TL, BR, BL order.
var DefaultQuadrantLabels = [4]string{
	"▲ AOV High · ▲ Volume",
	"▲ AOV High · ▼ Volume",
	"▼ AOV Low · ▲ Volume",
	"▼ AOV Low · ▼ Volume",
}

// Options is the typed view of a host option map. It is immutable for the
// duration of one render.
type Options struct {
	ColorScheme    string      `json:"color_scheme"`
	Background     string      `json:"background_color"`
	ShowLabels     bool        `json:"show_labels"`
	ShowQuadrants  bool        `json:"show_quadrants"`
	ShowLegend     bool        `json:"show_legend"`
	AdaptiveColors bool        `json:"adaptive_colors"`
	MinBubblePx    float64     `json:"min_bubble_px"`
	MaxBubblePx    float64     `json:"max_bubble_px"`
	XAxisTitle     string      `json:"x_axis_title,omitempty"`
	YAxisTitle     string      `json:"y_axis_title,omitempty"`
	XAxisMin       *float64    `json:"x_axis_min,omitempty"`
	XAxisMax       *float64    `json:"x_axis_max,omitempty"`
	YAxisMin       *float64    `json:"y_axis_min,omitempty"`
	YAxisMax       *float64    `json:"y_axis_max,omitempty"`
	XAxisLogScale  bool        `json:"x_axis_log_scale"`
	XAxisFormat    format.Kind `json:"x_axis_format"`
	YAxisFormat    format.Kind `json:"y_axis_format"`
	CurrencySymbol string      `json:"currency_symbol"`
	QuadrantLabels [4]string   `json:"quadrant_labels"`
}

// Default returns the options used when the host supplies nothing.
func Default() Options {
	return Options{
		ColorScheme:    DefaultScheme,
		Background:     DefaultBackground,
		ShowLabels:     true,
		ShowQuadrants:  true,
		ShowLegend:     true,
		AdaptiveColors: true,
		MinBubblePx:    DefaultMinBubblePx,
		MaxBubblePx:    DefaultMaxBubblePx,
		XAxisFormat:    format.KindAuto,
		YAxisFormat:    format.KindAuto,
		CurrencySymbol: format.DefaultCurrency,
		QuadrantLabels: DefaultQuadrantLabels,
	}
}

// Parse builds Options from a flat host option map.
func Parse(m map[string]any) Options {
	o := Default()

	if s, ok := stringValue(m, KeyColorScheme); ok {
		o.ColorScheme = strings.ToLower(s)
	}
	if s, ok := stringValue(m, KeyBackground); ok {
		if hex, err := NormalizeHex(s); err == nil {
			o.Background = hex
		}
	}
	boolInto(m, KeyShowLabels, &o.ShowLabels)
	boolInto(m, KeyShowQuadrants, &o.ShowQuadrants)
	boolInto(m, KeyShowLegend, &o.ShowLegend)
	boolInto(m, KeyAdaptiveColors, &o.AdaptiveColors)
	boolInto(m, KeyXAxisLogScale, &o.XAxisLogScale)

	if v, ok := floatValue(m, KeyMinBubblePx); ok {
		o.MinBubblePx = v
	}
	if v, ok := floatValue(m, KeyMaxBubblePx); ok {
		o.MaxBubblePx = v
	}

	if s, ok := stringValue(m, KeyXAxisTitle); ok {
		o.XAxisTitle = s
	}
	if s, ok := stringValue(m, KeyYAxisTitle); ok {
		o.YAxisTitle = s
	}

	o.XAxisMin = floatPtr(m, KeyXAxisMin)
	o.XAxisMax = floatPtr(m, KeyXAxisMax)
	o.YAxisMin = floatPtr(m, KeyYAxisMin)
	o.YAxisMax = floatPtr(m, KeyYAxisMax)

	if s, ok := stringValue(m, KeyXAxisFormat); ok {
		o.XAxisFormat = format.ParseKind(s)
	}
	if s, ok := stringValue(m, KeyYAxisFormat); ok {
		o.YAxisFormat = format.ParseKind(s)
	}
	if s, ok := m[KeyCurrencySymbol].(string); ok && strings.TrimSpace(s) != "" {
		o.CurrencySymbol = strings.TrimSpace(s)
	}
	if labels, ok := quadrantLabels(m[KeyQuadrantLabels]); ok {
		o.QuadrantLabels = labels
	}
	return o
}

// Palette returns the bubble colors for the configured scheme.
func (o Options) Palette() []string {
	return Palette(o.ColorScheme)
}

// Theme returns the foreground colors for the configured background.
func (o Options) Theme() Theme {
	return NewTheme(o.Background, o.AdaptiveColors)
}

// XFormat returns the resolved X axis format (auto means number).
func (o Options) XFormat() format.Kind {
	return o.XAxisFormat.Resolve(format.KindNumber)
}

// YFormat returns the resolved Y axis format (auto means currency).
func (o Options) YFormat() format.Kind {
	return o.YAxisFormat.Resolve(format.KindCurrency)
}
