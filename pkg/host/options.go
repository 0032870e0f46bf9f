package host

import (
	"github.com/matzehuels/bubblechart/pkg/format"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// Option sections.
const (
	SectionStyle  = "Style"
	SectionAxes   = "Axes"
	SectionLabels = "Labels"
)

// Choice is one entry of a select option.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionSpec describes one entry of a visualization's configuration panel.
type OptionSpec struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Display string   `json:"display,omitempty"`
	Values  []Choice `json:"values,omitempty"`
	Default any      `json:"default,omitempty"`
	Section string   `json:"section"`
}

// BubbleChartOptions returns the configuration panel of the bubble chart.
// Every key is understood by [style.Parse].
func BubbleChartOptions() []OptionSpec {
	formats := []Choice{
		{Label: "Automatic", Value: string(format.KindAuto)},
		{Label: "Number", Value: string(format.KindNumber)},
		{Label: "Currency", Value: string(format.KindCurrency)},
		{Label: "Percent", Value: string(format.KindPercent)},
	}
	return []OptionSpec{
		{
			Key: style.KeyColorScheme, Label: "Color scheme", Type: "string", Display: "select",
			Values: []Choice{
				{Label: "Ocean Blue", Value: "ocean"},
				{Label: "Coral Red", Value: "coral"},
				{Label: "Forest Green", Value: "forest"},
				{Label: "Purple Haze", Value: "purple"},
			},
			Default: style.DefaultScheme, Section: SectionStyle,
		},
		{Key: style.KeyBackground, Label: "Background color", Type: "string", Display: "color", Default: style.DefaultBackground, Section: SectionStyle},
		{Key: style.KeyAdaptiveColors, Label: "Adapt text to background", Type: "boolean", Default: true, Section: SectionStyle},
		{Key: style.KeyShowLabels, Label: "Show store labels", Type: "boolean", Default: true, Section: SectionStyle},
		{Key: style.KeyShowQuadrants, Label: "Show quadrant lines", Type: "boolean", Default: true, Section: SectionStyle},
		{Key: style.KeyShowLegend, Label: "Show size legend", Type: "boolean", Default: true, Section: SectionStyle},
		{Key: style.KeyMinBubblePx, Label: "Min bubble size (px)", Type: "number", Default: style.DefaultMinBubblePx, Section: SectionStyle},
		{Key: style.KeyMaxBubblePx, Label: "Max bubble size (px)", Type: "number", Default: style.DefaultMaxBubblePx, Section: SectionStyle},

		{Key: style.KeyXAxisTitle, Label: "X axis title", Type: "string", Section: SectionAxes},
		{Key: style.KeyYAxisTitle, Label: "Y axis title", Type: "string", Section: SectionAxes},
		{Key: style.KeyXAxisMin, Label: "X axis minimum", Type: "number", Section: SectionAxes},
		{Key: style.KeyXAxisMax, Label: "X axis maximum", Type: "number", Section: SectionAxes},
		{Key: style.KeyYAxisMin, Label: "Y axis minimum", Type: "number", Section: SectionAxes},
		{Key: style.KeyYAxisMax, Label: "Y axis maximum", Type: "number", Section: SectionAxes},
		{Key: style.KeyXAxisLogScale, Label: "Logarithmic X axis", Type: "boolean", Default: false, Section: SectionAxes},
		{Key: style.KeyXAxisFormat, Label: "X axis format", Type: "string", Display: "select", Values: formats, Default: string(format.KindAuto), Section: SectionAxes},
		{Key: style.KeyYAxisFormat, Label: "Y axis format", Type: "string", Display: "select", Values: formats, Default: string(format.KindAuto), Section: SectionAxes},
		{Key: style.KeyCurrencySymbol, Label: "Currency symbol", Type: "string", Default: format.DefaultCurrency, Section: SectionAxes},

		{Key: style.KeyQuadrantLabels, Label: "Quadrant labels (TR, TL, BR, BL)", Type: "array", Default: style.DefaultQuadrantLabels[:], Section: SectionLabels},
	}
}
