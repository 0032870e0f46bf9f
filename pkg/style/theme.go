package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DarkThreshold is the luma below which a background counts as dark.
const DarkThreshold = 0.5

// Color is an sRGB color with alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// RGBA builds a Color.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// String renders the color as a CSS value: "#rrggbb" when opaque, otherwise
// "rgba(r,g,b,a)".
func (c Color) String() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// MarshalText encodes the color as its CSS string.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a color written by MarshalText.
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if inner, ok := strings.CutPrefix(s, "rgba("); ok {
		parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
		if len(parts) != 4 {
			return fmt.Errorf("invalid rgba color %q", s)
		}
		var ch [3]uint8
		for i := range ch {
			n, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
			if err != nil {
				return fmt.Errorf("invalid rgba color %q", s)
			}
			ch[i] = uint8(n)
		}
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return fmt.Errorf("invalid rgba color %q", s)
		}
		*c = Color{R: ch[0], G: ch[1], B: ch[2], A: a}
		return nil
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor parses a "#rgb" or "#rrggbb" hex string into an opaque Color.
func ParseColor(s string) (Color, error) {
	hex, err := NormalizeHex(s)
	if err != nil {
		return Color{}, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: 1}, nil
}

// NormalizeHex lowercases a hex color, adds the leading '#', and expands the
// three-digit form.
func NormalizeHex(s string) (string, error) {
	h := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	if _, err := strconv.ParseUint(h, 16, 32); err != nil {
		return "", fmt.Errorf("invalid hex color %q", s)
	}
	return "#" + h, nil
}

// Luma returns the perceptual brightness of a hex color in [0, 1] using
// 0.299R + 0.587G + 0.114B on gamma-encoded channels.
func Luma(hex string) (float64, error) {
	n, err := NormalizeHex(hex)
	if err != nil {
		return 0, err
	}
	c, err := colorful.Hex(n)
	if err != nil {
		return 0, err
	}
	return 0.299*c.R + 0.587*c.G + 0.114*c.B, nil
}

// IsDark reports whether text on hex should be light.
func IsDark(hex string) bool {
	l, err := Luma(hex)
	if err != nil {
		return true
	}
	return l < DarkThreshold
}

// Theme holds every non-data color of the chart.
type Theme struct {
	Dark       bool  `json:"dark"`
	Background Color `json:"background"`

	Text       Color `json:"text"`
	MutedText  Color `json:"muted_text"`
	AxisTitle  Color `json:"axis_title"`
	StoreLabel Color `json:"store_label"`

	Grid         Color `json:"grid"`
	Axis         Color `json:"axis"`
	Quadrant     Color `json:"quadrant"`
	QuadrantText Color `json:"quadrant_text"`

	LegendFill   Color `json:"legend_fill"`
	LegendStroke Color `json:"legend_stroke"`
	LegendText   Color `json:"legend_text"`

	TooltipBackground Color `json:"tooltip_background"`
	TooltipBorder     Color `json:"tooltip_border"`
	TooltipText       Color `json:"tooltip_text"`
	TooltipMuted      Color `json:"tooltip_muted"`
}

// NewTheme derives the theme for a background. With adaptive off the light
// foreground is always used, as on the default dark background.
func NewTheme(background string, adaptive bool) Theme {
	bg, err := ParseColor(background)
	if err != nil {
		bg, _ = ParseColor(DefaultBackground)
	}
	dark := true
	if adaptive {
		dark = IsDark(bg.String())
	}

	fg := func(a float64) Color { return RGBA(255, 255, 255, a) }
	text := RGBA(255, 255, 255, 1)
	if !dark {
		fg = func(a float64) Color { return RGBA(0, 0, 0, a) }
		text = RGBA(17, 17, 17, 1)
	}

	return Theme{
		Dark:              dark,
		Background:        bg,
		Text:              text,
		MutedText:         fg(0.45),
		AxisTitle:         fg(0.4),
		StoreLabel:        fg(0.75),
		Grid:              fg(0.05),
		Axis:              fg(0.1),
		Quadrant:          fg(0.12),
		QuadrantText:      fg(0.2),
		LegendFill:        fg(0.15),
		LegendStroke:      fg(0.25),
		LegendText:        fg(0.45),
		TooltipBackground: RGBA(bg.R, bg.G, bg.B, 0.95),
		TooltipBorder:     fg(0.12),
		TooltipText:       text,
		TooltipMuted:      fg(0.7),
	}
}
