// Package fonts provides the typefaces used by the chart sinks.
//
// SVG output references fonts by CSS family name so that the host page can
// supply them. Raster output needs real glyph data: [Default] returns the
// TrueType face bundled with go-chart, and [Load] parses a user-supplied TTF.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
)

// FontFamily is the CSS font-family name used by the chart.
const FontFamily = "DM Sans"

// FallbackFontFamily is the full font stack written into SVG output.
const FallbackFontFamily = `'DM Sans', 'Helvetica Neue', Arial, sans-serif`

// Cache for the bundled raster font (parsed once on first access).
var (
	defaultFont     *truetype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// Default returns the bundled raster font. The result is cached after the
// first call.
func Default() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = chart.GetDefaultFont()
	})
	return defaultFont, defaultFontErr
}

// Load reads and parses a TrueType font file.
func Load(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}
