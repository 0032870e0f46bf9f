package sink

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/matzehuels/bubblechart/pkg/fonts"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	font  *truetype.Font
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithFont sets the TrueType face used for text. The go-chart default is
// used when unset.
func WithFont(f *truetype.Font) PNGOption {
	return func(r *pngRenderer) { r.font = f }
}

// RenderPNG rasterises the scene. Tooltips are drawn only for a hovered
// bubble. Bubbles entirely outside the plot area are skipped.
func RenderPNG(s bubble.Scene, opts ...PNGOption) ([]byte, error) {
	p := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&p)
	}
	if p.scale <= 0 {
		p.scale = 1
	}
	if p.font == nil {
		f, err := fonts.Default()
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		p.font = f
	}

	r, err := chart.PNG(p.px(s.Width), p.px(s.Height))
	if err != nil {
		return nil, fmt.Errorf("create png renderer: %w", err)
	}
	// At 72 DPI one point is one pixel.
	r.SetDPI(72)
	r.SetFont(p.font)

	c := canvas{r: r, p: p}
	c.rect(0, 0, s.Width, s.Height, s.Theme.Background)

	if s.Empty() {
		c.text(s.Text(), s.Width/2, s.Height/2+messageFontSize/3, messageFontSize, s.Theme.AxisTitle, anchorMiddle)
	} else {
		c.plot(s)
		c.legend(s)
		if b, ok := s.Hovered(); ok {
			c.tooltip(s, b)
		}
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (p pngRenderer) px(v float64) int {
	return int(math.Round(v * p.scale))
}

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// canvas draws scene geometry in container pixels, scaled to the output
// resolution.
type canvas struct {
	r chart.Renderer
	p pngRenderer
}

func (c canvas) plot(s bubble.Scene) {
	th := s.Theme
	ox, oy := s.Margin.Left, s.Margin.Top
	w, h := s.Plot.W, s.Plot.H

	grid := []float64{3, 4}
	for _, t := range s.X.Ticks {
		c.line(ox+t.Pos, oy, ox+t.Pos, oy+h, th.Grid, 1, grid)
	}
	for _, t := range s.Y.Ticks {
		c.line(ox, oy+t.Pos, ox+w, oy+t.Pos, th.Grid, 1, grid)
	}

	if q := s.Quadrants; q != nil {
		dash := []float64{5, 4}
		c.line(ox+q.Vertical.X1, oy+q.Vertical.Y1, ox+q.Vertical.X2, oy+q.Vertical.Y2, th.Quadrant, 1, dash)
		c.line(ox+q.Horizontal.X1, oy+q.Horizontal.Y1, ox+q.Horizontal.X2, oy+q.Horizontal.Y2, th.Quadrant, 1, dash)
		for _, l := range q.Labels {
			if l.Text != "" {
				c.text(l.Text, ox+l.X, oy+l.Y, quadrantFontSize, th.QuadrantText, anchorStart)
			}
		}
	}

	c.line(ox, oy+h, ox+w, oy+h, th.Axis, 1, nil)
	for _, t := range s.X.Ticks {
		c.line(ox+t.Pos, oy+h, ox+t.Pos, oy+h+tickLength, th.Axis, 1, nil)
		c.text(t.Label, ox+t.Pos, oy+h+xLabelOffset, axisFontSize, th.MutedText, anchorMiddle)
	}
	c.line(ox, oy, ox, oy+h, th.Axis, 1, nil)
	for _, t := range s.Y.Ticks {
		c.line(ox-tickLength, oy+t.Pos, ox, oy+t.Pos, th.Axis, 1, nil)
		c.text(t.Label, ox-yLabelOffset, oy+t.Pos+axisFontSize/3, axisFontSize, th.MutedText, anchorEnd)
	}

	c.text(s.X.Title, ox+s.X.TitlePos.X, oy+s.X.TitlePos.Y, titleFontSize, th.AxisTitle, anchorMiddle)
	// The Y title anchor is in the frame rotated by -90°.
	c.verticalText(s.Y.Title, ox+s.Y.TitlePos.Y, oy-s.Y.TitlePos.X, titleFontSize, th.AxisTitle)

	for _, b := range s.Bubbles {
		if b.CX+b.R < 0 || b.CX-b.R > w || b.CY+b.R < 0 || b.CY-b.R > h {
			continue
		}
		col, err := style.ParseColor(b.Color)
		if err != nil {
			continue
		}
		c.circle(ox+b.CX, oy+b.CY, b.R, withAlpha(col, b.FillOpacity), withAlpha(col, b.StrokeOpacity), b.StrokeWidth)
	}
	for _, b := range s.Bubbles {
		if b.Label == nil || b.Label.X < 0 || b.Label.X > w || b.Label.Y < 0 || b.Label.Y > h {
			continue
		}
		c.text(b.Datum.Store, ox+b.Label.X, oy+b.Label.Y, labelFontSize, th.StoreLabel, anchorMiddle)
	}
}

func (c canvas) legend(s bubble.Scene) {
	l := s.Legend
	if l == nil {
		return
	}
	th := s.Theme
	c.text(strings.ToUpper(l.Title), l.TitlePos.X, l.TitlePos.Y, legendTitleSize, th.AxisTitle, anchorStart)
	for _, e := range l.Entries {
		c.circle(e.CX, e.CY, e.R, th.LegendFill, th.LegendStroke, 1)
		c.text(e.Label, e.CX, e.LabelY, legendLabelSize, th.LegendText, anchorMiddle)
	}
}

func (c canvas) tooltip(s bubble.Scene, b bubble.Bubble) {
	th := s.Theme
	size := tooltipSize(b.Tooltip)
	at := bubble.PlaceTooltip(bubble.Point{X: s.Margin.Left + b.CX, Y: s.Margin.Top + b.CY}, size, bubble.Size{W: s.Width, H: s.Height})

	c.rect(at.X, at.Y, size.W, size.H, th.TooltipBackground)
	c.text(b.Tooltip.Title, at.X+tipPadX, at.Y+tipTitleY, tipTitleSize, th.TooltipText, anchorStart)
	c.line(at.X+tipPadX, at.Y+tipRuleY, at.X+size.W-tipPadX, at.Y+tipRuleY, th.Axis, 1, nil)
	for i, row := range b.Tooltip.Rows {
		y := at.Y + tipFirstRowY + float64(i)*tipRowStep
		c.text(row.Label, at.X+tipPadX, y, tipRowSize, th.TooltipMuted, anchorStart)
		c.text(row.Value, at.X+size.W-tipPadX, y, tipRowSize, th.TooltipText, anchorEnd)
	}
}

// =============================================================================
// Primitives
// =============================================================================

func (c canvas) rect(x, y, w, h float64, fill style.Color) {
	r := c.r
	r.ResetStyle()
	r.SetFillColor(toDrawing(fill))
	r.MoveTo(c.p.px(x), c.p.px(y))
	r.LineTo(c.p.px(x+w), c.p.px(y))
	r.LineTo(c.p.px(x+w), c.p.px(y+h))
	r.LineTo(c.p.px(x), c.p.px(y+h))
	r.Close()
	r.Fill()
}

func (c canvas) line(x1, y1, x2, y2 float64, stroke style.Color, width float64, dash []float64) {
	r := c.r
	r.ResetStyle()
	r.SetStrokeColor(toDrawing(stroke))
	r.SetStrokeWidth(width * c.p.scale)
	if len(dash) > 0 {
		scaled := make([]float64, len(dash))
		for i, d := range dash {
			scaled[i] = d * c.p.scale
		}
		r.SetStrokeDashArray(scaled)
	}
	r.MoveTo(c.p.px(x1), c.p.px(y1))
	r.LineTo(c.p.px(x2), c.p.px(y2))
	r.Stroke()
}

func (c canvas) circle(cx, cy, radius float64, fill, stroke style.Color, width float64) {
	r := c.r
	r.ResetStyle()
	r.SetFillColor(toDrawing(fill))
	r.SetStrokeColor(toDrawing(stroke))
	r.SetStrokeWidth(width * c.p.scale)
	r.Circle(radius*c.p.scale, c.p.px(cx), c.p.px(cy))
	r.FillStroke()
}

func (c canvas) text(body string, x, y, size float64, col style.Color, a anchor) {
	if body == "" {
		return
	}
	r := c.r
	r.ResetStyle()
	r.SetFont(c.p.font)
	r.SetFontSize(size * c.p.scale)
	r.SetFontColor(toDrawing(col))
	tx := c.p.px(x)
	if a != anchorStart {
		box := r.MeasureText(body)
		w := box.Right - box.Left
		if a == anchorMiddle {
			tx -= w / 2
		} else {
			tx -= w
		}
	}
	r.Text(body, tx, c.p.px(y))
}

// verticalText draws body reading bottom to top, centred on y with its
// baseline at x.
func (c canvas) verticalText(body string, x, y, size float64, col style.Color) {
	if body == "" {
		return
	}
	r := c.r
	r.ResetStyle()
	r.SetFont(c.p.font)
	r.SetFontSize(size * c.p.scale)
	r.SetFontColor(toDrawing(col))
	box := r.MeasureText(body)
	w := box.Right - box.Left
	r.SetTextRotation(-math.Pi / 2)
	r.Text(body, c.p.px(x), c.p.px(y)+w/2)
	r.ClearTextRotation()
}

func toDrawing(c style.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(math.Max(0, math.Min(1, c.A)) * 255))}
}

func withAlpha(c style.Color, a float64) style.Color {
	c.A = a
	return c
}
