package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/bubblechart/pkg/fonts"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// Font sizes in pixels.
const (
	messageFontSize  = 14
	axisFontSize     = 11
	titleFontSize    = 11
	quadrantFontSize = 10
	labelFontSize    = 10
	legendTitleSize  = 10
	legendLabelSize  = 9
	tipTitleSize     = 13
	tipRowSize       = 12
)

// Axis and tooltip geometry.
const (
	cornerRadius    = 8.0
	tickLength      = 6.0
	xLabelOffset    = 18.0
	yLabelOffset    = 9.0
	tipMinWidth     = 200.0
	tipPadX         = 16.0
	tipTitleY       = 25.0
	tipRuleY        = 36.0
	tipFirstRowY    = 56.0
	tipRowStep      = 18.0
	tipPadBottom    = 16.0
	tipColumnGap    = 16.0
	tipCornerRadius = 10.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	interactive bool
	fontFamily  string
}

// WithInteraction toggles the embedded hover, tooltip and zoom script
// (default on).
func WithInteraction(on bool) SVGOption { return func(r *svgRenderer) { r.interactive = on } }

// WithFontFamily sets the CSS font stack.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// RenderSVG renders the scene as a standalone SVG document.
func RenderSVG(s bubble.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" class="bubblechart" font-family="%s"`,
		px(s.Width), px(s.Height), px(s.Width), px(s.Height), escapeXML(r.fontFamily))
	if !s.Empty() {
		renderDataAttrs(&buf, s)
	}
	buf.WriteString(">\n")
	fmt.Fprintf(&buf, "  <rect class=\"background\" width=\"%s\" height=\"%s\" rx=\"%s\" fill=\"%s\"/>\n",
		px(s.Width), px(s.Height), px(cornerRadius), s.Theme.Background)

	if s.Empty() {
		fmt.Fprintf(&buf, "  <text class=\"message\" x=\"%s\" y=\"%s\" text-anchor=\"middle\" dominant-baseline=\"middle\" font-size=\"%d\" fill=\"%s\">%s</text>\n",
			px(s.Width/2), px(s.Height/2), messageFontSize, s.Theme.AxisTitle, escapeXML(s.Text()))
		buf.WriteString("</svg>\n")
		return buf.Bytes()
	}

	renderPlot(&buf, s)
	renderLegend(&buf, s)
	renderTooltips(&buf, s)
	if r.interactive {
		renderInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{interactive: true, fontFamily: fonts.FallbackFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fontFamily == "" {
		r.fontFamily = fonts.FallbackFontFamily
	}
	return r
}

func renderDataAttrs(buf *bytes.Buffer, s bubble.Scene) {
	fmt.Fprintf(buf, ` data-width="%s" data-height="%s" data-left="%s" data-top="%s" data-plot-w="%s" data-plot-h="%s"`,
		px(s.Width), px(s.Height), px(s.Margin.Left), px(s.Margin.Top), px(s.Plot.W), px(s.Plot.H))
	fmt.Fprintf(buf, ` data-x-domain="%s,%s" data-y-domain="%s,%s" data-x-log="%t" data-x-format="%s" data-y-format="%s" data-currency="%s"`,
		val(s.X.Base[0]), val(s.X.Base[1]), val(s.Y.Base[0]), val(s.Y.Base[1]),
		s.X.Log, s.X.Format, s.Y.Format, escapeXML(s.Currency))
	k := s.Transform.K
	if k == 0 {
		k = 1
	}
	fmt.Fprintf(buf, ` data-k="%s" data-tx="%s" data-ty="%s"`, val(k), val(s.Transform.X), val(s.Transform.Y))
}

// =============================================================================
// Plot area
// =============================================================================

func renderPlot(buf *bytes.Buffer, s bubble.Scene) {
	fmt.Fprintf(buf, "  <g class=\"plot\" transform=\"translate(%s,%s)\">\n", px(s.Margin.Left), px(s.Margin.Top))
	fmt.Fprintf(buf, "    <defs><clipPath id=\"plot-clip\"><rect width=\"%s\" height=\"%s\"/></clipPath></defs>\n",
		px(s.Plot.W), px(s.Plot.H))

	renderGrid(buf, s)

	clip := ""
	if !s.Transform.IsIdentity() {
		clip = ` clip-path="url(#plot-clip)"`
	}
	if s.Quadrants != nil {
		fmt.Fprintf(buf, "    <g class=\"viewport\"%s>\n", clip)
		renderQuadrants(buf, s)
		buf.WriteString("    </g>\n")
	}

	renderAxes(buf, s)
	renderTitles(buf, s)

	fmt.Fprintf(buf, "    <g class=\"viewport\"%s>\n", clip)
	renderBubbles(buf, s)
	renderStoreLabels(buf, s)
	buf.WriteString("    </g>\n")

	buf.WriteString("  </g>\n")
}

func renderGrid(buf *bytes.Buffer, s bubble.Scene) {
	fmt.Fprintf(buf, "    <g class=\"grid grid-x\" stroke=\"%s\" stroke-dasharray=\"3 4\">\n", s.Theme.Grid)
	for _, t := range s.X.Ticks {
		fmt.Fprintf(buf, "      <line x1=\"%s\" y1=\"0\" x2=\"%s\" y2=\"%s\"/>\n", px(t.Pos), px(t.Pos), px(s.Plot.H))
	}
	buf.WriteString("    </g>\n")

	fmt.Fprintf(buf, "    <g class=\"grid grid-y\" stroke=\"%s\" stroke-dasharray=\"3 4\">\n", s.Theme.Grid)
	for _, t := range s.Y.Ticks {
		fmt.Fprintf(buf, "      <line x1=\"0\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n", px(t.Pos), px(s.Plot.W), px(t.Pos))
	}
	buf.WriteString("    </g>\n")
}

func renderQuadrants(buf *bytes.Buffer, s bubble.Scene) {
	q := s.Quadrants
	fmt.Fprintf(buf, "      <g class=\"quadrants\" data-mx=\"%s\" data-my=\"%s\" stroke=\"%s\" stroke-dasharray=\"5,4\">\n",
		val(s.Transform.InvertX(q.Vertical.X1)), val(s.Transform.InvertY(q.Horizontal.Y1)), s.Theme.Quadrant)
	fmt.Fprintf(buf, "        <line class=\"quadrant-v\" x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n",
		px(q.Vertical.X1), px(q.Vertical.Y1), px(q.Vertical.X2), px(q.Vertical.Y2))
	fmt.Fprintf(buf, "        <line class=\"quadrant-h\" x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"/>\n",
		px(q.Horizontal.X1), px(q.Horizontal.Y1), px(q.Horizontal.X2), px(q.Horizontal.Y2))
	buf.WriteString("      </g>\n")

	fmt.Fprintf(buf, "      <g class=\"quadrant-labels\" font-size=\"%d\" font-weight=\"500\" fill=\"%s\">\n",
		quadrantFontSize, s.Theme.QuadrantText)
	for i, l := range q.Labels {
		if l.Text == "" {
			continue
		}
		side := "left"
		if i == style.TopRight || i == style.BottomRight {
			side = "right"
		}
		fmt.Fprintf(buf, "        <text class=\"quadrant-label\" data-side=\"%s\" x=\"%s\" y=\"%s\">%s</text>\n",
			side, px(l.X), px(l.Y), escapeXML(l.Text))
	}
	buf.WriteString("      </g>\n")
}

func renderAxes(buf *bytes.Buffer, s bubble.Scene) {
	th := s.Theme

	fmt.Fprintf(buf, "    <g class=\"axis axis-x\" transform=\"translate(0,%s)\" font-size=\"%d\">\n", px(s.Plot.H), axisFontSize)
	fmt.Fprintf(buf, "      <line class=\"domain\" x1=\"0\" y1=\"0\" x2=\"%s\" y2=\"0\" stroke=\"%s\"/>\n", px(s.Plot.W), th.Axis)
	fmt.Fprintf(buf, "      <g class=\"ticks\" fill=\"%s\">\n", th.MutedText)
	for _, t := range s.X.Ticks {
		fmt.Fprintf(buf, "        <line x1=\"%s\" y1=\"0\" x2=\"%s\" y2=\"%s\" stroke=\"%s\"/>\n", px(t.Pos), px(t.Pos), px(tickLength), th.Axis)
		fmt.Fprintf(buf, "        <text x=\"%s\" y=\"%s\" text-anchor=\"middle\">%s</text>\n", px(t.Pos), px(xLabelOffset), escapeXML(t.Label))
	}
	buf.WriteString("      </g>\n    </g>\n")

	fmt.Fprintf(buf, "    <g class=\"axis axis-y\" font-size=\"%d\">\n", axisFontSize)
	fmt.Fprintf(buf, "      <line class=\"domain\" x1=\"0\" y1=\"0\" x2=\"0\" y2=\"%s\" stroke=\"%s\"/>\n", px(s.Plot.H), th.Axis)
	fmt.Fprintf(buf, "      <g class=\"ticks\" fill=\"%s\">\n", th.MutedText)
	for _, t := range s.Y.Ticks {
		fmt.Fprintf(buf, "        <line x1=\"%s\" y1=\"%s\" x2=\"0\" y2=\"%s\" stroke=\"%s\"/>\n", px(-tickLength), px(t.Pos), px(t.Pos), th.Axis)
		fmt.Fprintf(buf, "        <text x=\"%s\" y=\"%s\" dy=\"0.32em\" text-anchor=\"end\">%s</text>\n", px(-yLabelOffset), px(t.Pos), escapeXML(t.Label))
	}
	buf.WriteString("      </g>\n    </g>\n")
}

func renderTitles(buf *bytes.Buffer, s bubble.Scene) {
	fmt.Fprintf(buf, "    <g class=\"axis-titles\" font-size=\"%d\" font-weight=\"500\" fill=\"%s\" text-anchor=\"middle\">\n",
		titleFontSize, s.Theme.AxisTitle)
	fmt.Fprintf(buf, "      <text class=\"axis-title x-title\" x=\"%s\" y=\"%s\">%s</text>\n",
		px(s.X.TitlePos.X), px(s.X.TitlePos.Y), escapeXML(s.X.Title))
	fmt.Fprintf(buf, "      <text class=\"axis-title y-title\" transform=\"rotate(-90)\" x=\"%s\" y=\"%s\">%s</text>\n",
		px(s.Y.TitlePos.X), px(s.Y.TitlePos.Y), escapeXML(s.Y.Title))
	buf.WriteString("    </g>\n")
}

func renderBubbles(buf *bytes.Buffer, s bubble.Scene) {
	buf.WriteString("      <g class=\"bubbles\">\n")
	for _, b := range s.Bubbles {
		d := b.Datum
		fmt.Fprintf(buf, "        <circle class=\"bubble\" id=\"%s\" data-index=\"%d\" data-store=\"%s\" data-x=\"%s\" data-y=\"%s\" data-size=\"%s\" data-px=\"%s\" data-py=\"%s\"",
			bubbleID(d.Index), d.Index, escapeXML(d.Store), val(d.X), val(d.Y), val(d.Size),
			val(s.Transform.InvertX(b.CX)), val(s.Transform.InvertY(b.CY)))
		fmt.Fprintf(buf, " cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\" fill-opacity=\"%s\" stroke=\"%s\" stroke-width=\"%s\" stroke-opacity=\"%s\"/>\n",
			px(b.CX), px(b.CY), px(b.R), b.Color, val(b.FillOpacity), b.Color, val(b.StrokeWidth), val(b.StrokeOpacity))
	}
	buf.WriteString("      </g>\n")
}

func renderStoreLabels(buf *bytes.Buffer, s bubble.Scene) {
	var labeled []bubble.Bubble
	for _, b := range s.Bubbles {
		if b.Label != nil {
			labeled = append(labeled, b)
		}
	}
	if len(labeled) == 0 {
		return
	}
	fmt.Fprintf(buf, "      <g class=\"store-labels\" font-size=\"%d\" font-weight=\"500\" fill=\"%s\" text-anchor=\"middle\">\n",
		labelFontSize, s.Theme.StoreLabel)
	for _, b := range labeled {
		fmt.Fprintf(buf, "        <text class=\"store-label\" data-for=\"%s\" data-px=\"%s\" data-py=\"%s\" data-r=\"%s\" x=\"%s\" y=\"%s\">%s</text>\n",
			bubbleID(b.Datum.Index), val(s.Transform.InvertX(b.CX)), val(s.Transform.InvertY(b.CY)), val(b.R),
			px(b.Label.X), px(b.Label.Y), escapeXML(b.Datum.Store))
	}
	buf.WriteString("      </g>\n")
}

// =============================================================================
// Legend and tooltips
// =============================================================================

func renderLegend(buf *bytes.Buffer, s bubble.Scene) {
	l := s.Legend
	if l == nil || len(l.Entries) == 0 {
		return
	}
	th := s.Theme
	buf.WriteString("  <g class=\"legend\">\n")
	fmt.Fprintf(buf, "    <text class=\"legend-title\" x=\"%s\" y=\"%s\" font-size=\"%d\" font-weight=\"600\" letter-spacing=\"0.08em\" fill=\"%s\">%s</text>\n",
		px(l.TitlePos.X), px(l.TitlePos.Y), legendTitleSize, th.AxisTitle, escapeXML(strings.ToUpper(l.Title)))
	for _, e := range l.Entries {
		fmt.Fprintf(buf, "    <circle class=\"legend-circle\" cx=\"%s\" cy=\"%s\" r=\"%s\" fill=\"%s\" stroke=\"%s\"/>\n",
			px(e.CX), px(e.CY), px(e.R), th.LegendFill, th.LegendStroke)
		fmt.Fprintf(buf, "    <text class=\"legend-label\" x=\"%s\" y=\"%s\" text-anchor=\"middle\" font-size=\"%d\" fill=\"%s\">%s</text>\n",
			px(e.CX), px(e.LabelY), legendLabelSize, th.LegendText, escapeXML(e.Label))
	}
	buf.WriteString("  </g>\n")
}

func renderTooltips(buf *bytes.Buffer, s bubble.Scene) {
	th := s.Theme
	viewport := bubble.Size{W: s.Width, H: s.Height}

	buf.WriteString("  <g class=\"tooltips\">\n")
	for _, b := range s.Bubbles {
		size := tooltipSize(b.Tooltip)
		pointer := bubble.Point{X: s.Margin.Left + b.CX, Y: s.Margin.Top + b.CY}
		at := bubble.PlaceTooltip(pointer, size, viewport)
		visibility := "hidden"
		if b.Hovered {
			visibility = "visible"
		}

		fmt.Fprintf(buf, "    <g class=\"tooltip\" data-for=\"%s\" data-w=\"%s\" data-h=\"%s\" visibility=\"%s\" transform=\"translate(%s,%s)\">\n",
			bubbleID(b.Datum.Index), px(size.W), px(size.H), visibility, px(at.X), px(at.Y))
		fmt.Fprintf(buf, "      <rect width=\"%s\" height=\"%s\" rx=\"%s\" fill=\"%s\" stroke=\"%s\"/>\n",
			px(size.W), px(size.H), px(tipCornerRadius), th.TooltipBackground, th.TooltipBorder)
		fmt.Fprintf(buf, "      <text x=\"%s\" y=\"%s\" font-size=\"%d\" font-weight=\"600\" fill=\"%s\">%s</text>\n",
			px(tipPadX), px(tipTitleY), tipTitleSize, th.TooltipText, escapeXML(b.Tooltip.Title))
		fmt.Fprintf(buf, "      <line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\" stroke=\"%s\"/>\n",
			px(tipPadX), px(tipRuleY), px(size.W-tipPadX), px(tipRuleY), th.Axis)
		for i, row := range b.Tooltip.Rows {
			y := tipFirstRowY + float64(i)*tipRowStep
			fmt.Fprintf(buf, "      <text x=\"%s\" y=\"%s\" font-size=\"%d\" fill=\"%s\">%s</text>\n",
				px(tipPadX), px(y), tipRowSize, th.TooltipMuted, escapeXML(row.Label))
			fmt.Fprintf(buf, "      <text x=\"%s\" y=\"%s\" font-size=\"%d\" font-weight=\"600\" text-anchor=\"end\" fill=\"%s\">%s</text>\n",
				px(size.W-tipPadX), px(y), tipRowSize, th.TooltipText, escapeXML(row.Value))
		}
		buf.WriteString("    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

// tooltipSize estimates the tooltip box from character counts. Glyph
// widths are approximations for a proportional sans-serif face.
func tooltipSize(t bubble.Tooltip) bubble.Size {
	content := float64(utf8.RuneCountInString(t.Title)) * 7.8
	for _, r := range t.Rows {
		w := float64(utf8.RuneCountInString(r.Label))*6.6 + tipColumnGap + float64(utf8.RuneCountInString(r.Value))*7.2
		content = max(content, w)
	}
	h := tipRuleY + tipPadBottom
	if n := len(t.Rows); n > 0 {
		h = tipFirstRowY + float64(n-1)*tipRowStep + tipPadBottom
	}
	return bubble.Size{W: max(tipMinWidth, content+2*tipPadX), H: h}
}

// =============================================================================
// Helpers
// =============================================================================

func bubbleID(i int) string {
	return "bubble-" + strconv.Itoa(i)
}

// px formats a pixel coordinate.
func px(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}

// val formats a data value without loss.
func val(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
