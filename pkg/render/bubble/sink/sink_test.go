package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/render/bubble"
	"github.com/matzehuels/bubblechart/pkg/scale"
	"github.com/matzehuels/bubblechart/pkg/style"
)

var fields = []query.Field{
	{Name: "stores.name", Label: "Store"},
	{Name: "orders.discounts", Label: "Discounts Redeemed"},
	{Name: "orders.aov", Label: "AOV with Discount"},
	{Name: "orders.sales", Label: "Total Sales"},
}

func row(store string, x, y, size float64) query.Row {
	return query.Row{
		"stores.name":      {Value: store},
		"orders.discounts": {Value: x},
		"orders.aov":       {Value: y},
		"orders.sales":     {Value: size},
	}
}

func testScene() bubble.Scene {
	rows := []query.Row{
		row("North", 120, 48.5, 12000),
		row("South", 340, 61.2, 38000),
		row("A & B <Outlet>", 80, 39.9, 4000),
	}
	return bubble.Render(rows, fields, style.Default(), bubble.Size{W: 600, H: 400})
}

func wellFormed(t *testing.T, data []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testScene()))
	wellFormed(t, []byte(svg))

	if got := strings.Count(svg, `class="bubble"`); got != 3 {
		t.Errorf("bubble circles = %d, want 3", got)
	}
	if got := strings.Count(svg, `class="tooltip"`); got != 3 {
		t.Errorf("tooltips = %d, want 3", got)
	}
	if got := strings.Count(svg, `class="store-label"`); got != 3 {
		t.Errorf("store labels = %d, want 3", got)
	}
	for _, want := range []string{
		`class="bubblechart"`,
		`data-store="A &amp; B &lt;Outlet&gt;"`,
		`class="quadrant-label" data-side="right"`,
		`class="legend"`,
		`TOTAL SALES`,
		`<script type="text/javascript">`,
		`fill="#0f1117"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, `visibility="visible"`) {
		t.Error("no tooltip should be visible without hover")
	}
	if strings.Contains(svg, `clip-path="url(#plot-clip)"`) {
		t.Error("unzoomed scene should not clip")
	}
}

func TestRenderSVGStatic(t *testing.T) {
	svg := string(RenderSVG(testScene(), WithInteraction(false), WithFontFamily("Inter, sans-serif")))
	wellFormed(t, []byte(svg))
	if strings.Contains(svg, "<script") || strings.Contains(svg, "<style") {
		t.Error("static SVG should carry no script or style")
	}
	if !strings.Contains(svg, `font-family="Inter, sans-serif"`) {
		t.Error("font family option not applied")
	}
}

func TestRenderSVGPlaceholder(t *testing.T) {
	s := bubble.Render(nil, fields, style.Default(), bubble.Size{})
	svg := string(RenderSVG(s))
	wellFormed(t, []byte(svg))

	if !strings.Contains(svg, bubble.Placeholder) {
		t.Error("placeholder message missing")
	}
	for _, unwanted := range []string{"<circle", "<script", "data-x-domain"} {
		if strings.Contains(svg, unwanted) {
			t.Errorf("placeholder SVG should not contain %q", unwanted)
		}
	}
}

func TestRenderSVGError(t *testing.T) {
	s := bubble.ErrorScene(style.Default(), bubble.Size{W: 300, H: 200}, errors.New("bad <input>"))
	svg := string(RenderSVG(s))
	if !strings.Contains(svg, "Render error: bad &lt;input&gt;") {
		t.Errorf("error message missing or unescaped:\n%s", svg)
	}
}

func TestRenderSVGHoverAndZoom(t *testing.T) {
	s := testScene()
	hovered := s.Hover(1)
	svg := string(RenderSVG(hovered))
	if got := strings.Count(svg, `visibility="visible"`); got != 1 {
		t.Errorf("visible tooltips = %d, want 1", got)
	}
	if !strings.Contains(svg, `data-for="bubble-1" data-w=`) {
		t.Error("tooltip for hovered bubble missing")
	}
	// The hovered bubble is drawn last.
	last := strings.LastIndex(svg, `class="bubble"`)
	if !strings.HasPrefix(svg[last:], `class="bubble" id="bubble-1"`) {
		t.Error("hovered bubble should be the last circle")
	}

	zoomed := string(RenderSVG(s.Zoom(scale.Transform{K: 2, X: -100, Y: -50})))
	wellFormed(t, []byte(zoomed))
	if !strings.Contains(zoomed, `clip-path="url(#plot-clip)"`) {
		t.Error("zoomed scene should clip to the plot")
	}
	if !strings.Contains(zoomed, `data-k="2" data-tx="-100" data-ty="-50"`) {
		t.Error("transform not recorded on the root element")
	}
}

func TestInteractionScriptResolved(t *testing.T) {
	if strings.Contains(interactionScript, "__") {
		t.Error("interaction script has unresolved placeholders")
	}
	for _, want := range []string{"fill-opacity', 1", "stroke-width', 2.5", "fill-opacity', 0.72"} {
		if !strings.Contains(interactionScript, want) {
			t.Errorf("interaction script missing %q", want)
		}
	}
}

func TestTooltipSize(t *testing.T) {
	small := tooltipSize(bubble.Tooltip{Title: "A", Rows: []bubble.TooltipRow{{Label: "x", Value: "1"}}})
	if small.W != tipMinWidth {
		t.Errorf("W = %v, want minimum %v", small.W, tipMinWidth)
	}
	if small.H != tipFirstRowY+tipPadBottom {
		t.Errorf("H = %v, want %v", small.H, tipFirstRowY+tipPadBottom)
	}

	long := tooltipSize(bubble.Tooltip{Title: strings.Repeat("W", 60)})
	if long.W <= tipMinWidth {
		t.Errorf("long title should widen the tooltip, got %v", long.W)
	}
}

func TestPx(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{100, "100"},
		{12.5, "12.5"},
		{1.234, "1.23"},
		{-0.001, "0"},
		{-6, "-6"},
	}
	for _, tt := range tests {
		if got := px(tt.in); got != tt.want {
			t.Errorf("px(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	for _, tt := range []struct {
		name  string
		scene bubble.Scene
		scale float64
		w, h  int
	}{
		{"chart", testScene(), 1, 600, 400},
		{"retina", testScene().Hover(0), 2, 1200, 800},
		{"placeholder", bubble.Render(nil, fields, style.Default(), bubble.Size{W: 300, H: 200}), 1, 300, 200},
	} {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(tt.scene, WithScale(tt.scale))
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
				t.Fatal("output is not a PNG")
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	opts := style.Default()
	s := testScene()
	data, err := RenderJSON(s, WithJSONVisualization("bubble_chart_store"), WithJSONOptions(opts))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if out.Visualization != "bubble_chart_store" {
		t.Errorf("Visualization = %q", out.Visualization)
	}
	if out.Options == nil || out.Options.ColorScheme != opts.ColorScheme {
		t.Errorf("Options not recorded: %+v", out.Options)
	}
	if out.Width != 600 || out.Height != 400 {
		t.Errorf("size = %vx%v, want 600x400", out.Width, out.Height)
	}
	if len(out.Bubbles) != 3 {
		t.Fatalf("Bubbles = %d, want 3", len(out.Bubbles))
	}
	if out.Bubbles[0].Datum.Store != "North" || out.Bubbles[0].R != s.Bubbles[0].R {
		t.Errorf("first bubble = %+v", out.Bubbles[0])
	}
	if out.Theme.Background != s.Theme.Background {
		t.Errorf("Theme.Background = %v, want %v", out.Theme.Background, s.Theme.Background)
	}
}

func TestRenderJSONHugeLogRange(t *testing.T) {
	opts := style.Default()
	opts.XAxisLogScale = true
	rows := []query.Row{
		row("North", 1, 48.5, 12000),
		row("South", 1e300, 61.2, 38000),
		row("West", -1e300, 55, 9000),
	}
	s := bubble.Render(rows, fields, opts, bubble.Size{W: 600, H: 400})
	if s.Error != "" {
		t.Fatalf("render error: %s", s.Error)
	}
	if _, err := RenderJSON(s); err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	wellFormed(t, RenderSVG(s))
}
