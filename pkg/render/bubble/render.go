package bubble

import (
	"fmt"
	"runtime/debug"

	"github.com/matzehuels/bubblechart/pkg/format"
	"github.com/matzehuels/bubblechart/pkg/query"
	"github.com/matzehuels/bubblechart/pkg/scale"
	"github.com/matzehuels/bubblechart/pkg/style"
)

// Placeholder is shown when the query lacks the required fields or rows.
const Placeholder = "Add fields: Store · Discounts Redeemed · AOV with Discount · Total Sales"

// Default container size, used when the host reports zero.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// Tick counts.
const (
	XTicks = 6
	YTicks = 5
)

// Bubble appearance at rest and under hover.
const (
	FillOpacity      = 0.72
	HoverFillOpacity = 1.0
	StrokeWidth      = 1.5
	HoverStrokeWidth = 2.5
	StrokeOpacity    = 0.9
	LabelGap         = 5.0
)

// Fallback titles.
const (
	DefaultXTitle    = "Discounts Redeemed"
	DefaultYTitle    = "AOV with Discount"
	DefaultSizeTitle = "Total Sales"
)

// DefaultMargin matches the host tile layout.
var DefaultMargin = Margin{Top: 40, Right: 24, Bottom: 56, Left: 64}

// Render builds the scene for rows and fields. Field order is positional:
// index 0 labels bubbles, 1 to 3 are the X, Y and size measures.
func Render(rows []query.Row, fields []query.Field, opts style.Options, size Size) Scene {
	s := newScene(opts, size)
	if !query.Sufficient(rows, fields) {
		s.Message = Placeholder
		return s
	}
	data := query.MapRows(rows, fields)

	xs, ys := make([]float64, len(data)), make([]float64, len(data))
	sizes := make([]float64, len(data))
	for i, d := range data {
		xs[i], ys[i], sizes[i] = d.X, d.Y, d.Size
	}

	xBounds := scale.Bounds{Min: opts.XAxisMin, Max: opts.XAxisMax}
	yBounds := scale.Bounds{Min: opts.YAxisMin, Max: opts.YAxisMax}
	var x0, x1 float64
	if opts.XAxisLogScale {
		x0, x1 = scale.PaddedLogDomain(xs, xBounds)
	} else {
		x0, x1 = scale.PaddedDomain(xs, xBounds)
	}
	y0, y1 := scale.PaddedDomain(ys, yBounds)

	s.X = Axis{
		Title:    axisTitle(opts.XAxisTitle, fields[1], DefaultXTitle),
		Format:   opts.XFormat(),
		Log:      opts.XAxisLogScale,
		Base:     [2]float64{x0, x1},
		TitlePos: Point{X: s.Plot.W / 2, Y: s.Plot.H + 44},
	}
	s.Y = Axis{
		Title:    axisTitle(opts.YAxisTitle, fields[2], DefaultYTitle),
		Format:   opts.YFormat(),
		Base:     [2]float64{y0, y1},
		TitlePos: Point{X: -s.Plot.H / 2, Y: -50},
	}

	d0, d1 := scale.SizeDomain(sizes)
	rScale := scale.NewSqrt(d0, d1, opts.MinBubblePx, opts.MaxBubblePx)
	colors := style.NewOrdinal(opts.Palette())

	s.Bubbles = make([]Bubble, len(data))
	for i, d := range data {
		b := Bubble{
			Datum:         d,
			R:             rScale.Map(d.Size),
			Color:         colors.Color(d.Store),
			FillOpacity:   FillOpacity,
			StrokeWidth:   StrokeWidth,
			StrokeOpacity: StrokeOpacity,
			Tooltip:       tooltip(d, s.Currency),
		}
		if opts.ShowLabels {
			b.Label = &Point{}
		}
		s.Bubbles[i] = b
	}

	if opts.ShowQuadrants {
		s.Quadrants = &Quadrants{}
		for i, text := range opts.QuadrantLabels {
			s.Quadrants.Labels[i].Text = text
		}
	}
	if opts.ShowLegend {
		s.Legend = legend(sizes, rScale, legendTitle(fields[3]), s.Width, s.Height)
	}

	s.project(scale.Identity)
	return s
}

// RenderSafe is Render with panic recovery. A panic produces a scene showing
// "Render error: ..." and is also returned as an error.
func RenderSafe(rows []query.Row, fields []query.Field, opts style.Options, size Size) (s Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v\n%s", r, debug.Stack())
			s = ErrorScene(opts, size, fmt.Errorf("%v", r))
		}
	}()
	return render(rows, fields, opts, size), nil
}

// render is swapped in tests to exercise panic recovery.
var render = Render

// ErrorScene returns a scene that shows err inline.
func ErrorScene(opts style.Options, size Size, err error) Scene {
	s := newScene(opts, size)
	s.Error = "Render error: " + err.Error()
	return s
}

func newScene(opts style.Options, size Size) Scene {
	w, h := size.W, size.H
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	m := DefaultMargin
	currency := opts.CurrencySymbol
	if currency == "" {
		currency = format.DefaultCurrency
	}
	return Scene{
		Width:     w,
		Height:    h,
		Margin:    m,
		Plot:      Size{W: max(1, w-m.Left-m.Right), H: max(1, h-m.Top-m.Bottom)},
		Theme:     opts.Theme(),
		Currency:  currency,
		Transform: scale.Identity,
	}
}

func axisTitle(configured string, f query.Field, fallback string) string {
	if configured != "" {
		return configured
	}
	if f.Label != "" {
		return f.Label
	}
	if f.LabelShort != "" {
		return f.LabelShort
	}
	return fallback
}

func legendTitle(f query.Field) string {
	return axisTitle("", f, DefaultSizeTitle)
}

func tooltip(d query.Datum, currency string) Tooltip {
	sales := d.Rendered.Size
	if sales == "" {
		sales = format.Number(d.Size)
	}
	return Tooltip{
		Title: d.Store,
		Rows: []TooltipRow{
			{Label: DefaultXTitle, Value: format.Number(d.X)},
			{Label: DefaultYTitle, Value: format.Currency(d.Y, currency, 2)},
			{Label: DefaultSizeTitle, Value: sales},
		},
	}
}
