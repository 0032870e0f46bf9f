package bubble

import (
	"math"

	"github.com/matzehuels/bubblechart/pkg/format"
	"github.com/matzehuels/bubblechart/pkg/scale"
)

// QuadrantInset is the gap between the vertical divider and the labels of
// the right-hand quadrants.
const QuadrantInset = 6.0

// Label insets, in pixels from the plot or container edge.
const (
	quadrantEdgeX    = 4.0
	quadrantTopGap   = 14.0 // below the highest observed y
	quadrantBottomY  = 6.0
	legendRight      = 16.0
	legendBottom     = 14.0
	legendGap        = 10.0
	legendLabelSpace = 12.0
	legendTitleSpace = 8.0
)

// scales returns the unzoomed X and Y scales.
func (s Scene) scales() (x, y scale.Scale) {
	if s.X.Log {
		x = scale.NewLog(s.X.Base[0], s.X.Base[1], 0, s.Plot.W)
	} else {
		x = scale.NewLinear(s.X.Base[0], s.X.Base[1], 0, s.Plot.W)
	}
	y = scale.NewLinear(s.Y.Base[0], s.Y.Base[1], s.Plot.H, 0)
	return x, y
}

// project computes every positional element for transform t. Radii and the
// legend are left as they are.
func (s *Scene) project(t scale.Transform) {
	s.Transform = t
	bx, by := s.scales()
	xs, ys := t.RescaleX(bx), t.RescaleY(by)

	s.X.Domain[0], s.X.Domain[1] = xs.Domain()
	s.Y.Domain[0], s.Y.Domain[1] = ys.Domain()
	s.X.Ticks = ticks(xs, XTicks, s.X.Format, s.Currency)
	s.Y.Ticks = ticks(ys, YTicks, s.Y.Format, s.Currency)

	for i := range s.Bubbles {
		b := &s.Bubbles[i]
		b.CX = xs.Map(b.Datum.X)
		b.CY = ys.Map(b.Datum.Y)
		if b.Label != nil {
			b.Label = &Point{X: b.CX, Y: b.CY - b.R - LabelGap}
		}
	}

	if q := s.Quadrants; q != nil {
		q.XMid = bx.Mid()
		q.YMid = by.Mid()
		mx, my := xs.Map(q.XMid), ys.Map(q.YMid)
		q.Vertical = Line{X1: mx, Y1: 0, X2: mx, Y2: s.Plot.H}
		q.Horizontal = Line{X1: 0, Y1: my, X2: s.Plot.W, Y2: my}

		right := mx + QuadrantInset
		top := by.Map(s.maxY()) + quadrantTopGap
		bottom := s.Plot.H - quadrantBottomY
		pos := [4]Point{
			{X: right, Y: top},
			{X: quadrantEdgeX, Y: top},
			{X: right, Y: bottom},
			{X: quadrantEdgeX, Y: bottom},
		}
		for i := range q.Labels {
			q.Labels[i].X, q.Labels[i].Y = pos[i].X, pos[i].Y
		}
	}
}

// maxY returns the largest observed y value.
func (s Scene) maxY() float64 {
	m := math.Inf(-1)
	for _, b := range s.Bubbles {
		m = math.Max(m, b.Datum.Y)
	}
	if math.IsInf(m, -1) {
		return s.Y.Base[1]
	}
	return m
}

func ticks(sc scale.Scale, n int, kind format.Kind, currency string) []Tick {
	values := sc.Ticks(n)
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Value: v, Pos: sc.Map(v), Label: format.Axis(v, kind, currency)}
	}
	return out
}

// legend samples the size domain at min, midpoint and max, dropping
// duplicates, and lays the samples out left to right against the bottom-right
// corner of the container.
func legend(sizes []float64, r scale.Sqrt, title string, width, height float64) *Legend {
	lo, hi := sizes[0], sizes[0]
	for _, v := range sizes[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	var samples []float64
	for _, v := range []float64{lo, (lo + hi) / 2, hi} {
		dup := false
		for _, s := range samples {
			if s == v {
				dup = true
				break
			}
		}
		if !dup {
			samples = append(samples, v)
		}
	}

	entries := make([]LegendEntry, len(samples))
	total := legendGap * float64(len(samples)-1)
	tallest := 0.0
	for i, v := range samples {
		rad := r.Map(v)
		entries[i] = LegendEntry{Value: v, R: rad, Label: format.SI(v)}
		total += 2 * rad
		tallest = max(tallest, 2*rad)
	}

	labelY := height - legendBottom
	baseY := labelY - legendLabelSpace
	x := width - legendRight - total
	for i := range entries {
		e := &entries[i]
		e.CX = x + e.R
		e.CY = baseY - e.R
		e.LabelY = labelY
		x += 2*e.R + legendGap
	}

	return &Legend{
		Title:    title,
		TitlePos: Point{X: width - legendRight - total, Y: baseY - tallest - legendTitleSpace},
		Entries:  entries,
	}
}
