package bubble

import (
	"slices"

	"github.com/matzehuels/bubblechart/pkg/scale"
)

// Tooltip offsets from the pointer.
const (
	TooltipOffsetX = 14.0
	TooltipOffsetY = 10.0
)

// Zoom returns a copy of s re-projected for the zoom/pan transform t. The
// transform is absolute: it is applied to the unzoomed scales, not composed
// with s.Transform. Ticks, gridlines, quadrant dividers and labels, bubble
// centres and store labels move; radii and the legend do not.
func (s Scene) Zoom(t scale.Transform) Scene {
	c := s.clone()
	if c.Empty() {
		return c
	}
	if t.K <= 0 {
		t.K = 1
	}
	c.project(t)
	return c
}

// Hover returns a copy of s with the bubble for datum index i raised to the
// top and highlighted. Every other bubble is returned to its resting style.
// An unknown index returns an unhighlighted copy.
func (s Scene) Hover(i int) Scene {
	c := s.clone()
	at := -1
	for j := range c.Bubbles {
		b := &c.Bubbles[j]
		b.Hovered = false
		b.FillOpacity = FillOpacity
		b.StrokeWidth = StrokeWidth
		if b.Datum.Index == i {
			at = j
		}
	}
	if at < 0 {
		return c
	}
	b := c.Bubbles[at]
	b.Hovered = true
	b.FillOpacity = HoverFillOpacity
	b.StrokeWidth = HoverStrokeWidth
	c.Bubbles = append(slices.Delete(c.Bubbles, at, at+1), b)
	return c
}

// Hovered returns the highlighted bubble, if any.
func (s Scene) Hovered() (Bubble, bool) {
	for _, b := range s.Bubbles {
		if b.Hovered {
			return b, true
		}
	}
	return Bubble{}, false
}

// PlaceTooltip positions a tooltip of size tip next to pointer so that it
// stays inside viewport. It sits right of and above the pointer, flips to the
// left when it would overflow the right edge, flips up when it would overflow
// the bottom, and is clamped to the top-left corner.
func PlaceTooltip(pointer Point, tip, viewport Size) Point {
	left := pointer.X + TooltipOffsetX
	if left+tip.W > viewport.W {
		left = pointer.X - TooltipOffsetX - tip.W
	}
	top := pointer.Y - TooltipOffsetY
	if top+tip.H > viewport.H {
		top = pointer.Y - TooltipOffsetY - tip.H
	}
	return Point{X: max(0, left), Y: max(0, top)}
}

// BubbleAt returns the datum index of the topmost bubble containing the
// plot-space point p.
func (s Scene) BubbleAt(p Point) (int, bool) {
	for j := len(s.Bubbles) - 1; j >= 0; j-- {
		b := s.Bubbles[j]
		dx, dy := p.X-b.CX, p.Y-b.CY
		if dx*dx+dy*dy <= b.R*b.R {
			return b.Datum.Index, true
		}
	}
	return 0, false
}

func (s Scene) clone() Scene {
	c := s
	c.X.Ticks = slices.Clone(s.X.Ticks)
	c.Y.Ticks = slices.Clone(s.Y.Ticks)
	c.Bubbles = make([]Bubble, len(s.Bubbles))
	for i, b := range s.Bubbles {
		if b.Label != nil {
			p := *b.Label
			b.Label = &p
		}
		b.Tooltip.Rows = slices.Clone(b.Tooltip.Rows)
		c.Bubbles[i] = b
	}
	if s.Quadrants != nil {
		q := *s.Quadrants
		c.Quadrants = &q
	}
	if s.Legend != nil {
		l := *s.Legend
		l.Entries = slices.Clone(s.Legend.Entries)
		c.Legend = &l
	}
	if len(s.Bubbles) == 0 {
		c.Bubbles = nil
	}
	return c
}
