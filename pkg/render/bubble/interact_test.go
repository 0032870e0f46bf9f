package bubble

import (
	"testing"

	"github.com/matzehuels/bubblechart/pkg/scale"
	"github.com/matzehuels/bubblechart/pkg/style"
)

func TestZoomKeepsRadiiAndMovesTicks(t *testing.T) {
	s := Render(exampleRows(), fields, style.Default(), defaultSize)
	z := s.Zoom(scale.Transform{K: 2})

	if len(z.Bubbles) != len(s.Bubbles) {
		t.Fatalf("bubbles = %d, want %d", len(z.Bubbles), len(s.Bubbles))
	}
	for i := range s.Bubbles {
		if z.Bubbles[i].R != s.Bubbles[i].R {
			t.Errorf("bubble %d radius %v changed to %v", i, s.Bubbles[i].R, z.Bubbles[i].R)
		}
	}
	for i := range s.Legend.Entries {
		if z.Legend.Entries[i] != s.Legend.Entries[i] {
			t.Errorf("legend entry %d changed under zoom", i)
		}
	}

	if sameTicks(s.X.Ticks, z.X.Ticks) {
		t.Error("x ticks should be recomputed under zoom")
	}
	if sameTicks(s.Y.Ticks, z.Y.Ticks) {
		t.Error("y ticks should be recomputed under zoom")
	}
	if z.X.Domain[1]-z.X.Domain[0] >= s.X.Domain[1]-s.X.Domain[0] {
		t.Errorf("zoomed x domain %v should be narrower than %v", z.X.Domain, s.X.Domain)
	}
	if z.X.Base != s.X.Base {
		t.Error("base domain must not change")
	}
	if z.Transform.K != 2 {
		t.Errorf("Transform.K = %v, want 2", z.Transform.K)
	}

	// The original scene is untouched.
	if s.Transform != scale.Identity {
		t.Error("Zoom mutated the receiver")
	}
}

func TestZoomRepositionsElements(t *testing.T) {
	s := Render(exampleRows(), fields, style.Default(), defaultSize)
	tr := scale.Transform{K: 2, X: -100, Y: -50}
	z := s.Zoom(tr)

	for i, b := range s.Bubbles {
		zb := z.Bubbles[i]
		if !approxEq(zb.CX, tr.ApplyX(b.CX)) || !approxEq(zb.CY, tr.ApplyY(b.CY)) {
			t.Errorf("bubble %d at (%v, %v), want (%v, %v)", i, zb.CX, zb.CY, tr.ApplyX(b.CX), tr.ApplyY(b.CY))
		}
		if zb.Label.Y != zb.CY-zb.R-LabelGap {
			t.Errorf("bubble %d label not re-anchored", i)
		}
	}
	if !approxEq(z.Quadrants.Vertical.X1, tr.ApplyX(s.Quadrants.Vertical.X1)) {
		t.Errorf("vertical divider at %v, want %v", z.Quadrants.Vertical.X1, tr.ApplyX(s.Quadrants.Vertical.X1))
	}
	if !approxEq(z.Quadrants.Horizontal.Y1, tr.ApplyY(s.Quadrants.Horizontal.Y1)) {
		t.Errorf("horizontal divider at %v, want %v", z.Quadrants.Horizontal.Y1, tr.ApplyY(s.Quadrants.Horizontal.Y1))
	}
	if !approxEq(z.Quadrants.Labels[style.TopRight].X, z.Quadrants.Vertical.X1+6) {
		t.Error("right quadrant labels should follow the divider")
	}

	// Zoom is absolute: returning to identity restores the original layout.
	back := z.Zoom(scale.Identity)
	for i := range s.Bubbles {
		if !approxEq(back.Bubbles[i].CX, s.Bubbles[i].CX) {
			t.Errorf("bubble %d not restored: %v vs %v", i, back.Bubbles[i].CX, s.Bubbles[i].CX)
		}
	}
}

func TestZoomInvalidScale(t *testing.T) {
	s := Render(exampleRows(), fields, style.Default(), defaultSize)
	z := s.Zoom(scale.Transform{K: -3})
	if z.Transform.K != 1 {
		t.Errorf("K = %v, want 1 for non-positive input", z.Transform.K)
	}
}

func TestHover(t *testing.T) {
	s := Render(exampleRows(), fields, style.Default(), defaultSize)
	h := s.Hover(0)

	last := h.Bubbles[len(h.Bubbles)-1]
	if last.Datum.Store != "A" || !last.Hovered {
		t.Fatalf("last bubble = %s hovered=%v, want A raised", last.Datum.Store, last.Hovered)
	}
	if last.FillOpacity != 1 || last.StrokeWidth != 2.5 {
		t.Errorf("hovered style = %v / %v, want 1 / 2.5", last.FillOpacity, last.StrokeWidth)
	}
	rest := h.Bubbles[0]
	if rest.Hovered || rest.FillOpacity != 0.72 || rest.StrokeWidth != 1.5 {
		t.Errorf("resting style = %+v", rest)
	}
	if s.Bubbles[0].Datum.Store != "A" || s.Bubbles[0].Hovered {
		t.Error("Hover mutated the receiver")
	}

	moved := h.Hover(1)
	if b, ok := moved.Hovered(); !ok || b.Datum.Store != "B" {
		t.Errorf("Hovered() = %v, %v; want B", b.Datum.Store, ok)
	}
	for _, b := range moved.Bubbles {
		if b.Datum.Store == "A" && (b.Hovered || b.FillOpacity != FillOpacity) {
			t.Error("previous hover should be cleared")
		}
	}

	if _, ok := s.Hover(99).Hovered(); ok {
		t.Error("unknown index should not highlight")
	}
}

func TestBubbleAt(t *testing.T) {
	s := Render(exampleRows(), fields, style.Default(), defaultSize)
	b := bubbleFor(t, s, "B")
	if i, ok := s.BubbleAt(Point{X: b.CX, Y: b.CY}); !ok || i != b.Datum.Index {
		t.Errorf("BubbleAt(B centre) = %d, %v", i, ok)
	}
	if _, ok := s.BubbleAt(Point{X: -500, Y: -500}); ok {
		t.Error("BubbleAt(outside) should miss")
	}
}

func TestPlaceTooltip(t *testing.T) {
	viewport := Size{W: 600, H: 400}
	tip := Size{W: 220, H: 80}
	tests := []struct {
		name    string
		pointer Point
		want    Point
	}{
		{"default", Point{100, 100}, Point{114, 90}},
		{"flip left", Point{500, 100}, Point{266, 90}},
		{"flip up", Point{100, 380}, Point{114, 290}},
		{"flip both", Point{590, 390}, Point{356, 300}},
		{"clamp top", Point{100, 2}, Point{114, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlaceTooltip(tt.pointer, tip, viewport); got != tt.want {
				t.Errorf("PlaceTooltip(%v) = %v, want %v", tt.pointer, got, tt.want)
			}
		})
	}

	narrow := PlaceTooltip(Point{50, 50}, Size{W: 220, H: 80}, Size{W: 200, H: 400})
	if narrow.X != 0 {
		t.Errorf("narrow viewport x = %v, want clamped to 0", narrow.X)
	}
}

func sameTicks(a, b []Tick) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func approxEq(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
