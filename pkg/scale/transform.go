package scale

// Transform is a zoom/pan transform: a point p on screen moves to K*p + (X, Y).
type Transform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Identity is the transform that leaves every point in place.
var Identity = Transform{K: 1}

// IsIdentity reports whether t leaves every point in place. A zero K is
// treated as 1.
func (t Transform) IsIdentity() bool {
	return (t.K == 1 || t.K == 0) && t.X == 0 && t.Y == 0
}

func (t Transform) k() float64 {
	if t.K == 0 {
		return 1
	}
	return t.K
}

// ApplyX transforms a screen x coordinate.
func (t Transform) ApplyX(x float64) float64 { return x*t.k() + t.X }

// ApplyY transforms a screen y coordinate.
func (t Transform) ApplyY(y float64) float64 { return y*t.k() + t.Y }

// InvertX maps a transformed x coordinate back to the original screen space.
func (t Transform) InvertX(x float64) float64 { return (x - t.X) / t.k() }

// InvertY maps a transformed y coordinate back to the original screen space.
func (t Transform) InvertY(y float64) float64 { return (y - t.Y) / t.k() }

// RescaleX returns a copy of s whose domain is the data interval visible
// after applying t horizontally.
func (t Transform) RescaleX(s Scale) Scale {
	r0, r1 := s.Range()
	return s.WithDomain(s.Invert(t.InvertX(r0)), s.Invert(t.InvertX(r1)))
}

// RescaleY returns a copy of s whose domain is the data interval visible
// after applying t vertically.
func (t Transform) RescaleY(s Scale) Scale {
	r0, r1 := s.Range()
	return s.WithDomain(s.Invert(t.InvertY(r0)), s.Invert(t.InvertY(r1)))
}

// Then composes t with a further zoom about the point (px, py) by factor f.
func (t Transform) Then(f, px, py float64) Transform {
	k := t.k() * f
	return Transform{
		K: k,
		X: px - (px-t.X)*f,
		Y: py - (py-t.Y)*f,
	}
}

// Pan shifts the transform by (dx, dy) screen pixels.
func (t Transform) Pan(dx, dy float64) Transform {
	return Transform{K: t.k(), X: t.X + dx, Y: t.Y + dy}
}
