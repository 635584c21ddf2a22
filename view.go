// Package rodent provides the geometry shared by the mouse, input and scene
// packages.
package rodent

// View maps window coordinates to world coordinates.
//
// Origin holds the world coordinates of the top-left corner of the window. A
// zero Zoom is treated as 1.
type View struct {
	Origin Point
	Zoom   float64
}

func (v *View) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

// CenterOn moves the view so that the world point (x, y) sits at the center of
// a window of size w×h.
func (v *View) CenterOn(x, y float64, w, h int) {
	z := v.zoom()
	v.Origin.X = x - float64(w)/(2*z)
	v.Origin.Y = y - float64(h)/(2*z)
}

func (v *View) ScreenToWorld(p Point) Point {
	return p.Div(v.zoom()).Add(v.Origin)
}

func (v *View) WorldToScreen(p Point) Point {
	return p.Sub(v.Origin).Mul(v.zoom())
}
