package rodent

import (
	"fmt"
	"image"
)

// Point is a position in window or world coordinates.
type Point struct {
	X float64
	Y float64
}

func PtPt(p image.Point) Point { return Point{float64(p.X), float64(p.Y)} }
func Pt(x, y float64) Point    { return Point{x, y} }
func PtI(x, y int) Point       { return Point{float64(x), float64(y)} }

func (p Point) Add(pt Point) Point  { return Point{p.X + pt.X, p.Y + pt.Y} }
func (p Point) Sub(pt Point) Point  { return Point{p.X - pt.X, p.Y - pt.Y} }
func (p Point) Div(k float64) Point { return Point{p.X / k, p.Y / k} }
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Eq(pt Point) bool    { return p.X == pt.X && p.Y == pt.Y }

// Dist2 returns the squared euclidean distance between p and pt.
func (p Point) Dist2(pt Point) float64 {
	dx, dy := p.X-pt.X, p.Y-pt.Y
	return dx*dx + dy*dy
}

func (p Point) In(r image.Rectangle) bool {
	return float64(r.Min.X) <= p.X && p.X < float64(r.Max.X) &&
		float64(r.Min.Y) <= p.Y && p.Y < float64(r.Max.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}
