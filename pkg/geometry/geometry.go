// Package geometry provides the planar primitives shared by the layout and
// routing computations. Coordinates are block-local meters with X increasing
// east and Y increasing south, matching the canvas convention of the editor,
// so "north" always means smaller Y.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FeetPerMeter converts meters to feet for procurement quantities.
const FeetPerMeter = 3.28084

// Point is a 2D point in block-local meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Add returns the sum of two points.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Rect is an axis-aligned rectangle in block-local meters.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains returns true if the point is inside the rectangle (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect returns true if the other rectangle lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(Point{X: o.X, Y: o.Y}) &&
		r.Contains(Point{X: o.X + o.Width, Y: o.Y + o.Height})
}

// RectilinearRoute returns the orthogonal point sequence from a to b,
// running horizontal first and then vertical. Points that already share
// an axis collapse to a two-point route.
func RectilinearRoute(a, b Point) []Point {
	if a.X == b.X || a.Y == b.Y {
		return []Point{a, b}
	}
	return []Point{a, {X: b.X, Y: a.Y}, b}
}

// PolylineLength sums the Euclidean length of the consecutive segments in
// pts. For rectilinear routes every segment is axis-aligned, so this equals
// the Manhattan length of the route.
func PolylineLength(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	segs := make([]float64, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, pts[i-1].Distance(pts[i]))
	}
	return floats.Sum(segs)
}

// MetersToFeet converts meters to feet.
func MetersToFeet(m float64) float64 {
	return m * FeetPerMeter
}

// FeetToMeters converts feet to meters.
func FeetToMeters(ft float64) float64 {
	return ft / FeetPerMeter
}

// SnapToIncrement snaps v to the nearest multiple of step. A non-positive
// step returns v unchanged.
func SnapToIncrement(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// CeilToIncrement rounds v up to the next multiple of step. A non-positive
// step returns v unchanged.
func CeilToIncrement(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Ceil(v/step-1e-9) * step
}
