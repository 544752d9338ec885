// Package geom holds the small amount of plane geometry shared by layout,
// overrides and interaction code.
package geom

import "math"

// Point is a position in layout units. Node positions are centers.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Unit returns p scaled to length 1, or the zero vector when p has no length.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Rect is an axis aligned box described by its center and half extents.
type Rect struct {
	Center Point
	HalfW  float64
	HalfH  float64
}

// Contains reports whether p lies inside or on the edge of r.
func (r Rect) Contains(p Point) bool {
	return math.Abs(p.X-r.Center.X) <= r.HalfW && math.Abs(p.Y-r.Center.Y) <= r.HalfH
}

// BoxBoundary returns where the segment from -> to enters the box of half
// extents halfW x halfH centered on to. When from is inside that box (or the
// two points coincide) the box center is returned.
func BoxBoundary(from, to Point, halfW, halfH float64) Point {
	d := to.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return to
	}
	if (Rect{Center: to, HalfW: halfW, HalfH: halfH}).Contains(from) {
		return to
	}

	// Scale the direction so it just reaches the nearest box side, measured
	// back from the target center.
	tx := math.Inf(1)
	if d.X != 0 {
		tx = halfW / math.Abs(d.X)
	}
	ty := math.Inf(1)
	if d.Y != 0 {
		ty = halfH / math.Abs(d.Y)
	}
	t := math.Min(tx, ty)
	return Point{X: to.X - d.X*t, Y: to.Y - d.Y*t}
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Sub(a).Len()
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := Point{X: a.X + ab.X*t, Y: a.Y + ab.Y*t}
	return p.Sub(closest).Len()
}
