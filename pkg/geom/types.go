// Package geom implements the Bezier and geometry primitives of spec §4.B:
// cubic Beziers, tight bounding boxes, splitting, pairwise intersection,
// curve fitting, polyline simplification, and a quadtree used to keep
// pairwise intersection tests near-linear during shape cleanup.
package geom

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Add returns p+o.
func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }

// Sub returns p-o.
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Lerp linearly interpolates between p and o at parameter t.
func (p Point) Lerp(o Point, t float64) Point {
	return Point{p.X + (o.X-p.X)*t, p.Y + (o.Y-p.Y)*t}
}

// Color is an RGBA color used by Bezier segments and Shape fill/stroke
// styles. Components are lerped in RGB component-wise per spec §4.C.
type Color struct {
	R, G, B, A uint8
}

// Lerp blends c toward o at parameter t, component-wise in RGB (and alpha).
func (c Color) Lerp(o Color, t float64) Color {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{
		R: lerp(c.R, o.R),
		G: lerp(c.G, o.G),
		B: lerp(c.B, o.B),
		A: lerp(c.A, o.A),
	}
}

// Rect is an axis-aligned bounding box. An empty Rect has Max < Min on both
// axes; use Rect.Empty to test for it and GrowPoint/GrowBoundingBox/Union to accumulate one from
// a stream of points or other Rects.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect returns a Rect that contains nothing; the first GrowPoint/Union
// applied to it adopts the incoming bounds exactly.
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
}

// Empty reports whether the Rect contains no points.
func (r Rect) Empty() bool {
	return r.MaxX < r.MinX || r.MaxY < r.MinY
}

// GrowPoint enlarges r in place to cover p.
func (r *Rect) GrowPoint(p Point) {
	if p.X < r.MinX {
		r.MinX = p.X
	}
	if p.Y < r.MinY {
		r.MinY = p.Y
	}
	if p.X > r.MaxX {
		r.MaxX = p.X
	}
	if p.Y > r.MaxY {
		r.MaxY = p.Y
	}
}

// GrowBoundingBox enlarges a in place to cover b (spec §4.J).
func GrowBoundingBox(a *Rect, b Rect) {
	if b.Empty() {
		return
	}
	a.GrowPoint(Point{b.MinX, b.MinY})
	a.GrowPoint(Point{b.MaxX, b.MaxY})
}

// Union returns the smallest Rect containing both a and b.
func Union(a, b Rect) Rect {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	out := a
	GrowBoundingBox(&out, b)
	return out
}

// Intersects reports whether a and b overlap (touching edges count as
// overlap, matching the quadtree's conservative query semantics).
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX &&
		r.MinY <= o.MaxY && r.MaxY >= o.MinY
}

// Width and Height of the Rect.
func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Translate shifts r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{r.MinX + dx, r.MinY + dy, r.MaxX + dx, r.MaxY + dy}
}
