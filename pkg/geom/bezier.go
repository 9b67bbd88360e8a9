package geom

import "math"

// Bezier is a cubic Bezier segment with four ordered control points and a
// color. It is immutable in shape -- points are reassigned only via
// explicit edit (Translate, or direct field assignment by an owning Shape
// during an edit action), never mutated piecewise by the geometry routines
// themselves, which all return new values.
type Bezier struct {
	P0, P1, P2, P3 Point
	Color          Color
}

// PointAt evaluates the cubic Bezier at parameter t in [0,1].
func (b Bezier) PointAt(t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	c1 := 3 * mt * mt * t
	c2 := 3 * mt * t * t
	c3 := t * t * t
	return Point{
		X: a*b.P0.X + c1*b.P1.X + c2*b.P2.X + c3*b.P3.X,
		Y: a*b.P0.Y + c1*b.P1.Y + c2*b.P2.Y + c3*b.P3.Y,
	}
}

// derivativeAt evaluates the first derivative (tangent vector, unnormalized)
// of the cubic at parameter t.
func (b Bezier) derivativeAt(t float64) Point {
	mt := 1 - t
	a := 3 * mt * mt
	c1 := 6 * mt * t
	c2 := 3 * t * t
	return Point{
		X: a*(b.P1.X-b.P0.X) + c1*(b.P2.X-b.P1.X) + c2*(b.P3.X-b.P2.X),
		Y: a*(b.P1.Y-b.P0.Y) + c1*(b.P2.Y-b.P1.Y) + c2*(b.P3.Y-b.P2.Y),
	}
}

// BoundingBox returns the tight axis-aligned bounding box of the curve,
// found by solving for the roots of each axis's derivative (a quadratic in
// t) rather than merely bounding the four control points.
func (b Bezier) BoundingBox() Rect {
	box := EmptyRect()
	box.GrowPoint(b.P0)
	box.GrowPoint(b.P3)

	for _, t := range quadraticRoots(
		-b.P0.X+3*b.P1.X-3*b.P2.X+b.P3.X,
		2*b.P0.X-4*b.P1.X+2*b.P2.X,
		-b.P0.X+b.P1.X,
	) {
		if t > 0 && t < 1 {
			box.GrowPoint(b.PointAt(t))
		}
	}
	for _, t := range quadraticRoots(
		-b.P0.Y+3*b.P1.Y-3*b.P2.Y+b.P3.Y,
		2*b.P0.Y-4*b.P1.Y+2*b.P2.Y,
		-b.P0.Y+b.P1.Y,
	) {
		if t > 0 && t < 1 {
			box.GrowPoint(b.PointAt(t))
		}
	}
	return box
}

// quadraticRoots solves a*t^2 + b*t + c = 0 (the derivative of a cubic
// Bezier's single axis, up to a constant factor) and returns the real roots.
func quadraticRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// Split divides the curve at parameter t into two cubics covering [0,t] and
// [t,1] of the original, via de Casteljau's algorithm. Both halves keep the
// original color.
func (b Bezier) Split(t float64) (left, right Bezier) {
	p01 := b.P0.Lerp(b.P1, t)
	p12 := b.P1.Lerp(b.P2, t)
	p23 := b.P2.Lerp(b.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	p0123 := p012.Lerp(p123, t)

	left = Bezier{P0: b.P0, P1: p01, P2: p012, P3: p0123, Color: b.Color}
	right = Bezier{P0: p0123, P1: p123, P2: p23, P3: b.P3, Color: b.Color}
	return left, right
}

// Translate shifts every control point by (dx, dy).
func (b Bezier) Translate(dx, dy float64) Bezier {
	shift := Point{dx, dy}
	return Bezier{
		P0:    b.P0.Add(shift),
		P1:    b.P1.Add(shift),
		P2:    b.P2.Add(shift),
		P3:    b.P3.Add(shift),
		Color: b.Color,
	}
}

// IntersectionPair is one intersection between two curves, expressed as the
// parameter on each curve where the crossing occurs.
type IntersectionPair struct {
	T1, T2 float64
}

// flattenTolerance controls when the recursive subdivision used by
// Intersect treats a curve as "flat enough" to test as a line segment.
const flattenTolerance = 0.1

// isFlat reports whether b is close enough to its chord to be treated as a
// line segment for intersection purposes.
func (b Bezier) isFlat(tolerance float64) bool {
	chord := Point{b.P3.X - b.P0.X, b.P3.Y - b.P0.Y}
	chordLenSq := chord.X*chord.X + chord.Y*chord.Y
	if chordLenSq < 1e-9 {
		chordLenSq = 1e-9
	}

	dev := func(p Point) float64 {
		// Perpendicular distance from p to the line P0-P3.
		num := math.Abs((b.P3.X-b.P0.X)*(b.P0.Y-p.Y) - (b.P0.X-p.X)*(b.P3.Y-b.P0.Y))
		return num / math.Sqrt(chordLenSq)
	}
	return dev(b.P1) < tolerance && dev(b.P2) < tolerance
}

// segmentIntersect returns the intersection parameters of two line segments
// a0->a1 and b0->b1, if any.
func segmentIntersect(a0, a1, b0, b1 Point) (ta, tb float64, ok bool) {
	rX, rY := a1.X-a0.X, a1.Y-a0.Y
	sX, sY := b1.X-b0.X, b1.Y-b0.Y
	denom := rX*sY - rY*sX
	if math.Abs(denom) < 1e-12 {
		return 0, 0, false
	}
	qpX, qpY := b0.X-a0.X, b0.Y-a0.Y
	t := (qpX*sY - qpY*sX) / denom
	u := (qpX*rY - qpY*rX) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, 0, false
	}
	return t, u, true
}

// Intersect returns every (t1, t2) pair where b and other cross, found by
// recursive bounding-box subdivision (bbox reject, flatten-and-test-as-line
// otherwise). Intersection parameters are reported in [0,1] on each curve.
// Near-tangent crossings can yield duplicate t values extremely close
// together; callers collapse those with an epsilon (spec §4.C uses 0.01).
func (b Bezier) Intersect(other Bezier) []IntersectionPair {
	var out []IntersectionPair
	intersectRec(b, 0, 1, other, 0, 1, 0, &out)
	return out
}

func intersectRec(a Bezier, aLo, aHi float64, b Bezier, bLo, bHi float64, depth int, out *[]IntersectionPair) {
	const maxDepth = 24
	if !a.BoundingBox().Intersects(b.BoundingBox()) {
		return
	}
	if depth >= maxDepth || (a.isFlat(flattenTolerance) && b.isFlat(flattenTolerance)) {
		t1, t2, ok := segmentIntersect(a.P0, a.P3, b.P0, b.P3)
		if !ok {
			return
		}
		*out = append(*out, IntersectionPair{
			T1: aLo + t1*(aHi-aLo),
			T2: bLo + t2*(bHi-bLo),
		})
		return
	}

	aLeft, aRight := a.Split(0.5)
	bLeft, bRight := b.Split(0.5)
	aMid := (aLo + aHi) / 2
	bMid := (bLo + bHi) / 2

	intersectRec(aLeft, aLo, aMid, bLeft, bLo, bMid, depth+1, out)
	intersectRec(aLeft, aLo, aMid, bRight, bMid, bHi, depth+1, out)
	intersectRec(aRight, aMid, aHi, bLeft, bLo, bMid, depth+1, out)
	intersectRec(aRight, aMid, aHi, bRight, bMid, bHi, depth+1, out)
}
