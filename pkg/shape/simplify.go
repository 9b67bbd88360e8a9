package shape

import (
	"sort"

	"github.com/AureClai/scenecore/pkg/geom"
)

// SimplifyMode selects the path-reduction strategy for Simplify.
type SimplifyMode int

const (
	// ModeVerbatim leaves the curve list untouched beyond the
	// intersection-aware split every mode performs.
	ModeVerbatim SimplifyMode = iota
	// ModeCorners densifies endpoints then runs Ramer-Douglas-Peucker with
	// tolerance 10, preserving sharp corners.
	ModeCorners
	// ModeSmooth fits a new curve to the path's endpoints with tolerance 30,
	// producing a smoother, lower-fidelity outline.
	ModeSmooth
)

const (
	cornersTolerance     = 10.0
	smoothTolerance      = 30.0
	intersectionEpsilon  = 0.01
	densifyStepsPerCurve = 3
)

// Simplify reduces the path per mode, then re-splits the result at every
// pairwise curve intersection found via the quadtree, so crossing curves
// never draw with an ambiguous fill.
func (s *Shape) Simplify(mode SimplifyMode) {
	switch mode {
	case ModeCorners:
		pts := geom.Densify(s.endpointPolyline(), densifyStepsPerCurve)
		s.Curves = polylineToCurves(geom.SimplifyPolyline(pts, cornersTolerance))
	case ModeSmooth:
		pts := s.endpointPolyline()
		s.Curves = geom.FitCurve(pts, smoothTolerance)
	case ModeVerbatim:
		// no-op: keep curves as-is.
	}
	s.splitAtIntersections()
	s.Update()
}

// endpointPolyline returns the path's control-polygon endpoints: p0 of the
// first curve, then p3 of every curve in order.
func (s *Shape) endpointPolyline() []geom.Point {
	if len(s.Curves) == 0 {
		return nil
	}
	pts := make([]geom.Point, 0, len(s.Curves)+1)
	pts = append(pts, s.Curves[0].P0)
	for _, c := range s.Curves {
		pts = append(pts, c.P3)
	}
	return pts
}

// polylineToCurves turns a simplified polyline back into degenerate
// (straight-line) Beziers, matching AddLine's control-point convention.
func polylineToCurves(pts []geom.Point) []geom.Bezier {
	if len(pts) < 2 {
		return nil
	}
	curves := make([]geom.Bezier, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		from, to := pts[i], pts[i+1]
		mid := from.Lerp(to, 0.5)
		curves = append(curves, geom.Bezier{P0: from, P1: mid, P2: mid, P3: to})
	}
	return curves
}

// splitAtIntersections finds every pair of curves whose bounding boxes
// intersect (via the quadtree), computes their crossing parameters,
// collapses near-duplicate parameters within intersectionEpsilon, and
// splits each curve at its own parameters in descending order so indices
// already split stay valid. Path order is preserved modulo the splits.
func (s *Shape) splitAtIntersections() {
	if len(s.Curves) < 2 {
		return
	}
	qt := geom.NewQuadtree(geom.EmptyRect(), 4)
	for i, c := range s.Curves {
		qt.Insert(c.BoundingBox(), i)
	}

	paramsByCurve := make(map[int][]float64)
	for i, c := range s.Curves {
		box := c.BoundingBox()
		for _, j := range qt.Query(box) {
			if j <= i {
				continue
			}
			for _, pair := range c.Intersect(s.Curves[j]) {
				paramsByCurve[i] = append(paramsByCurve[i], pair.T1)
				paramsByCurve[j] = append(paramsByCurve[j], pair.T2)
			}
		}
	}
	if len(paramsByCurve) == 0 {
		return
	}

	var out []geom.Bezier
	for i, c := range s.Curves {
		ts := collapseParams(paramsByCurve[i], intersectionEpsilon)
		out = append(out, splitAtParams(c, ts)...)
	}
	s.Curves = out
}

// collapseParams sorts and deduplicates t values within epsilon of each
// other, keeping the first of each cluster, and drops values at the
// segment endpoints (splitting there is a no-op).
func collapseParams(ts []float64, epsilon float64) []float64 {
	if len(ts) == 0 {
		return nil
	}
	sort.Float64s(ts)
	var out []float64
	for _, t := range ts {
		if t <= epsilon || t >= 1-epsilon {
			continue
		}
		if len(out) == 0 || t-out[len(out)-1] > epsilon {
			out = append(out, t)
		}
	}
	return out
}

// splitAtParams splits c at every t in ts (parameters in the original
// curve's space), processing descending so each later, smaller t is
// re-expressed as a local parameter of the still-unsplit left remainder
// (Split's own parameter space is always [0,1] over whatever span its
// receiver currently covers).
func splitAtParams(c geom.Bezier, ts []float64) []geom.Bezier {
	if len(ts) == 0 {
		return []geom.Bezier{c}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ts)))

	var tail []geom.Bezier
	remaining := c
	bound := 1.0
	for _, t := range ts {
		localT := t / bound
		left, right := remaining.Split(localT)
		tail = append([]geom.Bezier{right}, tail...)
		remaining = left
		bound = t
	}
	return append([]geom.Bezier{remaining}, tail...)
}
