package shape

import "github.com/AureClai/scenecore/pkg/geom"

// Lerp morphs between s and other at blend t in [0,1], reparameterizing
// both paths to equal-length command streams and linearly interpolating
// corresponding commands. Line widths and per-curve colors lerp
// component-wise; FillStyle, StrokeStyle, Filled and Stroked are not
// blended but switch from s's value to other's at t=0.5.
//
// Per the deterministic resolution for differing command counts: the
// shorter path is padded by subdividing its longest segments (Bezier.Split
// at t=0.5) until both paths hold the same number of curves.
func (s *Shape) Lerp(other *Shape, t float64) *Shape {
	a := padToLength(s.Curves, len(other.Curves))
	b := padToLength(other.Curves, len(a))
	a = padToLength(a, len(b))

	curves := make([]geom.Bezier, len(a))
	for i := range a {
		curves[i] = lerpBezier(a[i], b[i], t)
	}

	result := &Shape{
		ID:          s.ID,
		ShapeID:     s.ShapeID,
		Curves:      curves,
		FillStyle:   pickAt(t, s.FillStyle, other.FillStyle),
		StrokeStyle: pickAt(t, s.StrokeStyle, other.StrokeStyle),
		LineWidth:   s.LineWidth + (other.LineWidth-s.LineWidth)*t,
		Filled:      pickBoolAt(t, s.Filled, other.Filled),
		Stroked:     pickBoolAt(t, s.Stroked, other.Stroked),
		log:         s.log,
	}
	if result.log == nil {
		result.log = other.log
	}
	result.Update()
	return result
}

// padToLength grows curves to target length by repeatedly splitting its
// longest (by control-polygon perimeter) segment at t=0.5.
func padToLength(curves []geom.Bezier, target int) []geom.Bezier {
	if len(curves) == 0 || target <= len(curves) {
		return curves
	}
	out := append([]geom.Bezier{}, curves...)
	for len(out) < target {
		worst := 0
		worstLen := -1.0
		for i, c := range out {
			l := controlPolygonLength(c)
			if l > worstLen {
				worstLen = l
				worst = i
			}
		}
		left, right := out[worst].Split(0.5)
		out = append(out[:worst], append([]geom.Bezier{left, right}, out[worst+1:]...)...)
	}
	return out
}

func controlPolygonLength(c geom.Bezier) float64 {
	return c.P0.Dist(c.P1) + c.P1.Dist(c.P2) + c.P2.Dist(c.P3)
}

func lerpBezier(a, b geom.Bezier, t float64) geom.Bezier {
	return geom.Bezier{
		P0:    a.P0.Lerp(b.P0, t),
		P1:    a.P1.Lerp(b.P1, t),
		P2:    a.P2.Lerp(b.P2, t),
		P3:    a.P3.Lerp(b.P3, t),
		Color: a.Color.Lerp(b.Color, t),
	}
}

func pickAt(t float64, a, b string) string {
	if t < 0.5 {
		return a
	}
	return b
}

func pickBoolAt(t float64, a, b bool) bool {
	if t < 0.5 {
		return a
	}
	return b
}
