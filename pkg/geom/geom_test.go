package geom_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() geom.Bezier {
	return geom.Bezier{
		P0: geom.Point{X: 0, Y: 0},
		P1: geom.Point{X: 50, Y: -50},
		P2: geom.Point{X: 100, Y: -50},
		P3: geom.Point{X: 100, Y: 0},
	}
}

func TestBezierBoundingBoxIsTight(t *testing.T) {
	b := square()
	box := b.BoundingBox()

	assert.InDelta(t, 0, box.MinX, 1e-6)
	assert.InDelta(t, 100, box.MaxX, 1e-6)
	assert.Less(t, box.MinY, 0.0, "bbox must account for the curve bulging above its endpoints")
	assert.InDelta(t, 0, box.MaxY, 1e-6)
}

func TestBezierSplitReproducesEndpoints(t *testing.T) {
	b := square()
	left, right := b.Split(0.5)

	assert.Equal(t, b.P0, left.P0)
	assert.Equal(t, b.P3, right.P3)
	assert.Equal(t, left.P3, right.P0, "split halves must share the midpoint")

	mid := b.PointAt(0.5)
	assert.InDelta(t, mid.X, left.P3.X, 1e-9)
	assert.InDelta(t, mid.Y, left.P3.Y, 1e-9)
}

func TestBezierTranslate(t *testing.T) {
	b := square()
	moved := b.Translate(10, -5)

	assert.Equal(t, geom.Point{X: 10, Y: -5}, moved.P0)
	assert.Equal(t, geom.Point{X: 110, Y: -5}, moved.P3)
}

func TestBezierIntersectCrossingLines(t *testing.T) {
	a := geom.Bezier{
		P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 33, Y: 33},
		P2: geom.Point{X: 66, Y: 66}, P3: geom.Point{X: 100, Y: 100},
	}
	b := geom.Bezier{
		P0: geom.Point{X: 0, Y: 100}, P1: geom.Point{X: 33, Y: 66},
		P2: geom.Point{X: 66, Y: 33}, P3: geom.Point{X: 100, Y: 0},
	}

	pairs := a.Intersect(b)
	require.Len(t, pairs, 1)
	assert.InDelta(t, 0.5, pairs[0].T1, 0.02)
	assert.InDelta(t, 0.5, pairs[0].T2, 0.02)
}

func TestBezierIntersectParallelNoCrossing(t *testing.T) {
	a := geom.Bezier{P0: geom.Point{0, 0}, P1: geom.Point{10, 0}, P2: geom.Point{20, 0}, P3: geom.Point{30, 0}}
	b := geom.Bezier{P0: geom.Point{0, 10}, P1: geom.Point{10, 10}, P2: geom.Point{20, 10}, P3: geom.Point{30, 10}}

	assert.Empty(t, a.Intersect(b))
}

func TestRectGrowAndUnion(t *testing.T) {
	r := geom.EmptyRect()
	assert.True(t, r.Empty())

	r.GrowPoint(geom.Point{X: 1, Y: 2})
	r.GrowPoint(geom.Point{X: -1, Y: 5})
	assert.False(t, r.Empty())
	assert.Equal(t, -1.0, r.MinX)
	assert.Equal(t, 5.0, r.MaxY)

	other := geom.Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 20}
	u := geom.Union(r, other)
	assert.Equal(t, -1.0, u.MinX)
	assert.Equal(t, 20.0, u.MaxX)
}

func TestQuadtreeInsertAndQuery(t *testing.T) {
	qt := geom.NewQuadtree(geom.Rect{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}, 2)

	boxes := []geom.Rect{
		{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
		{MinX: 500, MinY: 500, MaxX: 510, MaxY: 510},
		{MinX: 5, MinY: 5, MaxX: 15, MaxY: 15},
		{MinX: 900, MinY: 900, MaxX: 910, MaxY: 910},
	}
	for i, b := range boxes {
		qt.Insert(b, i)
	}

	found := qt.Query(geom.Rect{MinX: 0, MinY: 0, MaxX: 20, MaxY: 20})
	assert.ElementsMatch(t, []int{0, 2}, found)

	qt.Clear()
	assert.Empty(t, qt.Query(geom.Rect{MinX: 0, MinY: 0, MaxX: 1000, MaxY: 1000}))
}

func TestSimplifyPolylineCollapsesCollinearPoints(t *testing.T) {
	pts := []geom.Point{{0, 0}, {1, 0.01}, {2, -0.01}, {3, 0}, {4, 10}, {5, 0}}
	out := geom.SimplifyPolyline(pts, 1.0)

	assert.Equal(t, pts[0], out[0])
	assert.Equal(t, pts[len(pts)-1], out[len(out)-1])
	assert.Less(t, len(out), len(pts))
	assert.Contains(t, out, geom.Point{4, 10})
}

func TestDensifyInsertsPoints(t *testing.T) {
	pts := []geom.Point{{0, 0}, {10, 0}}
	out := geom.Densify(pts, 3)
	assert.Len(t, out, 5)
	assert.Equal(t, geom.Point{2.5, 0}, out[1])
}

func TestFitCurveStaysWithinTolerance(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 20; i++ {
		x := float64(i) * 5
		y := 0.02 * x * x
		pts = append(pts, geom.Point{X: x, Y: y})
	}

	curves := geom.FitCurve(pts, 2.0)
	require.NotEmpty(t, curves)
	assert.Equal(t, pts[0], curves[0].P0)
	assert.Equal(t, pts[len(pts)-1], curves[len(curves)-1].P3)
}
