package shape_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square approximates the four-sided path from scenario S1.
func square(registry *id.Registry, shapeID id.ID) *shape.Shape {
	s := shape.New(registry, shapeID, 0, 0)
	s.AddLine(100, 0)
	s.AddLine(100, 100)
	s.AddLine(0, 100)
	s.AddLine(0, 0)
	s.Update()
	return s
}

// circleLike approximates a four-Bezier circle-ish path sharing square's
// footprint so S1's bbox-between assertion is meaningful.
func circleLike(registry *id.Registry, shapeID id.ID) *shape.Shape {
	s := shape.New(registry, shapeID, 50, 0)
	s.AddCurve(geom.Bezier{P0: geom.Point{50, 0}, P1: geom.Point{100, 0}, P2: geom.Point{100, 100}, P3: geom.Point{50, 100}})
	s.AddCurve(geom.Bezier{P0: geom.Point{50, 100}, P1: geom.Point{0, 100}, P2: geom.Point{0, 0}, P3: geom.Point{50, 0}})
	s.Update()
	return s
}

func TestShapeRegistersIDOnConstruction(t *testing.T) {
	r := id.NewRegistry()
	s := square(r, id.New())

	handle, ok := r.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, handle)
}

func TestAddLineSynthesizesDegenerateBezier(t *testing.T) {
	r := id.NewRegistry()
	s := shape.New(r, id.New(), 0, 0)
	s.AddLine(10, 0)

	require.Len(t, s.Curves, 1)
	c := s.Curves[0]
	assert.Equal(t, geom.Point{X: 0, Y: 0}, c.P0)
	assert.Equal(t, geom.Point{X: 10, Y: 0}, c.P3)
	assert.Equal(t, geom.Point{X: 5, Y: 0}, c.P1, "degenerate control points sit at the segment midpoint")
}

func TestUpdateSyncsStartPointAndBoundingBox(t *testing.T) {
	r := id.NewRegistry()
	s := square(r, id.New())

	assert.Equal(t, 0.0, s.StartX)
	assert.Equal(t, 0.0, s.StartY)
	box := s.BoundingBox()
	assert.InDelta(t, 0, box.MinX, 1e-6)
	assert.InDelta(t, 100, box.MaxX, 1e-6)
}

func TestUpdateVerticesMergesSharedEndpointsIntoOneRegion(t *testing.T) {
	r := id.NewRegistry()
	s := square(r, id.New())

	require.Len(t, s.Regions(), 1)
	assert.Len(t, s.Regions()[0], 4)
	assert.Len(t, s.Vertices(), 4, "closed square has 4 distinct merged vertices")
}

func TestLerpProducesBoundingBoxBetweenBothVersions(t *testing.T) {
	r := id.NewRegistry()
	shapeID := id.New()
	a := square(r, shapeID)
	b := circleLike(r, shapeID)

	morphed := a.Lerp(b, 0.5)
	morphedBox := morphed.BoundingBox()
	aBox := a.BoundingBox()
	bBox := b.BoundingBox()

	assert.Greater(t, morphedBox.MinX, aBox.MinX-1e-6)
	assert.Less(t, morphedBox.MaxX, bBox.MaxX+aBox.MaxX)
	assert.False(t, morphedBox.Empty())
}

func TestLerpPadsShorterPathToEqualCommandCount(t *testing.T) {
	r := id.NewRegistry()
	shapeID := id.New()
	a := shape.New(r, shapeID, 0, 0)
	a.AddLine(10, 0)
	a.Update()

	b := shape.New(r, shapeID, 0, 0)
	b.AddLine(5, 0)
	b.AddLine(10, 0)
	b.Update()

	morphed := a.Lerp(b, 0.5)
	assert.Len(t, morphed.Curves, 2)
}

func TestTranslateShiftsEveryControlPoint(t *testing.T) {
	r := id.NewRegistry()
	s := square(r, id.New())
	original := s.Curves[0].P0

	s.Translate(5, -5)
	assert.Equal(t, geom.Point{X: original.X + 5, Y: original.Y - 5}, s.Curves[0].P0)
	assert.Equal(t, original.X+5, s.StartX)
}

func TestSplitAtIntersectionsSplitsCrossingCurves(t *testing.T) {
	r := id.NewRegistry()
	s := shape.New(r, id.New(), 0, 50)
	s.AddCurve(geom.Bezier{P0: geom.Point{0, 50}, P1: geom.Point{33, 50}, P2: geom.Point{66, 50}, P3: geom.Point{100, 50}})

	crossing := shape.New(r, id.New(), 50, 0)
	crossing.AddCurve(geom.Bezier{P0: geom.Point{50, 0}, P1: geom.Point{50, 33}, P2: geom.Point{50, 66}, P3: geom.Point{50, 100}})

	merged := shape.New(r, id.New(), 0, 50)
	merged.Curves = append(merged.Curves, s.Curves...)
	merged.Curves = append(merged.Curves, crossing.Curves...)
	merged.Simplify(shape.ModeVerbatim)

	assert.Greater(t, len(merged.Curves), 2, "the two crossing curves should each be split at their intersection")
}
