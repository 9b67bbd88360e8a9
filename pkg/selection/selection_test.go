package selection_test

import (
	"math"
	"testing"

	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectThenRestorePrior(t *testing.T) {
	s := selection.New()
	a, b := id.New(), id.New()
	s.Select([]id.ID{a}, nil)
	require.True(t, s.Objects[a])

	s.Select([]id.ID{b}, nil)
	require.True(t, s.Objects[b])
	require.False(t, s.Objects[a])

	s.RestorePrior()
	assert.True(t, s.Objects[a])
	assert.False(t, s.Objects[b])
}

func TestSelectNoneClearsSelection(t *testing.T) {
	s := selection.New()
	s.Select([]id.ID{id.New()}, []id.ID{id.New()})
	s.SelectNone()
	assert.Empty(t, s.Objects)
	assert.Empty(t, s.Shapes)
}

func TestGetRotatedBoundingBoxUnrotatedMatchesLocalBBoxTranslated(t *testing.T) {
	item := selection.Transformable{
		X: 10, Y: 20,
		ScaleX: 1, ScaleY: 1,
		LocalBBox: geom.Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 2},
	}
	box := selection.GetRotatedBoundingBox(item)
	assert.InDelta(t, 10.0, box.MinX, 1e-9)
	assert.InDelta(t, 20.0, box.MinY, 1e-9)
	assert.InDelta(t, 14.0, box.MaxX, 1e-9)
	assert.InDelta(t, 22.0, box.MaxY, 1e-9)
}

func TestGetRotatedBoundingBoxQuarterTurnSwapsExtents(t *testing.T) {
	item := selection.Transformable{
		ScaleX: 1, ScaleY: 1,
		Rotation: math.Pi / 2,
		LocalBBox: geom.Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 2},
	}
	box := selection.GetRotatedBoundingBox(item)
	assert.InDelta(t, 2.0, box.Width(), 1e-9)
	assert.InDelta(t, 4.0, box.Height(), 1e-9)
}

func TestAggregateBoundingBoxUnionsItems(t *testing.T) {
	a := selection.Transformable{X: 0, Y: 0, ScaleX: 1, ScaleY: 1, LocalBBox: geom.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}}
	b := selection.Transformable{X: 10, Y: 10, ScaleX: 1, ScaleY: 1, LocalBBox: geom.Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}}
	box := selection.AggregateBoundingBox([]selection.Transformable{a, b})
	assert.InDelta(t, 0.0, box.MinX, 1e-9)
	assert.InDelta(t, 11.0, box.MaxX, 1e-9)
}

func TestDragTransformUpdateScalesOffsetFromBBoxCenter(t *testing.T) {
	item := selection.ItemState{ID: id.New(), X: 10, Y: 0, ScaleX: 1, ScaleY: 1}
	bbox := geom.Rect{MinX: 0, MinY: 0, MaxX: 20, MaxY: 10}
	d := selection.Initialize(bbox, geom.Point{X: 0, Y: 0}, []selection.ItemState{item})

	d.Update(geom.Point{X: 20, Y: 0})
	current := d.Finalize()
	require.Len(t, current, 1)
	assert.InDelta(t, 2.0, current[0].ScaleX, 1e-9)
	assert.InDelta(t, 10.0, current[0].X, 1e-9)
}
