package layer_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSquareShape(r *id.Registry, shapeID id.ID) *shape.Shape {
	s := shape.New(r, shapeID, 0, 0)
	s.AddLine(100, 0)
	s.AddLine(100, 100)
	s.AddLine(0, 0)
	s.Update()
	return s
}

func TestAddShapeSeedsKeyframesOnFirstVersion(t *testing.T) {
	r := id.NewRegistry()
	l := layer.NewVector("layer 1")
	shapeID := id.New()
	s := newSquareShape(r, shapeID)

	l.AddShape(s, 0, 0.02)

	require.Equal(t, []*shape.Shape{s}, l.Shapes)

	groups := l.VisibleShapes(0)
	require.Contains(t, groups, shapeID)
	assert.Equal(t, []*shape.Shape{s}, groups[shapeID])
}

func TestAddShapeSecondVersionDoesNotReseedZOrder(t *testing.T) {
	r := id.NewRegistry()
	l := layer.NewVector("layer 1")
	shapeID := id.New()

	v0 := newSquareShape(r, shapeID)
	v0.ShapeIndex = 0
	l.AddShape(v0, 0, 0.02)

	v1 := newSquareShape(r, shapeID)
	v1.ShapeIndex = 1
	l.AddShape(v1, 0, 0.02)

	groups := l.VisibleShapes(0)
	assert.Len(t, groups[shapeID], 2)
}

func TestAddShapeAssignsAscendingZOrderAcrossDistinctShapes(t *testing.T) {
	r := id.NewRegistry()
	l := layer.NewVector("layer 1")

	a := newSquareShape(r, id.New())
	b := newSquareShape(r, id.New())
	l.AddShape(a, 0, 0.02)
	l.AddShape(b, 0, 0.02)

	zA, ok := l.AnimationData.Interpolate("shape."+a.ShapeID.String()+".zOrder", 0)
	require.True(t, ok)
	zB, ok := l.AnimationData.Interpolate("shape."+b.ShapeID.String()+".zOrder", 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, zA)
	assert.Equal(t, 1.0, zB)
}

func TestRemoveShapeLeavesCurvesInPlace(t *testing.T) {
	r := id.NewRegistry()
	l := layer.NewVector("layer 1")
	s := newSquareShape(r, id.New())
	l.AddShape(s, 0, 0.02)

	l.RemoveShape(s)
	assert.Empty(t, l.Shapes)

	_, ok := l.AnimationData.GetCurve("shape." + s.ShapeID.String() + ".exists")
	assert.True(t, ok, "curves survive shape removal so undo can reinsert")
}

func TestVisibleShapesExcludesNonExistent(t *testing.T) {
	r := id.NewRegistry()
	l := layer.NewVector("layer 1")
	s := newSquareShape(r, id.New())
	l.AddShape(s, 0, 0.02)

	// Set the shape's exists curve to 0 while it stays in l.Shapes.
	l.AnimationData.AddKeyframe("shape."+s.ShapeID.String()+".exists",
		curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Hold}, 0.02)

	groups := l.VisibleShapes(0)
	assert.Empty(t, groups)
}

func TestDurationIsMaxOfAnimationDataAndClips(t *testing.T) {
	l := layer.NewVideo("video 1")
	l.VideoClips = append(l.VideoClips, &layer.VideoClip{StartTime: 2, Duration: 3})
	assert.Equal(t, 5.0, l.Duration())
}
