package action_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/action"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timeResolution = 0.02

func rectShape(registry *id.Registry, shapeID id.ID) *shape.Shape {
	s := shape.New(registry, shapeID, 0, 0)
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 3, Y: 0}, P2: geom.Point{X: 7, Y: 0}, P3: geom.Point{X: 10, Y: 0}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 0}, P1: geom.Point{X: 10, Y: 3}, P2: geom.Point{X: 10, Y: 7}, P3: geom.Point{X: 10, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 10}, P1: geom.Point{X: 7, Y: 10}, P2: geom.Point{X: 3, Y: 10}, P3: geom.Point{X: 0, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 10}, P1: geom.Point{X: 0, Y: 7}, P2: geom.Point{X: 0, Y: 3}, P3: geom.Point{X: 0, Y: 0}})
	s.Update()
	return s
}

// TestAddShapeThenUndoRemovesItFromLayer covers scenario S1: create an
// action, confirm it mutates state, undo it, confirm the mutation reverts.
func TestAddShapeThenUndoRemovesItFromLayer(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	s := rectShape(registry, id.New())

	stack := action.NewStack()
	stack.Create(action.AddShape(&action.AddShapePayload{
		Target: l, Shape: s, Time: 0, TimeResolution: timeResolution,
	}))
	require.Len(t, l.Shapes, 1)

	require.True(t, stack.Undo())
	assert.Empty(t, l.Shapes)

	require.True(t, stack.Redo())
	assert.Len(t, l.Shapes, 1)
}

// TestAddShapeSendToBackDemotesExistingShapes covers scenario S2.
func TestAddShapeSendToBackDemotesExistingShapes(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	existingID := id.New()
	l.AddShape(rectShape(registry, existingID), 0, timeResolution)

	stack := action.NewStack()
	newID := id.New()
	stack.Create(action.AddShape(&action.AddShapePayload{
		Target: l, Shape: rectShape(registry, newID), Time: 0,
		TimeResolution: timeResolution, SendToBack: true,
	}))

	existingZ, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: existingID}.String(), 0)
	require.True(t, ok)
	newZ, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: newID}.String(), 0)
	require.True(t, ok)

	assert.Greater(t, existingZ.(float64), newZ.(float64))
}

// TestSendToBackReordersExactlyPerScenarioS5 checks the spec's own worked
// example: three shapes zOrdered 0,1,2 (A,B,C); sendToBack([B]) must yield
// A=1, B=0, C=2.
func TestSendToBackReordersExactlyPerScenarioS5(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	a, b, c := id.New(), id.New(), id.New()
	l.AddShape(rectShape(registry, a), 0, timeResolution)
	l.AddShape(rectShape(registry, b), 0, timeResolution)
	l.AddShape(rectShape(registry, c), 0, timeResolution)

	stack := action.NewStack()
	stack.Create(action.SendToBack(&action.ReorderPayload{
		Target: l, Time: 0, TimeResolution: timeResolution,
		SelectedShapes: []id.ID{b},
	}))

	zOf := func(sid id.ID) float64 {
		v, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: sid}.String(), 0)
		require.True(t, ok)
		return v.(float64)
	}
	assert.Equal(t, 1.0, zOf(a))
	assert.Equal(t, 0.0, zOf(b))
	assert.Equal(t, 2.0, zOf(c))

	require.True(t, stack.Undo())
	assert.Equal(t, 0.0, zOf(a))
	assert.Equal(t, 1.0, zOf(b))
	assert.Equal(t, 2.0, zOf(c))
}

func TestEditShapeRollbackRestoresOriginalCurves(t *testing.T) {
	registry := id.NewRegistry()
	s := rectShape(registry, id.New())
	original := append([]geom.Bezier{}, s.Curves...)

	replacement := []geom.Bezier{
		{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 1, Y: 0}, P2: geom.Point{X: 2, Y: 0}, P3: geom.Point{X: 3, Y: 0}},
	}

	stack := action.NewStack()
	stack.Create(action.EditShape(&action.EditShapePayload{Shape: s, NewCurves: replacement}))
	require.Len(t, s.Curves, 1)

	require.True(t, stack.Undo())
	assert.Equal(t, original, s.Curves)
}

func TestMoveObjectsRollbackRemovesCurveWhenNoneExistedBefore(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	childID := id.New()

	stack := action.NewStack()
	stack.Create(action.MoveObjects(&action.MoveObjectsPayload{
		Target: l, Time: 0, TimeResolution: timeResolution,
		Moves: []action.ObjectMove{{ChildID: childID, NewX: 5, NewY: 5}},
	}))
	_, ok := l.AnimationData.GetCurve(paramkey.Key{Kind: paramkey.ChildX, Target: childID}.String())
	require.True(t, ok)

	require.True(t, stack.Undo())
	_, ok = l.AnimationData.GetCurve(paramkey.Key{Kind: paramkey.ChildX, Target: childID}.String())
	assert.False(t, ok)
}

func TestContinuousFinalizeDropsNilPayload(t *testing.T) {
	stack := action.NewStack()
	ran := false
	c := action.NewContinuous("drag", nil,
		func(interface{}) { ran = true },
		func(interface{}) {})
	c.Finalize(stack, nil)
	assert.False(t, ran)
	assert.Equal(t, 0, stack.UndoLen())
}

func TestStackRedoClearsOnNewCreate(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	stack := action.NewStack()

	stack.Create(action.AddShape(&action.AddShapePayload{
		Target: l, Shape: rectShape(registry, id.New()), Time: 0, TimeResolution: timeResolution,
	}))
	require.True(t, stack.Undo())
	require.Equal(t, 1, stack.RedoLen())

	stack.Create(action.AddShape(&action.AddShapePayload{
		Target: l, Shape: rectShape(registry, id.New()), Time: 0, TimeResolution: timeResolution,
	}))
	assert.Equal(t, 0, stack.RedoLen())
}
