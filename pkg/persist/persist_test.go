package persist_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/persist"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const framerate = 24.0
const timeResolution = 0.02

func newRect(registry *id.Registry, shapeID id.ID) *shape.Shape {
	s := shape.New(registry, shapeID, 0, 0)
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 3, Y: 0}, P2: geom.Point{X: 7, Y: 0}, P3: geom.Point{X: 10, Y: 0}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 0}, P1: geom.Point{X: 10, Y: 3}, P2: geom.Point{X: 10, Y: 7}, P3: geom.Point{X: 10, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 10}, P1: geom.Point{X: 7, Y: 10}, P2: geom.Point{X: 3, Y: 10}, P3: geom.Point{X: 0, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 10}, P1: geom.Point{X: 0, Y: 7}, P2: geom.Point{X: 0, Y: 3}, P3: geom.Point{X: 0, Y: 0}})
	return s
}

func buildScene(registry *id.Registry) *scene.GraphicsObject {
	root := scene.New(registry, "root", framerate)
	l := layer.NewVector("layer 0")
	root.AddLayer(l)

	s := newRect(registry, id.New())
	s.FillStyle = "blue"
	s.Update()
	l.AddShape(s, 0, timeResolution)

	child := scene.New(registry, "child", framerate)
	root.AddObject(child, 5, 6, 0, l)
	return root
}

func TestMarshalUnmarshalRoundTripPreservesStructure(t *testing.T) {
	registry := id.NewRegistry()
	root := buildScene(registry)

	data, err := persist.MarshalScene(root)
	require.NoError(t, err)

	registry2 := id.NewRegistry()
	loaded, err := persist.UnmarshalScene(data, registry2, framerate, timeResolution, false)
	require.NoError(t, err)

	assert.Equal(t, root.ID, loaded.ID)
	require.Len(t, loaded.Layers, 1)
	require.Len(t, loaded.Layers[0].Shapes, 1)
	assert.Equal(t, "blue", loaded.Layers[0].Shapes[0].FillStyle)
	require.Len(t, loaded.Layers[0].Children, 1)
}

func TestUnmarshalWithRandomizeIDsMintsFreshIdentifiers(t *testing.T) {
	registry := id.NewRegistry()
	root := buildScene(registry)
	originalChildID := root.Layers[0].Children[0].ObjectID()

	data, err := persist.MarshalScene(root)
	require.NoError(t, err)

	registry2 := id.NewRegistry()
	clone, err := persist.UnmarshalScene(data, registry2, framerate, timeResolution, true)
	require.NoError(t, err)

	assert.NotEqual(t, root.ID, clone.ID)
	require.Len(t, clone.Layers[0].Children, 1)
	clonedChildID := clone.Layers[0].Children[0].ObjectID()
	assert.NotEqual(t, originalChildID, clonedChildID)

	key := paramkey.Key{Kind: paramkey.ChildX, Target: clonedChildID}.String()
	_, ok := clone.Layers[0].AnimationData.GetCurve(key)
	assert.True(t, ok)
}

func TestAnimationCurveRoundTripsKeyframeValues(t *testing.T) {
	c := curve.New("rotation")
	c.AddKeyframe(curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Linear}, timeResolution)
	c.AddKeyframe(curve.Keyframe{Time: 1, Value: 90.0, Interpolation: curve.Bezier}, timeResolution)

	dto := persist.AnimationCurveToDTO(c)
	restored := persist.AnimationCurveFromDTO(dto, timeResolution)

	require.Equal(t, 2, restored.Len())
	v, ok := restored.Interpolate(1)
	require.True(t, ok)
	assert.Equal(t, 90.0, v)
}

func TestLayerRoundTripPreservesNonDefaultShapeState(t *testing.T) {
	registry := id.NewRegistry()
	root := scene.New(registry, "root", framerate)
	l := layer.NewVector("layer 0")
	root.AddLayer(l)

	a := newRect(registry, id.New())
	b := newRect(registry, id.New())
	hidden := newRect(registry, id.New())
	l.AddShape(a, 0, timeResolution)
	l.AddShape(b, 0, timeResolution)
	l.AddShape(hidden, 0, timeResolution)

	// Mimic sendToBack([a]) and deleteObjects([hidden]): a's zOrder no
	// longer matches AddShape's fresh-seed default, and hidden's exists
	// curve is cleared rather than held at 1.
	l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: a.ShapeID}.String(),
		curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Hold}, timeResolution)
	l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: b.ShapeID}.String(),
		curve.Keyframe{Time: 0, Value: 1.0, Interpolation: curve.Hold}, timeResolution)
	l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeExists, Target: hidden.ShapeID}.String(),
		curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Hold}, timeResolution)

	data, err := persist.MarshalScene(root)
	require.NoError(t, err)

	registry2 := id.NewRegistry()
	loaded, err := persist.UnmarshalScene(data, registry2, framerate, timeResolution, false)
	require.NoError(t, err)

	ld := loaded.Layers[0]
	v, ok := ld.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: a.ShapeID}.String(), 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok = ld.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: b.ShapeID}.String(), 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	v, ok = ld.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeExists, Target: hidden.ShapeID}.String(), 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, v)
}

func TestShapeRoundTripPreservesCurvesAndStyle(t *testing.T) {
	registry := id.NewRegistry()
	s := newRect(registry, id.New())
	s.FillStyle = "green"
	s.LineWidth = 2.5
	s.Update()

	dto := persist.ShapeToDTO(s)
	registry2 := id.NewRegistry()
	restored := persist.ShapeFromDTO(dto, registry2, nil)

	assert.Equal(t, s.ShapeID, restored.ShapeID)
	assert.Equal(t, "green", restored.FillStyle)
	assert.Equal(t, 2.5, restored.LineWidth)
	require.Len(t, restored.Curves, len(s.Curves))
	assert.Equal(t, s.Curves[0].P0, restored.Curves[0].P0)
}
