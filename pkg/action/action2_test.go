package action_test

import (
	"context"
	"testing"

	"github.com/AureClai/scenecore/pkg/action"
	"github.com/AureClai/scenecore/pkg/backend"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/selection"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const framerate = 24.0

func TestDeleteObjectsThenUndoRestoresShapes(t *testing.T) {
	registry := id.NewRegistry()
	l := layer.NewVector("layer 0")
	s := rectShape(registry, id.New())
	l.AddShape(s, 0, timeResolution)
	childID := id.New()

	stack := action.NewStack()
	stack.Create(action.DeleteObjects(&action.DeleteObjectsPayload{
		Target: l, Time: 0, TimeResolution: timeResolution,
		Objects: []id.ID{childID}, Shapes: []*shape.Shape{s},
	}))
	assert.Empty(t, l.Shapes)

	require.True(t, stack.Undo())
	require.Len(t, l.Shapes, 1)
}

func TestDuplicateObjectThenUndoRemovesClone(t *testing.T) {
	registry := id.NewRegistry()
	root := scene.New(registry, "root", framerate)
	l := layer.NewVector("layer 0")
	root.AddLayer(l)

	child := scene.New(registry, "child", framerate)
	root.AddObject(child, 1, 2, 0, l)
	require.Len(t, l.Children, 1)

	stack := action.NewStack()
	stack.Create(action.DuplicateObject(&action.DuplicateObjectPayload{
		Registry: registry, Framerate: framerate, TimeResolution: timeResolution,
		Parent: root, Target: l, Items: []*scene.GraphicsObject{child},
		Time: 0, OffsetX: 5, OffsetY: 5,
	}))
	require.Len(t, l.Children, 2)

	require.True(t, stack.Undo())
	assert.Len(t, l.Children, 1)
}

func TestAddLayerThenDeleteLayerRefusesLastLayer(t *testing.T) {
	registry := id.NewRegistry()
	root := scene.New(registry, "root", framerate)
	l := layer.NewVector("layer 0")
	root.AddLayer(l)

	stack := action.NewStack()
	stack.Create(action.DeleteLayer(&action.DeleteLayerPayload{Parent: root, Layer: l}))
	assert.Len(t, root.Layers, 1, "deleting the only layer must be a no-op")

	second := layer.NewVector("layer 1")
	stack.Create(action.AddLayer(&action.AddLayerPayload{Parent: root, Layer: second}))
	require.Len(t, root.Layers, 2)

	stack.Create(action.DeleteLayer(&action.DeleteLayerPayload{Parent: root, Layer: second}))
	assert.Len(t, root.Layers, 1)

	require.True(t, stack.Undo())
	assert.Len(t, root.Layers, 2)
}

func TestChangeLayerNameRollbackRestoresOriginal(t *testing.T) {
	l := layer.NewVector("original")
	stack := action.NewStack()
	stack.Create(action.ChangeLayerName(&action.ChangeLayerNamePayload{Layer: l, NewName: "renamed"}))
	assert.Equal(t, "renamed", l.Name)

	require.True(t, stack.Undo())
	assert.Equal(t, "original", l.Name)
}

func TestGroupMigratesShapeThenUndoRestoresItToSource(t *testing.T) {
	registry := id.NewRegistry()
	root := scene.New(registry, "root", framerate)
	source := layer.NewVector("source")
	root.AddLayer(source)

	s := rectShape(registry, id.New())
	source.AddShape(s, 0, timeResolution)

	stack := action.NewStack()
	stack.Create(action.Group(&action.GroupPayload{
		Registry: registry, Framerate: framerate, TimeResolution: timeResolution,
		Parent: root, Target: source, Source: source,
		Shapes: []*shape.Shape{s}, Time: 0,
	}))
	assert.Empty(t, source.Shapes, "grouped shape is migrated out of its source layer")
	require.Len(t, source.Children, 1, "the new group object is inserted into the target layer")

	require.True(t, stack.Undo())
	assert.Len(t, source.Shapes, 1)
	assert.Empty(t, source.Children)
}

func TestSelectNoneThenUndoRestoresPriorSelection(t *testing.T) {
	sel := selection.New()
	a := id.New()
	sel.Select([]id.ID{a}, nil)

	stack := action.NewStack()
	b := id.New()
	stack.Create(action.SelectNone(&action.SelectPayload{Selection: sel, Objects: []id.ID{b}}))
	assert.Empty(t, sel.Objects)

	require.True(t, stack.Undo())
	assert.True(t, sel.Objects[a])
}

func TestAddAudioReservesPlaceholderThenCompletesAsync(t *testing.T) {
	l := layer.NewAudio("track", layer.AudioKindAudio)
	fake := backend.NewFake()

	stack := action.NewStack()
	payload := &action.AddAudioPayload{DSP: fake, Track: l, Path: "song.wav", StartTime: 0}
	stack.Create(action.AddAudio(payload))
	require.Len(t, l.AudioClips, 1)
	assert.Equal(t, -1, l.AudioClips[0].SourcePoolIndex)

	action.StartAudioLoad(context.Background(), payload)
	assert.Equal(t, 0, l.AudioClips[0].SourcePoolIndex)
	assert.Equal(t, 1.0, l.AudioClips[0].Duration)
}

func TestAddAudioRollbackBeforeCompletionNoOpsTheAsyncFill(t *testing.T) {
	l := layer.NewAudio("track", layer.AudioKindAudio)
	fake := backend.NewFake()

	stack := action.NewStack()
	payload := &action.AddAudioPayload{DSP: fake, Track: l, Path: "song.wav", StartTime: 0}
	stack.Create(action.AddAudio(payload))
	require.True(t, stack.Undo())
	assert.Empty(t, l.AudioClips)

	action.StartAudioLoad(context.Background(), payload)
	assert.Empty(t, l.AudioClips, "completion after rollback must not resurrect the clip")
}

func TestAddVideoWithLinkAudioEstablishesMutualWeakLinks(t *testing.T) {
	videoTrack := layer.NewVideo("video")
	audioTrack := layer.NewAudio("audio", layer.AudioKindAudio)
	fake := backend.NewFake()

	stack := action.NewStack()
	payload := &action.AddVideoPayload{
		DSP: fake, Track: videoTrack, Path: "clip.mp4", StartTime: 0, LinkAudio: audioTrack,
	}
	stack.Create(action.AddVideo(payload))
	require.Len(t, videoTrack.VideoClips, 1)
	require.Len(t, audioTrack.AudioClips, 1)
	assert.Equal(t, audioTrack.AudioClips[0].ID, videoTrack.VideoClips[0].LinkedAudioClip)
	assert.Equal(t, videoTrack.VideoClips[0].ID, audioTrack.AudioClips[0].LinkedVideoClip)
	assert.Equal(t, audioTrack.ID, videoTrack.LinkedAudio)
	assert.Equal(t, videoTrack.ID, audioTrack.LinkedVideo)

	require.True(t, stack.Undo())
	assert.Empty(t, videoTrack.VideoClips)
	assert.Empty(t, audioTrack.AudioClips)
}

func TestGraphAddNodeThenUndoRemovesNodeFromBackend(t *testing.T) {
	l := layer.NewAudio("track", layer.AudioKindAudio)
	fake := backend.NewFake()

	stack := action.NewStack()
	payload := &action.GraphAddNodePayload{DSP: fake, Track: l, NodeType: "osc", X: 0, Y: 0}
	stack.Create(action.GraphAddNode(payload))
	require.NotEmpty(t, payload.NodeID())

	nodeB, err := fake.GraphAddNode(context.Background(), l.ID.String(), "gain", 10, 0)
	require.NoError(t, err)
	require.NoError(t, fake.GraphConnect(context.Background(), l.ID.String(), payload.NodeID(), "out", nodeB, "in"))

	require.True(t, stack.Undo())
	assert.Error(t, fake.GraphConnect(context.Background(), l.ID.String(), payload.NodeID(), "out", nodeB, "in"))
}

func TestGraphAddConnectionFromAutomationInputSeedsCurve(t *testing.T) {
	l := layer.NewAudio("track", layer.AudioKindAudio)
	fake := backend.NewFake()

	automationNode, err := fake.GraphAddNode(context.Background(), l.ID.String(), "automation_input", 0, 0)
	require.NoError(t, err)
	targetNode, err := fake.GraphAddNode(context.Background(), l.ID.String(), "gain", 10, 0)
	require.NoError(t, err)

	const curveName = "graph.filterCutoff"

	stack := action.NewStack()
	stack.Create(action.GraphAddConnection(&action.GraphConnectionPayload{
		DSP: fake, Track: l,
		FromNode: automationNode, FromPort: "out", ToNode: targetNode, ToPort: "gain",
		FromNodeType: "automation_input", ParamCurveName: curveName, TimeResolution: timeResolution,
	}))

	_, ok := l.AnimationData.GetCurve(curveName)
	assert.True(t, ok)

	require.True(t, stack.Undo())
	_, ok = l.AnimationData.GetCurve(curveName)
	assert.False(t, ok)
}

func TestGraphMoveNodeRollbackRestoresPriorPosition(t *testing.T) {
	positions := map[string][2]float64{"node-a": {1, 2}}

	stack := action.NewStack()
	stack.Create(action.GraphMoveNode(&action.GraphMoveNodePayload{
		NodeID: "node-a", NewX: 9, NewY: 9, Positions: &positions,
	}))
	assert.Equal(t, [2]float64{9, 9}, positions["node-a"])

	require.True(t, stack.Undo())
	assert.Equal(t, [2]float64{1, 2}, positions["node-a"])
}

func TestTransformObjectsRollbackRestoresPriorTransform(t *testing.T) {
	l := layer.NewVector("layer 0")
	itemID := id.New()

	stack := action.NewStack()
	stack.Create(action.TransformObjects(&action.TransformObjectsPayload{
		Target: l, Time: 0, TimeResolution: timeResolution,
		Items: []selection.ItemState{{ID: itemID, X: 5, Y: 5, Rotation: 1.2, ScaleX: 2, ScaleY: 2}},
	}))

	v, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildScaleX, Target: itemID}.String(), 0)
	require.True(t, ok)
	assert.Equal(t, 2.0, v.(float64))

	require.True(t, stack.Undo())
	v, ok = l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildScaleX, Target: itemID}.String(), 0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v.(float64))
}
