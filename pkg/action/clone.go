package action

import (
	"github.com/AureClai/scenecore/pkg/animdata"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
)

// remapCurveName rewrites an id embedded in a "kind.<id>.suffix"-style
// curve name through remap, leaving the name untouched if it doesn't parse
// or its target isn't in remap.
func remapCurveName(name string, remap map[id.ID]id.ID) string {
	key, ok := paramkey.ParseKey(name)
	if !ok {
		return name
	}
	if newID, found := remap[key.Target]; found {
		key.Target = newID
	}
	return key.String()
}

// cloneAnimationData copies every curve of old into a fresh AnimationData,
// rewriting any id embedded in a curve's name through remap.
func cloneAnimationData(old *animdata.AnimationData, remap map[id.ID]id.ID, timeResolution float64) *animdata.AnimationData {
	out := animdata.New()
	for _, name := range old.CurveNames() {
		c, ok := old.GetCurve(name)
		if !ok {
			continue
		}
		newName := remapCurveName(name, remap)
		for _, kf := range c.Keyframes() {
			out.AddKeyframe(newName, kf, timeResolution)
		}
	}
	return out
}

// cloneShape copies s's geometry and render attributes under a fresh idx,
// reusing (or minting) a remapped shape_id so multiple versions of the same
// logical shape remap consistently.
func cloneShape(s *shape.Shape, registry *id.Registry, remap map[id.ID]id.ID) *shape.Shape {
	newShapeID, ok := remap[s.ShapeID]
	if !ok {
		newShapeID = id.New()
		remap[s.ShapeID] = newShapeID
	}
	clone := shape.New(registry, newShapeID, s.StartX, s.StartY)
	clone.Curves = append([]geom.Bezier{}, s.Curves...)
	clone.FillStyle = s.FillStyle
	clone.FillImage = s.FillImage
	clone.StrokeStyle = s.StrokeStyle
	clone.LineWidth = s.LineWidth
	clone.Filled = s.Filled
	clone.Stroked = s.Stroked
	clone.ShapeIndex = s.ShapeIndex
	clone.InProgress = s.InProgress
	clone.Update()
	remap[s.ID] = clone.ID
	return clone
}

// cloneLayer deep-clones a single Layer: its Shapes, its child
// GraphicsObjects (recursively), and its AnimationData (with every curve
// name's id rewritten through remap, which is populated by the shape and
// child clones performed earlier in this function).
func cloneLayer(l *layer.Layer, registry *id.Registry, remap map[id.ID]id.ID, timeResolution, framerate float64) *layer.Layer {
	var clone *layer.Layer
	switch l.Kind {
	case layer.KindAudio:
		clone = layer.NewAudio(l.Name, l.AudioKind)
	case layer.KindVideo:
		clone = layer.NewVideo(l.Name)
	default:
		clone = layer.NewVector(l.Name)
	}
	clone.Visible = l.Visible

	for _, s := range l.Shapes {
		clone.Shapes = append(clone.Shapes, cloneShape(s, registry, remap))
	}
	for _, c := range l.Children {
		if obj, ok := c.(*scene.GraphicsObject); ok {
			childClone := cloneGraphicsObject(obj, registry, remap, timeResolution, framerate)
			clone.AddChild(childClone)
		}
	}

	clone.AnimationData = cloneAnimationData(l.AnimationData, remap, timeResolution)
	return clone
}

// cloneGraphicsObject deep-clones obj and its entire nested tree with a
// fresh id at every level, per spec §4.I's duplicateObject: "deep-clones
// items with a UUID remap dictionary so identifiers within the clone are
// fresh".
func cloneGraphicsObject(obj *scene.GraphicsObject, registry *id.Registry, remap map[id.ID]id.ID, timeResolution, framerate float64) *scene.GraphicsObject {
	clone := scene.New(registry, obj.Name, framerate)
	remap[obj.ID] = clone.ID
	clone.Transform = obj.Transform
	clone.CurrentTime = obj.CurrentTime
	clone.CurrentLayer = obj.CurrentLayer
	clone.SelectedAudioTrack = obj.SelectedAudioTrack

	for _, l := range obj.Layers {
		clone.AddLayer(cloneLayer(l, registry, remap, timeResolution, framerate))
	}
	for _, l := range obj.AudioTracks {
		clone.AddLayer(cloneLayer(l, registry, remap, timeResolution, framerate))
	}
	return clone
}
