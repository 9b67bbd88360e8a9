// Package scene implements spec §4.G: GraphicsObject, the nestable
// container of layers that the compositor walks to render a frame.
package scene

import (
	"math"

	"github.com/AureClai/scenecore/internal/logx"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
)

// Transform is a GraphicsObject's affine placement within its parent.
type Transform struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// DefaultTransform is the identity placement (unit scale, no rotation).
func DefaultTransform() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// GraphicsObject is a nestable container of Layers and AudioTracks with its
// own local clock. Ownership of Layers/AudioTracks is exclusive; Parent is
// a weak back-reference resolved through the shared Registry.
type GraphicsObject struct {
	ID   id.ID
	Name string

	Transform Transform

	Layers      []*layer.Layer // Vector and Video layers
	AudioTracks []*layer.Layer // Audio layers only

	CurrentTime        float64
	CurrentFrameNum    int
	CurrentLayer       int
	SelectedAudioTrack int // index into AudioTracks; -1 means none selected

	Parent id.ID // weak ref to the owning GraphicsObject; Nil if root

	registry  *id.Registry
	framerate float64
	log       *logx.Logger
}

// New creates a root-parented GraphicsObject and registers its id.
func New(registry *id.Registry, name string, framerate float64) *GraphicsObject {
	g := &GraphicsObject{
		ID:                 id.New(),
		Name:               name,
		Transform:          DefaultTransform(),
		SelectedAudioTrack: -1,
		registry:           registry,
		framerate:          framerate,
		log:                logx.Nop,
	}
	if registry != nil {
		registry.Insert(g.ID, g)
	}
	return g
}

// SetLogger overrides the diagnostic sink (default: discard).
func (g *GraphicsObject) SetLogger(l *logx.Logger) {
	g.log = l
}

// ObjectID implements layer.ChildObject.
func (g *GraphicsObject) ObjectID() id.ID { return g.ID }

// ActiveLayer is the selected audio track, if any, else layers[CurrentLayer].
func (g *GraphicsObject) ActiveLayer() *layer.Layer {
	if g.SelectedAudioTrack >= 0 && g.SelectedAudioTrack < len(g.AudioTracks) {
		return g.AudioTracks[g.SelectedAudioTrack]
	}
	if g.CurrentLayer >= 0 && g.CurrentLayer < len(g.Layers) {
		return g.Layers[g.CurrentLayer]
	}
	return nil
}

// AddLayer appends l to Layers (Vector/Video) or AudioTracks (Audio),
// binding this GraphicsObject as the layer's AnimationData owner so
// duration changes propagate upward per spec §4.E.
func (g *GraphicsObject) AddLayer(l *layer.Layer) {
	l.AnimationData.SetOwner(g)
	if l.Kind == layer.KindAudio {
		g.AudioTracks = append(g.AudioTracks, l)
	} else {
		g.Layers = append(g.Layers, l)
	}
}

// RemoveLayer removes l; if it was the active visual layer, CurrentLayer
// resets to 0.
func (g *GraphicsObject) RemoveLayer(l *layer.Layer) {
	if l.Kind == layer.KindAudio {
		for i, existing := range g.AudioTracks {
			if existing == l {
				g.AudioTracks = append(g.AudioTracks[:i], g.AudioTracks[i+1:]...)
				if g.SelectedAudioTrack == i {
					g.SelectedAudioTrack = -1
				}
				return
			}
		}
		return
	}
	for i, existing := range g.Layers {
		if existing == l {
			g.Layers = append(g.Layers[:i], g.Layers[i+1:]...)
			if g.CurrentLayer == i {
				g.CurrentLayer = 0
			}
			return
		}
	}
}

// AddObject adds child to target (or the active layer, if target is nil)
// at (x, y) and time t: sets child's weak parent, seeds its five transform
// curves (linear, single keyframe), its object-exists curve (hold), and
// its frameNumber curve's initial two-keyframe span, per spec §4.G.
func (g *GraphicsObject) AddObject(child *GraphicsObject, x, y, t float64, target *layer.Layer) {
	if target == nil {
		target = g.ActiveLayer()
	}
	if target == nil {
		return
	}
	target.AddChild(child)
	child.Parent = g.ID

	res := g.timeResolution()
	ad := target.AnimationData
	set := func(kind paramkey.Kind, value float64) {
		ad.AddKeyframe(paramkey.Key{Kind: kind, Target: child.ID}.String(),
			curve.Keyframe{Time: t, Value: value, Interpolation: curve.Linear}, res)
	}
	set(paramkey.ChildX, x)
	set(paramkey.ChildY, y)
	set(paramkey.ChildRotation, 0)
	set(paramkey.ChildScaleX, 1)
	set(paramkey.ChildScaleY, 1)

	ad.AddKeyframe(paramkey.Key{Kind: paramkey.ObjectExists, Target: child.ID}.String(),
		curve.Keyframe{Time: t, Value: 1.0, Interpolation: curve.Hold}, res)

	childDuration := child.Duration()
	step := 1 / g.framerate
	if childDuration < step {
		childDuration = step
	}
	frameKey := paramkey.Key{Kind: paramkey.ChildFrameNumber, Target: child.ID}.String()
	ad.AddKeyframe(frameKey, curve.Keyframe{Time: t, Value: 1.0, Interpolation: curve.Linear}, res)
	ad.AddKeyframe(frameKey, curve.Keyframe{
		Time:          t + childDuration,
		Value:         math.Ceil(childDuration*g.framerate) + 1,
		Interpolation: curve.Zero,
	}, res)
}

// RemoveChild filters childID out of every layer's children (Layers and
// AudioTracks). Curves are left untouched.
func (g *GraphicsObject) RemoveChild(childID id.ID) {
	for _, l := range g.Layers {
		l.RemoveChild(childID)
	}
	for _, l := range g.AudioTracks {
		l.RemoveChild(childID)
	}
}

// Duration is the max duration across every layer and audio track.
func (g *GraphicsObject) Duration() float64 {
	max := 0.0
	for _, l := range g.Layers {
		if d := l.Duration(); d > max {
			max = d
		}
	}
	for _, l := range g.AudioTracks {
		if d := l.Duration(); d > max {
			max = d
		}
	}
	return max
}

// SetTime clamps t to [0, inf) and updates CurrentTime/CurrentFrameNum.
func (g *GraphicsObject) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	g.CurrentTime = t
	g.CurrentFrameNum = int(math.Floor(t * g.framerate))
}

// AdvanceFrame/DecrementFrame step CurrentTime by one frame.
func (g *GraphicsObject) AdvanceFrame() {
	g.SetTime(g.CurrentTime + 1/g.framerate)
}

func (g *GraphicsObject) DecrementFrame() {
	g.SetTime(g.CurrentTime - 1/g.framerate)
}

func (g *GraphicsObject) timeResolution() float64 {
	if g.framerate <= 0 {
		return 1.0 / 48
	}
	return 1 / (2 * g.framerate)
}

// NotifyDurationChange implements animdata.Owner: called whenever one of
// g's own layers' AnimationData duration changes. It resolves g's parent
// (if any) through the Registry, finds the parent layer that holds g as a
// child, and updates that layer's child.<g.id>.frameNumber curve's last
// keyframe to match g's new rolled-up duration. This walk never recurses
// further up the tree -- the spec requires the update stay non-recursive
// to prevent cycles in deeply nested scenes.
func (g *GraphicsObject) NotifyDurationChange() {
	if g.Parent.IsNil() || g.registry == nil {
		return
	}
	handle, ok := g.registry.Get(g.Parent)
	if !ok {
		return
	}
	parent, ok := handle.(*GraphicsObject)
	if !ok {
		return
	}

	parentLayer := findLayerWithChild(parent.Layers, g.ID)
	if parentLayer == nil {
		return
	}
	frameKey := paramkey.Key{Kind: paramkey.ChildFrameNumber, Target: g.ID}.String()
	c, ok := parentLayer.AnimationData.GetCurve(frameKey)
	if !ok || c.Len() < 2 {
		return
	}

	duration := g.Duration()
	c.SetLastSilently(duration, math.Ceil(duration*g.framerate)+1)
}

func findLayerWithChild(layers []*layer.Layer, childID id.ID) *layer.Layer {
	for _, l := range layers {
		for _, c := range l.Children {
			if c.ObjectID() == childID {
				return l
			}
		}
	}
	return nil
}
