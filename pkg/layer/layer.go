// Package layer implements spec §4.F: the Layer tagged variant
// (VectorLayer/AudioTrack/VideoLayer), its Clips, and shape visibility at a
// given time.
package layer

import (
	"github.com/AureClai/scenecore/pkg/animdata"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/shape"
)

// Kind tags which variant a Layer is. Spec's inheritance hierarchy
// (VectorLayer/AudioTrack/VideoLayer as distinct types) is flattened to one
// struct with a Kind discriminator, per the redesign note on dynamic
// dispatch and subtyping.
type Kind int

const (
	KindVector Kind = iota
	KindAudio
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindAudio:
		return "audio"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// AudioKind distinguishes a raw-audio track from a MIDI track within
// KindAudio layers.
type AudioKind int

const (
	AudioKindAudio AudioKind = iota
	AudioKindMIDI
)

// ChildObject is the minimal surface a VectorLayer needs from a nested
// GraphicsObject without importing pkg/scene (which itself owns Layers,
// making a direct type dependency circular). pkg/scene's GraphicsObject
// implements this; the compositor, which legitimately needs both packages,
// type-asserts back to the concrete type where it needs more.
type ChildObject interface {
	ObjectID() id.ID
	Duration() float64
}

// Layer is a single layer of a GraphicsObject: either a VectorLayer
// (Shapes + Children), an AudioTrack (Clips of AudioKind), or a VideoLayer
// (Clips, optionally linked to an AudioTrack).
type Layer struct {
	ID      id.ID
	Kind    Kind
	Name    string
	Visible bool

	// Vector
	Shapes   []*shape.Shape
	Children []ChildObject

	// Audio
	AudioKind   AudioKind
	AudioClips  []*AudioClip
	LinkedVideo id.ID // weak ref to a VideoLayer, Nil if none

	// Video
	VideoClips  []*VideoClip
	LinkedAudio id.ID // weak ref to an AudioTrack, Nil if none

	AnimationData *animdata.AnimationData
}

// AudioClip is an opaque-to-the-core span of audio on an AudioTrack.
type AudioClip struct {
	ID              id.ID
	StartTime       float64
	Duration        float64
	Offset          float64
	SourcePoolIndex int
	Waveform        []float32
	LinkedVideoClip id.ID // weak ref, Nil if unlinked
}

// VideoClip is an opaque-to-the-core span of video on a VideoLayer.
type VideoClip struct {
	ID              id.ID
	StartTime       float64
	Duration        float64
	Offset          float64
	SourcePoolIndex int
	LinkedAudioClip id.ID // weak ref, Nil if unlinked
}

// NewVector creates an empty, visible VectorLayer.
func NewVector(name string) *Layer {
	return &Layer{
		ID:            id.New(),
		Kind:          KindVector,
		Name:          name,
		Visible:       true,
		AnimationData: animdata.New(),
	}
}

// NewAudio creates an empty AudioTrack of the given kind.
func NewAudio(name string, kind AudioKind) *Layer {
	return &Layer{
		ID:            id.New(),
		Kind:          KindAudio,
		Name:          name,
		Visible:       true,
		AudioKind:     kind,
		AnimationData: animdata.New(),
	}
}

// NewVideo creates an empty VideoLayer.
func NewVideo(name string) *Layer {
	return &Layer{
		ID:            id.New(),
		Kind:          KindVideo,
		Name:          name,
		Visible:       true,
		AnimationData: animdata.New(),
	}
}

// AddShape pushes shape into Shapes; on the first time shapeID appears, it
// seeds the exists/zOrder/shapeIndex keyframes at time (spec §4.F). Adding
// a second version with the same ShapeID does not re-seed.
func (l *Layer) AddShape(s *shape.Shape, t, timeResolution float64) {
	isFirst := true
	for _, existing := range l.Shapes {
		if existing.ShapeID == s.ShapeID {
			isFirst = false
			break
		}
	}
	l.Shapes = append(l.Shapes, s)
	if isFirst {
		zOrder := float64(l.logicalShapeCount() - 1)
		l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeExists, Target: s.ShapeID}.String(),
			curve.Keyframe{Time: t, Value: 1.0, Interpolation: curve.Hold}, timeResolution)
		l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: s.ShapeID}.String(),
			curve.Keyframe{Time: t, Value: zOrder, Interpolation: curve.Hold}, timeResolution)
		l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ShapeIndex, Target: s.ShapeID}.String(),
			curve.Keyframe{Time: t, Value: 0.0, Interpolation: curve.Linear}, timeResolution)
	}
}

// logicalShapeCount counts distinct ShapeIDs currently in Shapes.
func (l *Layer) logicalShapeCount() int {
	seen := make(map[id.ID]bool)
	for _, s := range l.Shapes {
		seen[s.ShapeID] = true
	}
	return len(seen)
}

// RemoveShape deletes s from Shapes by identity. Its curves are left
// intact, per spec, so undo can reinsert a shape that still has a live
// zOrder/exists/shapeIndex history.
func (l *Layer) RemoveShape(s *shape.Shape) {
	for i, existing := range l.Shapes {
		if existing == s {
			l.Shapes = append(l.Shapes[:i], l.Shapes[i+1:]...)
			return
		}
	}
}

// VisibleShapes returns, for every logical shape_id whose exists curve is
// positive at time, the list of Shape versions sharing that shape_id. The
// compositor (pkg/compositor) performs the morph selection across each
// returned group.
func (l *Layer) VisibleShapes(t float64) map[id.ID][]*shape.Shape {
	groups := make(map[id.ID][]*shape.Shape)
	for _, s := range l.Shapes {
		key := paramkey.Key{Kind: paramkey.ShapeExists, Target: s.ShapeID}.String()
		v, ok := l.AnimationData.Interpolate(key, t)
		exists, numeric := v.(float64)
		if !ok || !numeric || exists <= 0 {
			continue
		}
		groups[s.ShapeID] = append(groups[s.ShapeID], s)
	}
	return groups
}

// AddChild appends c to Children.
func (l *Layer) AddChild(c ChildObject) {
	l.Children = append(l.Children, c)
}

// RemoveChild removes c from Children by ObjectID, if present.
func (l *Layer) RemoveChild(objectID id.ID) {
	for i, c := range l.Children {
		if c.ObjectID() == objectID {
			l.Children = append(l.Children[:i], l.Children[i+1:]...)
			return
		}
	}
}

// Duration is max(AnimationData.Duration, every clip's start+duration).
func (l *Layer) Duration() float64 {
	max := l.AnimationData.Duration()
	for _, c := range l.AudioClips {
		if d := c.StartTime + c.Duration; d > max {
			max = d
		}
	}
	for _, c := range l.VideoClips {
		if d := c.StartTime + c.Duration; d > max {
			max = d
		}
	}
	return max
}
