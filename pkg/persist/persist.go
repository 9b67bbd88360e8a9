// Package persist implements spec §6's JSON scene format: marshaling and
// unmarshaling Shapes, AnimationCurves, AnimationData, Layers, and
// GraphicsObject trees to the type-discriminated JSON schema the source
// project files use, plus an id-randomizing load path for copy-paste.
//
// encoding/json is used directly rather than a third-party codec: none of
// the example repos pulls in one for this kind of structural,
// schema-stable document (the teacher's only serialization need, config,
// already uses gopkg.in/yaml.v2 via internal/config, which this package
// does not touch), and spec §6 pins an exact field layout encoding/json's
// struct tags express directly.
package persist

import (
	"encoding/json"
	"fmt"

	"github.com/AureClai/scenecore/pkg/animdata"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
)

// pointDTO/colorDTO/bezierDTO mirror geom's value types field-for-field.
type pointDTO struct {
	X, Y float64
}

type colorDTO struct {
	R, G, B, A uint8
}

type bezierDTO struct {
	P0, P1, P2, P3 pointDTO
	Color          colorDTO `json:"color"`
}

func toBezierDTO(b geom.Bezier) bezierDTO {
	return bezierDTO{
		P0:    pointDTO{b.P0.X, b.P0.Y},
		P1:    pointDTO{b.P1.X, b.P1.Y},
		P2:    pointDTO{b.P2.X, b.P2.Y},
		P3:    pointDTO{b.P3.X, b.P3.Y},
		Color: colorDTO{b.Color.R, b.Color.G, b.Color.B, b.Color.A},
	}
}

func (d bezierDTO) toBezier() geom.Bezier {
	return geom.Bezier{
		P0:    geom.Point{X: d.P0.X, Y: d.P0.Y},
		P1:    geom.Point{X: d.P1.X, Y: d.P1.Y},
		P2:    geom.Point{X: d.P2.X, Y: d.P2.Y},
		P3:    geom.Point{X: d.P3.X, Y: d.P3.Y},
		Color: geom.Color{R: d.Color.R, G: d.Color.G, B: d.Color.B, A: d.Color.A},
	}
}

// ShapeDTO is spec §6's persisted Shape record.
type ShapeDTO struct {
	Type        string      `json:"type"`
	Idx         id.ID       `json:"idx"`
	ShapeID     id.ID       `json:"shapeId"`
	StartX      float64     `json:"startx"`
	StartY      float64     `json:"starty"`
	Curves      []bezierDTO `json:"curves"`
	FillStyle   string      `json:"fillStyle"`
	FillImage   string      `json:"fillImage,omitempty"`
	StrokeStyle string      `json:"strokeStyle"`
	LineWidth   float64     `json:"lineWidth"`
	Filled      bool        `json:"filled"`
	Stroked     bool        `json:"stroked"`
	ShapeIndex  int         `json:"shapeIndex"`
	Regions     [][]int     `json:"regions,omitempty"`
}

// ShapeToDTO converts a live Shape to its persisted form.
func ShapeToDTO(s *shape.Shape) ShapeDTO {
	curves := make([]bezierDTO, len(s.Curves))
	for i, c := range s.Curves {
		curves[i] = toBezierDTO(c)
	}
	return ShapeDTO{
		Type:        "Shape",
		Idx:         s.ID,
		ShapeID:     s.ShapeID,
		StartX:      s.StartX,
		StartY:      s.StartY,
		Curves:      curves,
		FillStyle:   s.FillStyle,
		FillImage:   s.FillImage,
		StrokeStyle: s.StrokeStyle,
		LineWidth:   s.LineWidth,
		Filled:      s.Filled,
		Stroked:     s.Stroked,
		ShapeIndex:  s.ShapeIndex,
		Regions:     s.Regions(),
	}
}

// idRemap, if non-nil, assigns each source id a fresh one the first time
// it's seen and reuses it on subsequent lookups -- the mechanism both
// copy-paste and DuplicateObject use to keep a cloned subtree internally
// consistent while decoupling it from the original's identifiers.
type idRemap map[id.ID]id.ID

func (m idRemap) get(old id.ID) id.ID {
	if m == nil {
		return old
	}
	if new, ok := m[old]; ok {
		return new
	}
	n := id.New()
	m[old] = n
	return n
}

// ShapeFromDTO reconstructs a Shape from its persisted form, registering it
// under registry. If remap is non-nil, Idx and ShapeID are both assigned
// fresh ids (consistently, so multiple versions of one logical shape still
// share a ShapeID after remapping).
func ShapeFromDTO(d ShapeDTO, registry *id.Registry, remap idRemap) *shape.Shape {
	shapeID := remap.get(d.ShapeID)
	s := shape.New(registry, shapeID, d.StartX, d.StartY)
	if remap != nil {
		registry.Remove(s.ID)
		s.ID = remap.get(d.Idx)
		registry.Insert(s.ID, s)
	}
	for _, c := range d.Curves {
		s.AddCurve(c.toBezier())
	}
	s.FillStyle = d.FillStyle
	s.FillImage = d.FillImage
	s.StrokeStyle = d.StrokeStyle
	s.LineWidth = d.LineWidth
	s.Filled = d.Filled
	s.Stroked = d.Stroked
	s.ShapeIndex = d.ShapeIndex
	s.Update()
	return s
}

// KeyframeDTO is spec §6's persisted Keyframe record. Value is stored
// untyped so both numeric and string-valued curves round-trip.
type KeyframeDTO struct {
	Type          string      `json:"type"`
	ID            id.ID       `json:"id"`
	Time          float64     `json:"time"`
	Value         interface{} `json:"value"`
	Interpolation string      `json:"interpolation"`
	EaseIn        pointDTO    `json:"easeIn"`
	EaseOut       pointDTO    `json:"easeOut"`
}

func interpolationName(k curve.Interpolation) string {
	return k.String()
}

func interpolationFromName(s string) curve.Interpolation {
	switch s {
	case "linear":
		return curve.Linear
	case "bezier":
		return curve.Bezier
	case "step", "hold":
		return curve.Step
	case "zero":
		return curve.Zero
	default:
		return curve.Linear
	}
}

// KeyframeToDTO converts a live Keyframe to its persisted form.
func KeyframeToDTO(k curve.Keyframe) KeyframeDTO {
	return KeyframeDTO{
		Type:          "Keyframe",
		ID:            k.ID,
		Time:          k.Time,
		Value:         k.Value,
		Interpolation: interpolationName(k.Interpolation),
		EaseIn:        pointDTO{k.EaseIn.X, k.EaseIn.Y},
		EaseOut:       pointDTO{k.EaseOut.X, k.EaseOut.Y},
	}
}

// KeyframeFromDTO reconstructs a Keyframe, normalizing a JSON-decoded
// numeric Value (always float64 via encoding/json) back to float64 and
// leaving any other JSON type (string swatches) as-is.
func KeyframeFromDTO(d KeyframeDTO) curve.Keyframe {
	return curve.Keyframe{
		ID:            d.ID,
		Time:          d.Time,
		Value:         d.Value,
		Interpolation: interpolationFromName(d.Interpolation),
		EaseIn:        curve.EaseHandle{X: d.EaseIn.X, Y: d.EaseIn.Y},
		EaseOut:       curve.EaseHandle{X: d.EaseOut.X, Y: d.EaseOut.Y},
	}
}

// AnimationCurveDTO is spec §6's persisted AnimationCurve record.
type AnimationCurveDTO struct {
	Type          string        `json:"type"`
	ParameterName string        `json:"parameterName"`
	Keyframes     []KeyframeDTO `json:"keyframes"`
}

// AnimationCurveToDTO converts a live AnimationCurve to its persisted form.
func AnimationCurveToDTO(c *curve.AnimationCurve) AnimationCurveDTO {
	kfs := c.Keyframes()
	out := make([]KeyframeDTO, len(kfs))
	for i, k := range kfs {
		out[i] = KeyframeToDTO(k)
	}
	return AnimationCurveDTO{Type: "AnimationCurve", ParameterName: c.ParameterName, Keyframes: out}
}

// AnimationCurveFromDTO reconstructs an AnimationCurve. timeResolution is
// used only to satisfy AddKeyframe's coalescing signature; since the source
// keyframes are already deduplicated and ordered, any small positive value
// works.
func AnimationCurveFromDTO(d AnimationCurveDTO, timeResolution float64) *curve.AnimationCurve {
	c := curve.New(d.ParameterName)
	for _, kd := range d.Keyframes {
		c.AddKeyframe(KeyframeFromDTO(kd), timeResolution)
	}
	return c
}

// AnimationDataDTO is spec §6's persisted AnimationData record: a named map
// of curves rather than an array, since parameter names are already unique
// keys.
type AnimationDataDTO struct {
	Type   string                       `json:"type"`
	Curves map[string]AnimationCurveDTO `json:"curves"`
}

// AnimationDataToDTO converts a live AnimationData to its persisted form.
func AnimationDataToDTO(a *animdata.AnimationData) AnimationDataDTO {
	out := make(map[string]AnimationCurveDTO, len(a.CurveNames()))
	for _, name := range a.CurveNames() {
		c, _ := a.GetCurve(name)
		out[name] = AnimationCurveToDTO(c)
	}
	return AnimationDataDTO{Type: "AnimationData", Curves: out}
}

// AnimationDataFromDTO reconstructs an AnimationData. If remap is non-nil,
// every curve name's embedded id (per paramkey.ParseKey) is rewritten
// through remap so a pasted/duplicated subtree's curves reference the new
// ids instead of the original's.
func AnimationDataFromDTO(d AnimationDataDTO, remap idRemap, timeResolution float64) *animdata.AnimationData {
	a := animdata.New()
	for name, cd := range d.Curves {
		key := remapCurveKeyName(name, remap)
		a.SetCurve(key, AnimationCurveFromDTO(cd, timeResolution))
	}
	return a
}

// LayerDTO is spec §6's persisted Layer record, covering all three Kind
// variants in one shape (unused fields are simply omitted by Kind).
type LayerDTO struct {
	Type          string            `json:"type"`
	ID            id.ID             `json:"id"`
	Kind          string            `json:"kind"`
	Name          string            `json:"name"`
	Visible       bool              `json:"visible"`
	Shapes        []ShapeDTO        `json:"shapes,omitempty"`
	Children      []GraphicsObjectDTO `json:"children,omitempty"`
	AudioKind     string            `json:"audioKind,omitempty"`
	AudioClips    []AudioClipDTO    `json:"audioClips,omitempty"`
	LinkedVideo   id.ID             `json:"linkedVideo,omitempty"`
	VideoClips    []VideoClipDTO    `json:"videoClips,omitempty"`
	LinkedAudio   id.ID             `json:"linkedAudio,omitempty"`
	AnimationData AnimationDataDTO  `json:"animationData"`
}

// AudioClipDTO and VideoClipDTO mirror layer.AudioClip/VideoClip.
type AudioClipDTO struct {
	Type            string    `json:"type"`
	ID              id.ID     `json:"id"`
	StartTime       float64   `json:"startTime"`
	Duration        float64   `json:"duration"`
	Offset          float64   `json:"offset"`
	SourcePoolIndex int       `json:"sourcePoolIndex"`
	Waveform        []float32 `json:"waveform,omitempty"`
	LinkedVideoClip id.ID     `json:"linkedVideoClip,omitempty"`
}

type VideoClipDTO struct {
	Type            string  `json:"type"`
	ID              id.ID   `json:"id"`
	StartTime       float64 `json:"startTime"`
	Duration        float64 `json:"duration"`
	Offset          float64 `json:"offset"`
	SourcePoolIndex int     `json:"sourcePoolIndex"`
	LinkedAudioClip id.ID   `json:"linkedAudioClip,omitempty"`
}

func kindName(k layer.Kind) string { return k.String() }

func kindFromName(s string) layer.Kind {
	switch s {
	case "audio":
		return layer.KindAudio
	case "video":
		return layer.KindVideo
	default:
		return layer.KindVector
	}
}

func audioKindName(k layer.AudioKind) string {
	if k == layer.AudioKindMIDI {
		return "midi"
	}
	return "audio"
}

func audioKindFromName(s string) layer.AudioKind {
	if s == "midi" {
		return layer.AudioKindMIDI
	}
	return layer.AudioKindAudio
}

// LayerToDTO converts a live Layer to its persisted form, recursing into
// child GraphicsObjects for vector layers.
func LayerToDTO(l *layer.Layer) LayerDTO {
	d := LayerDTO{
		Type:          "Layer",
		ID:            l.ID,
		Kind:          kindName(l.Kind),
		Name:          l.Name,
		Visible:       l.Visible,
		AnimationData: AnimationDataToDTO(l.AnimationData),
		LinkedVideo:   l.LinkedVideo,
		LinkedAudio:   l.LinkedAudio,
	}
	for _, s := range l.Shapes {
		d.Shapes = append(d.Shapes, ShapeToDTO(s))
	}
	for _, c := range l.Children {
		obj, ok := c.(*scene.GraphicsObject)
		if !ok {
			continue
		}
		d.Children = append(d.Children, GraphicsObjectToDTO(obj))
	}
	if l.Kind == layer.KindAudio {
		d.AudioKind = audioKindName(l.AudioKind)
	}
	for _, c := range l.AudioClips {
		d.AudioClips = append(d.AudioClips, AudioClipDTO{
			Type: "AudioClip", ID: c.ID, StartTime: c.StartTime, Duration: c.Duration,
			Offset: c.Offset, SourcePoolIndex: c.SourcePoolIndex, Waveform: c.Waveform,
			LinkedVideoClip: c.LinkedVideoClip,
		})
	}
	for _, c := range l.VideoClips {
		d.VideoClips = append(d.VideoClips, VideoClipDTO{
			Type: "VideoClip", ID: c.ID, StartTime: c.StartTime, Duration: c.Duration,
			Offset: c.Offset, SourcePoolIndex: c.SourcePoolIndex, LinkedAudioClip: c.LinkedAudioClip,
		})
	}
	return d
}

// LayerFromDTO reconstructs a Layer and its nested children.
func LayerFromDTO(d LayerDTO, registry *id.Registry, remap idRemap, framerate, timeResolution float64) *layer.Layer {
	var l *layer.Layer
	switch kindFromName(d.Kind) {
	case layer.KindAudio:
		l = layer.NewAudio(d.Name, audioKindFromName(d.AudioKind))
	case layer.KindVideo:
		l = layer.NewVideo(d.Name)
	default:
		l = layer.NewVector(d.Name)
	}
	if remap != nil {
		l.ID = remap.get(d.ID)
	} else {
		l.ID = d.ID
	}
	l.Visible = d.Visible
	l.AnimationData = AnimationDataFromDTO(d.AnimationData, remap, timeResolution)

	for _, sd := range d.Shapes {
		// Append directly rather than via Layer.AddShape: AddShape seeds
		// exists/zOrder/shapeIndex keyframes at t=0 on a shape's first
		// appearance, which would overwrite the values AnimationDataFromDTO
		// just restored (e.g. a sendToBack'd zOrder or a deleteObjects'd
		// exists=0) with fresh defaults.
		l.Shapes = append(l.Shapes, ShapeFromDTO(sd, registry, remap))
	}
	for _, cd := range d.Children {
		l.AddChild(GraphicsObjectFromDTO(cd, registry, remap, framerate, timeResolution))
	}
	if remap != nil {
		if !d.LinkedVideo.IsNil() {
			l.LinkedVideo = remap.get(d.LinkedVideo)
		}
		if !d.LinkedAudio.IsNil() {
			l.LinkedAudio = remap.get(d.LinkedAudio)
		}
	} else {
		l.LinkedVideo = d.LinkedVideo
		l.LinkedAudio = d.LinkedAudio
	}
	for _, cd := range d.AudioClips {
		clip := &layer.AudioClip{
			ID: remap.get(cd.ID), StartTime: cd.StartTime, Duration: cd.Duration, Offset: cd.Offset,
			SourcePoolIndex: cd.SourcePoolIndex, Waveform: cd.Waveform, LinkedVideoClip: cd.LinkedVideoClip,
		}
		if remap != nil && !cd.LinkedVideoClip.IsNil() {
			clip.LinkedVideoClip = remap.get(cd.LinkedVideoClip)
		}
		l.AudioClips = append(l.AudioClips, clip)
	}
	for _, cd := range d.VideoClips {
		clip := &layer.VideoClip{
			ID: remap.get(cd.ID), StartTime: cd.StartTime, Duration: cd.Duration, Offset: cd.Offset,
			SourcePoolIndex: cd.SourcePoolIndex, LinkedAudioClip: cd.LinkedAudioClip,
		}
		if remap != nil && !cd.LinkedAudioClip.IsNil() {
			clip.LinkedAudioClip = remap.get(cd.LinkedAudioClip)
		}
		l.VideoClips = append(l.VideoClips, clip)
	}
	return l
}

// GraphicsObjectDTO is spec §6's persisted GraphicsObject record.
type GraphicsObjectDTO struct {
	Type        string     `json:"type"`
	ID          id.ID      `json:"id"`
	Name        string     `json:"name"`
	Transform   transformDTO `json:"transform"`
	Layers      []LayerDTO `json:"layers,omitempty"`
	AudioTracks []LayerDTO `json:"audioTracks,omitempty"`
}

type transformDTO struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// GraphicsObjectToDTO converts a live GraphicsObject tree to its persisted
// form, recursing through every layer's children.
func GraphicsObjectToDTO(g *scene.GraphicsObject) GraphicsObjectDTO {
	d := GraphicsObjectDTO{
		Type: "GraphicsObject",
		ID:   g.ID,
		Name: g.Name,
		Transform: transformDTO{
			X: g.Transform.X, Y: g.Transform.Y, Rotation: g.Transform.Rotation,
			ScaleX: g.Transform.ScaleX, ScaleY: g.Transform.ScaleY,
		},
	}
	for _, l := range g.Layers {
		d.Layers = append(d.Layers, LayerToDTO(l))
	}
	for _, l := range g.AudioTracks {
		d.AudioTracks = append(d.AudioTracks, LayerToDTO(l))
	}
	return d
}

// GraphicsObjectFromDTO reconstructs a GraphicsObject tree. If remap is
// non-nil, the whole tree (the object's own id, every layer, shape, clip,
// and child) is assigned fresh ids, and every animation-curve name
// referencing one of those old ids is rewritten to match -- this is the
// id-randomization path copy-paste and duplicateObject both need (spec §6).
func GraphicsObjectFromDTO(d GraphicsObjectDTO, registry *id.Registry, remap idRemap, framerate, timeResolution float64) *scene.GraphicsObject {
	g := scene.New(registry, d.Name, framerate)
	if remap != nil {
		if newID, seen := remap[d.ID]; seen {
			// a curve name in the parent layer already minted this object's new id
			if registry != nil {
				registry.Remove(g.ID)
				registry.Insert(newID, g)
			}
			g.ID = newID
		} else {
			remap[d.ID] = g.ID // reuse the id New() already minted and registered
		}
	} else if registry != nil {
		registry.Remove(g.ID)
		g.ID = d.ID
		registry.Insert(g.ID, g)
	} else {
		g.ID = d.ID
	}
	g.Transform.X = d.Transform.X
	g.Transform.Y = d.Transform.Y
	g.Transform.Rotation = d.Transform.Rotation
	g.Transform.ScaleX = d.Transform.ScaleX
	g.Transform.ScaleY = d.Transform.ScaleY

	for _, ld := range d.Layers {
		g.AddLayer(LayerFromDTO(ld, registry, remap, framerate, timeResolution))
	}
	for _, ld := range d.AudioTracks {
		g.AddLayer(LayerFromDTO(ld, registry, remap, framerate, timeResolution))
	}
	return g
}

// remapCurveKeyName rewrites a dynamic curve name's embedded id through
// remap, leaving names paramkey can't parse (custom parameter automation
// curve names, which carry no embedded id) untouched.
func remapCurveKeyName(name string, remap idRemap) string {
	if remap == nil {
		return name
	}
	key, ok := paramkey.ParseKey(name)
	if !ok {
		return name
	}
	key.Target = remap.get(key.Target)
	return key.String()
}

// MarshalScene serializes a GraphicsObject tree to indented JSON.
func MarshalScene(g *scene.GraphicsObject) ([]byte, error) {
	return json.MarshalIndent(GraphicsObjectToDTO(g), "", "  ")
}

// UnmarshalScene parses a persisted scene. When randomizeIDs is true, every
// id in the tree (and every curve name referencing one) is replaced with a
// freshly minted id, for copy-paste semantics; when false, the original ids
// are preserved, for loading a project as-is.
func UnmarshalScene(data []byte, registry *id.Registry, framerate, timeResolution float64, randomizeIDs bool) (*scene.GraphicsObject, error) {
	var d GraphicsObjectDTO
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("persist: unmarshal scene: %w", err)
	}
	var remap idRemap
	if randomizeIDs {
		remap = make(idRemap)
	}
	return GraphicsObjectFromDTO(d, registry, remap, framerate, timeResolution), nil
}
