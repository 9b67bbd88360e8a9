package action

import (
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
)

// DuplicateObjectPayload is the duplicateObject action's payload (spec
// §4.I): deep-clones Items with a fresh id under every node, then inserts
// the clones into Target at Time, each positioned at (OffsetX, OffsetY) in
// Parent's coordinates.
type DuplicateObjectPayload struct {
	Registry       *id.Registry
	Framerate      float64
	TimeResolution float64
	Parent         *scene.GraphicsObject
	Target         *layer.Layer
	Items          []*scene.GraphicsObject
	Time           float64
	OffsetX        float64
	OffsetY        float64

	clones []*scene.GraphicsObject
}

// DuplicateObject deep-clones payload.Items (remapping every id within each
// clone) and inserts them into the active layer at the current time.
func DuplicateObject(p *DuplicateObjectPayload) Record {
	return Record{
		Name:    "duplicateObject",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*DuplicateObjectPayload)
			target := p.Target
			if target == nil {
				target = p.Parent.ActiveLayer()
			}
			p.clones = p.clones[:0]
			for _, item := range p.Items {
				remap := make(map[id.ID]id.ID)
				clone := cloneGraphicsObject(item, p.Registry, remap, p.TimeResolution, p.Framerate)
				p.Parent.AddObject(clone, p.OffsetX, p.OffsetY, p.Time, target)
				p.clones = append(p.clones, clone)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*DuplicateObjectPayload)
			for _, c := range p.clones {
				p.Parent.RemoveChild(c.ID)
			}
		},
	}
}

// DeleteObjectsPayload is the deleteObjects action's payload: objects are
// marked not-existing at Time (a keyframe upsert), shapes are removed from
// Target's Shapes list outright, with both reversible per spec §4.I.
type DeleteObjectsPayload struct {
	Target         *layer.Layer
	Time           float64
	TimeResolution float64
	Objects        []id.ID
	Shapes         []*shape.Shape

	priorExists     map[id.ID]float64
	priorHadCurve   map[id.ID]bool
	removedAt       map[*shape.Shape]int
}

// DeleteObjects sets object.<id>.exists = 0 at Time for every id in
// Objects, and removes every Shape in Shapes from Target's Shapes list
// (curves are left intact so rollback, or a later undo of a recreate, can
// still reference them).
func DeleteObjects(p *DeleteObjectsPayload) Record {
	return Record{
		Name:    "deleteObjects",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*DeleteObjectsPayload)
			p.priorExists = make(map[id.ID]float64)
			p.priorHadCurve = make(map[id.ID]bool)
			for _, objID := range p.Objects {
				v, had := objectExistsAt(p.Target, objID, p.Time)
				p.priorExists[objID] = v
				p.priorHadCurve[objID] = had
				setObjectExists(p.Target, objID, p.Time, 0, p.TimeResolution)
			}

			p.removedAt = make(map[*shape.Shape]int)
			for _, s := range p.Shapes {
				for i, existing := range p.Target.Shapes {
					if existing == s {
						p.removedAt[s] = i
						break
					}
				}
				p.Target.RemoveShape(s)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*DeleteObjectsPayload)
			for _, objID := range p.Objects {
				if p.priorHadCurve[objID] {
					setObjectExists(p.Target, objID, p.Time, p.priorExists[objID], p.TimeResolution)
					continue
				}
				p.Target.AnimationData.RemoveCurve(paramkey.Key{Kind: paramkey.ObjectExists, Target: objID}.String())
			}
			for _, s := range p.Shapes {
				idx := p.removedAt[s]
				if idx < 0 || idx > len(p.Target.Shapes) {
					p.Target.Shapes = append(p.Target.Shapes, s)
					continue
				}
				p.Target.Shapes = append(p.Target.Shapes[:idx], append([]*shape.Shape{s}, p.Target.Shapes[idx:]...)...)
			}
		},
	}
}

// ObjectMove is one object's new (x, y) within a moveObjects action.
type ObjectMove struct {
	ChildID  id.ID
	NewX     float64
	NewY     float64
}

// MoveObjectsPayload is the moveObjects action's payload: records the prior
// position (and whether x/y keyframes existed at all) per item, so rollback
// can restore or remove them exactly (spec §4.I).
type MoveObjectsPayload struct {
	Target         *layer.Layer
	Time           float64
	TimeResolution float64
	Moves          []ObjectMove

	oldX, oldY   map[id.ID]float64
	hadKeyframes map[id.ID]bool
}

// MoveObjects upserts child.<id>.{x,y} keyframes at Time for every move.
func MoveObjects(p *MoveObjectsPayload) Record {
	return Record{
		Name:    "moveObjects",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*MoveObjectsPayload)
			p.oldX = make(map[id.ID]float64)
			p.oldY = make(map[id.ID]float64)
			p.hadKeyframes = make(map[id.ID]bool)
			for _, m := range p.Moves {
				x, y, ok := childPositionAt(p.Target, m.ChildID, p.Time)
				p.oldX[m.ChildID] = x
				p.oldY[m.ChildID] = y
				p.hadKeyframes[m.ChildID] = ok
				setChildPosition(p.Target, m.ChildID, p.Time, m.NewX, m.NewY, p.TimeResolution)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*MoveObjectsPayload)
			for _, m := range p.Moves {
				if p.hadKeyframes[m.ChildID] {
					setChildPosition(p.Target, m.ChildID, p.Time, p.oldX[m.ChildID], p.oldY[m.ChildID], p.TimeResolution)
					continue
				}
				p.Target.AnimationData.RemoveCurve(childXKey(m.ChildID))
				p.Target.AnimationData.RemoveCurve(childYKey(m.ChildID))
			}
		},
	}
}

// AddImageObjectPayload is the addImageObject action's payload: a
// GraphicsObject with a single image-textured rectangle as its only shape.
type AddImageObjectPayload struct {
	Registry       *id.Registry
	Framerate      float64
	TimeResolution float64
	Parent         *scene.GraphicsObject
	Target         *layer.Layer
	ImageRef       string
	ImportIndex    int
	Time           float64
	Width, Height  float64

	object *scene.GraphicsObject
}

const imageImportOffsetStep = 20.0

// AddImageObject creates a GraphicsObject whose sole shape is a
// FillImage-textured rectangle, placed at an offset proportional to
// ImportIndex so successive imports don't stack exactly atop each other.
func AddImageObject(p *AddImageObjectPayload) Record {
	return Record{
		Name:    "addImageObject",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddImageObjectPayload)
			obj := scene.New(p.Registry, "Image", p.Framerate)
			l := layer.NewVector("Image layer")
			obj.AddLayer(l)

			shapeID := id.New()
			s := shape.New(p.Registry, shapeID, 0, 0)
			w, h := p.Width, p.Height
			s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: w / 3, Y: 0}, P2: geom.Point{X: 2 * w / 3, Y: 0}, P3: geom.Point{X: w, Y: 0}})
			s.AddCurve(geom.Bezier{P0: geom.Point{X: w, Y: 0}, P1: geom.Point{X: w, Y: h / 3}, P2: geom.Point{X: w, Y: 2 * h / 3}, P3: geom.Point{X: w, Y: h}})
			s.AddCurve(geom.Bezier{P0: geom.Point{X: w, Y: h}, P1: geom.Point{X: 2 * w / 3, Y: h}, P2: geom.Point{X: w / 3, Y: h}, P3: geom.Point{X: 0, Y: h}})
			s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: h}, P1: geom.Point{X: 0, Y: 2 * h / 3}, P2: geom.Point{X: 0, Y: h / 3}, P3: geom.Point{X: 0, Y: 0}})
			s.FillImage = p.ImageRef
			s.Filled = true
			s.Stroked = false
			s.Update()
			l.AddShape(s, 0, p.TimeResolution)

			offset := float64(p.ImportIndex) * imageImportOffsetStep
			p.Parent.AddObject(obj, offset, offset, p.Time, p.Target)
			p.object = obj
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddImageObjectPayload)
			p.Parent.RemoveChild(p.object.ID)
		},
	}
}

func childXKey(childID id.ID) string {
	return paramkey.Key{Kind: paramkey.ChildX, Target: childID}.String()
}
func childYKey(childID id.ID) string {
	return paramkey.Key{Kind: paramkey.ChildY, Target: childID}.String()
}
