package action

import (
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/shape"
)

// AddShapePayload is the addShape action's payload (spec §4.I).
type AddShapePayload struct {
	Target         *layer.Layer
	Shape          *shape.Shape
	Time           float64
	SendToBack     bool
	TimeResolution float64

	priorZOrders map[id.ID]float64 // captured by Execute, consumed by Rollback
}

// AddShape adds shape to target at time: normally appended with zOrder =
// len(shapes)-1; on sendToBack, every other shape's zOrder keyframe at time
// is incremented by 1 first and the new shape's zOrder set to 0.
func AddShape(p *AddShapePayload) Record {
	return Record{
		Name:    "addShape",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddShapePayload)
			if p.SendToBack {
				p.priorZOrders = make(map[id.ID]float64)
				for _, sid := range distinctShapeIDs(p.Target) {
					z := zOrderAt(p.Target, sid, p.Time)
					p.priorZOrders[sid] = z
					setZOrder(p.Target, sid, p.Time, z+1, p.TimeResolution)
				}
			}
			p.Target.AddShape(p.Shape, p.Time, p.TimeResolution)
			if p.SendToBack {
				setZOrder(p.Target, p.Shape.ShapeID, p.Time, 0, p.TimeResolution)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddShapePayload)
			p.Target.RemoveShape(p.Shape)
			for sid, z := range p.priorZOrders {
				setZOrder(p.Target, sid, p.Time, z, p.TimeResolution)
			}
		},
	}
}

// EditShapePayload is the editShape action's payload: replaces a shape's
// curve list, storing the old one for rollback (spec §4.I).
type EditShapePayload struct {
	Shape     *shape.Shape
	NewCurves []geom.Bezier

	oldCurves []geom.Bezier
}

// EditShape replaces shape's curve list wholesale and recomputes its
// derived bbox/vertices/regions.
func EditShape(p *EditShapePayload) Record {
	return Record{
		Name:    "editShape",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*EditShapePayload)
			p.oldCurves = append([]geom.Bezier{}, p.Shape.Curves...)
			p.Shape.Curves = append([]geom.Bezier{}, p.NewCurves...)
			p.Shape.Update()
		},
		Rollback: func(payload interface{}) {
			p := payload.(*EditShapePayload)
			p.Shape.Curves = p.oldCurves
			p.Shape.Update()
		},
	}
}

// ColorShapePayload is the colorShape action's payload: sets fill/stroke
// style, storing the prior fill style for rollback.
type ColorShapePayload struct {
	Shape          *shape.Shape
	NewFillStyle   string
	NewStrokeStyle string

	oldFillStyle   string
	oldStrokeStyle string
}

// ColorShape fills/strokes shape with the new styles.
func ColorShape(p *ColorShapePayload) Record {
	return Record{
		Name:    "colorShape",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*ColorShapePayload)
			p.oldFillStyle = p.Shape.FillStyle
			p.oldStrokeStyle = p.Shape.StrokeStyle
			p.Shape.FillStyle = p.NewFillStyle
			p.Shape.StrokeStyle = p.NewStrokeStyle
		},
		Rollback: func(payload interface{}) {
			p := payload.(*ColorShapePayload)
			p.Shape.FillStyle = p.oldFillStyle
			p.Shape.StrokeStyle = p.oldStrokeStyle
		},
	}
}
