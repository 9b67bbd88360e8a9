package action

import (
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/selection"
)

// TransformObjectsPayload is the transformObjects continuous action's
// execute/rollback payload: the final, resolved per-item transform states
// a drag produced (spec §4.I).
type TransformObjectsPayload struct {
	Target         *layer.Layer
	Time           float64
	TimeResolution float64
	Items          []selection.ItemState

	priorX, priorY, priorRotation, priorScaleX, priorScaleY map[string]float64
}

// TransformObjects applies the final per-item (x, y, scale, rotation) state
// of a transformObjects drag. Use selection.DragTransform's
// Initialize/Update/Finalize to build Items during the drag itself; this
// Record is what Continuous.Finalize pushes onto the undo stack once the
// drag ends.
func TransformObjects(p *TransformObjectsPayload) Record {
	return Record{
		Name:    "transformObjects",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*TransformObjectsPayload)
			p.priorX = make(map[string]float64)
			p.priorY = make(map[string]float64)
			p.priorRotation = make(map[string]float64)
			p.priorScaleX = make(map[string]float64)
			p.priorScaleY = make(map[string]float64)

			for _, item := range p.Items {
				key := item.ID.String()
				if x, y, ok := childPositionAt(p.Target, item.ID, p.Time); ok {
					p.priorX[key] = x
					p.priorY[key] = y
				}
				p.priorRotation[key] = interpolateChildFloat(p.Target, rotationKey(item.ID), p.Time, 0)
				p.priorScaleX[key] = interpolateChildFloat(p.Target, scaleXKey(item.ID), p.Time, 1)
				p.priorScaleY[key] = interpolateChildFloat(p.Target, scaleYKey(item.ID), p.Time, 1)

				setChildPosition(p.Target, item.ID, p.Time, item.X, item.Y, p.TimeResolution)
				setChildFloat(p.Target, rotationKey(item.ID), p.Time, item.Rotation, p.TimeResolution)
				setChildFloat(p.Target, scaleXKey(item.ID), p.Time, item.ScaleX, p.TimeResolution)
				setChildFloat(p.Target, scaleYKey(item.ID), p.Time, item.ScaleY, p.TimeResolution)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*TransformObjectsPayload)
			for _, item := range p.Items {
				key := item.ID.String()
				setChildPosition(p.Target, item.ID, p.Time, p.priorX[key], p.priorY[key], p.TimeResolution)
				setChildFloat(p.Target, rotationKey(item.ID), p.Time, p.priorRotation[key], p.TimeResolution)
				setChildFloat(p.Target, scaleXKey(item.ID), p.Time, p.priorScaleX[key], p.TimeResolution)
				setChildFloat(p.Target, scaleYKey(item.ID), p.Time, p.priorScaleY[key], p.TimeResolution)
			}
		},
	}
}
