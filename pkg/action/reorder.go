package action

import (
	"sort"

	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
)

// ReorderPayload is the sendToBack/bringToFront action's payload: recomputes
// every shape's zOrder keyframe at Time so the selected set ends up
// strictly below (sendToBack) or above (bringToFront) every shape outside
// it, and moves the corresponding child GraphicsObjects to the matching end
// of their layer's Children list (spec §4.I, tested by scenario S5).
type ReorderPayload struct {
	Target         *layer.Layer
	Time           float64
	TimeResolution float64
	SelectedShapes []id.ID
	SelectedChildren []id.ID
	ToFront        bool

	priorZOrders   map[id.ID]float64
	priorChildren  []layer.ChildObject
}

// SendToBack builds a Record that sends the selected shapes/children to the
// back of their layer's draw order.
func SendToBack(p *ReorderPayload) Record {
	p.ToFront = false
	return reorder(p, "sendToBack")
}

// BringToFront builds a Record that brings the selected shapes/children to
// the front of their layer's draw order.
func BringToFront(p *ReorderPayload) Record {
	p.ToFront = true
	return reorder(p, "bringToFront")
}

func reorder(p *ReorderPayload, name string) Record {
	return Record{
		Name:    name,
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*ReorderPayload)
			p.priorZOrders = make(map[id.ID]float64)
			for _, sid := range distinctShapeIDs(p.Target) {
				p.priorZOrders[sid] = zOrderAt(p.Target, sid, p.Time)
			}

			selected := make(map[id.ID]bool, len(p.SelectedShapes))
			for _, sid := range p.SelectedShapes {
				selected[sid] = true
			}

			all := distinctShapeIDs(p.Target)
			sort.SliceStable(all, func(i, j int) bool {
				return p.priorZOrders[all[i]] < p.priorZOrders[all[j]]
			})

			var ordered []id.ID
			if p.ToFront {
				for _, sid := range all {
					if !selected[sid] {
						ordered = append(ordered, sid)
					}
				}
				for _, sid := range all {
					if selected[sid] {
						ordered = append(ordered, sid)
					}
				}
			} else {
				for _, sid := range all {
					if selected[sid] {
						ordered = append(ordered, sid)
					}
				}
				for _, sid := range all {
					if !selected[sid] {
						ordered = append(ordered, sid)
					}
				}
			}
			for i, sid := range ordered {
				setZOrder(p.Target, sid, p.Time, float64(i), p.TimeResolution)
			}

			p.priorChildren = append([]layer.ChildObject{}, p.Target.Children...)
			p.Target.Children = reorderChildren(p.Target.Children, p.SelectedChildren, p.ToFront)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*ReorderPayload)
			for sid, z := range p.priorZOrders {
				setZOrder(p.Target, sid, p.Time, z, p.TimeResolution)
			}
			p.Target.Children = p.priorChildren
		},
	}
}

// reorderChildren moves the children whose ObjectID is in selected to the
// front (sendToBack) or back (bringToFront) of children, preserving
// relative order within each partition.
func reorderChildren(children []layer.ChildObject, selected []id.ID, toFront bool) []layer.ChildObject {
	if len(selected) == 0 {
		return children
	}
	set := make(map[id.ID]bool, len(selected))
	for _, s := range selected {
		set[s] = true
	}

	var sel, rest []layer.ChildObject
	for _, c := range children {
		if set[c.ObjectID()] {
			sel = append(sel, c)
		} else {
			rest = append(rest, c)
		}
	}
	out := make([]layer.ChildObject, 0, len(children))
	if toFront {
		out = append(out, rest...)
		out = append(out, sel...)
	} else {
		out = append(out, sel...)
		out = append(out, rest...)
	}
	return out
}
