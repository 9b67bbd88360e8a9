package selection

import (
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
)

// ItemState is one selected item's transform snapshot, captured both at
// drag start and updated live as the drag proceeds (spec §4.I
// transformObjects: "per-object (x,y,scale_x,scale_y,rotation), and a
// current mirror that updates during drag").
type ItemState struct {
	ID       id.ID
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// DragTransform is the payload a continuous transformObjects Action carries
// across its Initialize/Update/Finalize lifecycle (spec §4.I).
type DragTransform struct {
	InitialBBox  geom.Rect
	InitialMouse geom.Point

	Initial []ItemState
	Current []ItemState
}

// Initialize captures the starting bbox, mouse position, and per-item
// transform state for a drag.
func Initialize(initialBBox geom.Rect, mouse geom.Point, items []ItemState) *DragTransform {
	current := make([]ItemState, len(items))
	copy(current, items)
	return &DragTransform{
		InitialBBox:  initialBBox,
		InitialMouse: mouse,
		Initial:      items,
		Current:      current,
	}
}

// Update recomputes the live "current" mirror given the mouse's new
// position: each item's offset from the initial bbox center, and its own
// scale, grow with the change in bbox extent. Rotation is copied unchanged
// from the initial state; Update takes no rotation input.
func (d *DragTransform) Update(mouse geom.Point) {
	dx := mouse.X - d.InitialMouse.X
	dy := mouse.Y - d.InitialMouse.Y

	width := d.InitialBBox.Width()
	height := d.InitialBBox.Height()
	scaleX, scaleY := 1.0, 1.0
	if width != 0 {
		scaleX = (width + dx) / width
	}
	if height != 0 {
		scaleY = (height + dy) / height
	}

	cx := (d.InitialBBox.MinX + d.InitialBBox.MaxX) / 2
	cy := (d.InitialBBox.MinY + d.InitialBBox.MaxY) / 2

	for i, item := range d.Initial {
		offsetX := item.X - cx
		offsetY := item.Y - cy
		d.Current[i] = ItemState{
			ID:       item.ID,
			X:        cx + offsetX*scaleX,
			Y:        cy + offsetY*scaleY,
			ScaleX:   item.ScaleX * scaleX,
			ScaleY:   item.ScaleY * scaleY,
			Rotation: item.Rotation,
		}
	}
}

// Finalize returns the drag's resolved per-item states, suitable for the
// transformObjects Action to apply as its execute payload.
func (d *DragTransform) Finalize() []ItemState {
	return d.Current
}
