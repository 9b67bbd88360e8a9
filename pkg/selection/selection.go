// Package selection implements spec §4.J: the current object/shape
// selection sets and the bounding-box and rotation math interactive
// transforms are built on.
package selection

import (
	"math"

	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
)

// Selection holds the two live selection sets (objects, shapes) plus the
// prior pair a `select` Action needs to roll back to (spec §3).
type Selection struct {
	Objects map[id.ID]bool
	Shapes  map[id.ID]bool

	priorObjects map[id.ID]bool
	priorShapes  map[id.ID]bool
}

// New returns an empty Selection.
func New() *Selection {
	return &Selection{Objects: make(map[id.ID]bool), Shapes: make(map[id.ID]bool)}
}

// snapshot returns a shallow copy of a selection set, used both to capture
// "prior" state and to hand callers an immutable-in-practice result set.
func snapshot(set map[id.ID]bool) map[id.ID]bool {
	out := make(map[id.ID]bool, len(set))
	for k := range set {
		out[k] = true
	}
	return out
}

// Select replaces the current selection with objects/shapes, remembering
// the previous pair so a `select` Action's rollback can restore it.
func (s *Selection) Select(objects, shapes []id.ID) {
	s.priorObjects = snapshot(s.Objects)
	s.priorShapes = snapshot(s.Shapes)

	s.Objects = make(map[id.ID]bool, len(objects))
	for _, o := range objects {
		s.Objects[o] = true
	}
	s.Shapes = make(map[id.ID]bool, len(shapes))
	for _, sh := range shapes {
		s.Shapes[sh] = true
	}
}

// SelectAll replaces the selection with every id in objects and shapes.
func (s *Selection) SelectAll(objects, shapes []id.ID) {
	s.Select(objects, shapes)
}

// SelectNone clears the selection, remembering the previous pair.
func (s *Selection) SelectNone() {
	s.Select(nil, nil)
}

// RestorePrior restores the selection captured by the most recent Select
// call, per the `select`/`selectAll`/`selectNone` rollback contract.
func (s *Selection) RestorePrior() {
	if s.priorObjects != nil {
		s.Objects = s.priorObjects
	}
	if s.priorShapes != nil {
		s.Shapes = s.priorShapes
	}
}

// ObjectIDs returns the selected object ids in no particular order.
func (s *Selection) ObjectIDs() []id.ID {
	out := make([]id.ID, 0, len(s.Objects))
	for o := range s.Objects {
		out = append(out, o)
	}
	return out
}

// ShapeIDs returns the selected shape ids in no particular order.
func (s *Selection) ShapeIDs() []id.ID {
	out := make([]id.ID, 0, len(s.Shapes))
	for sh := range s.Shapes {
		out = append(out, sh)
	}
	return out
}

// Transformable is the minimal per-item state interactive transforms read
// and write: a position, non-uniform scale, and rotation, plus the
// untransformed bounding box used to compute the rotated bbox below.
type Transformable struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64
	LocalBBox      geom.Rect
}

// GetRotatedBoundingBox returns the bounding box of item after applying its
// own rotation about its local-bbox center, per spec §4.J.
func GetRotatedBoundingBox(item Transformable) geom.Rect {
	cx := (item.LocalBBox.MinX + item.LocalBBox.MaxX) / 2
	cy := (item.LocalBBox.MinY + item.LocalBBox.MaxY) / 2

	corners := [4]geom.Point{
		{X: item.LocalBBox.MinX, Y: item.LocalBBox.MinY},
		{X: item.LocalBBox.MaxX, Y: item.LocalBBox.MinY},
		{X: item.LocalBBox.MaxX, Y: item.LocalBBox.MaxY},
		{X: item.LocalBBox.MinX, Y: item.LocalBBox.MaxY},
	}

	sin, cos := math.Sin(item.Rotation), math.Cos(item.Rotation)
	out := geom.EmptyRect()
	for _, c := range corners {
		lx := (c.X-cx)*item.ScaleX
		ly := (c.Y-cy)*item.ScaleY
		rx := lx*cos - ly*sin
		ry := lx*sin + ly*cos
		out.GrowPoint(geom.Point{X: item.X + cx + rx, Y: item.Y + cy + ry})
	}
	return out
}

// AggregateBoundingBox unions the rotated bounding boxes of every item,
// per spec §4.J's "bounding-box aggregation".
func AggregateBoundingBox(items []Transformable) geom.Rect {
	out := geom.EmptyRect()
	for _, item := range items {
		geom.GrowBoundingBox(&out, GetRotatedBoundingBox(item))
	}
	return out
}
