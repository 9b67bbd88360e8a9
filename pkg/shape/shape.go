// Package shape implements spec §4.C: the Shape model -- a path of cubic
// Beziers plus render attributes, its derived vertex graph and region
// split, and shape-morph interpolation.
package shape

import (
	"github.com/AureClai/scenecore/internal/logx"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
)

// mergeTolerance is the epsilon within which two curve endpoints are
// considered the same vertex.
const mergeTolerance = 1.5

// Shape is an ordered sequence of Beziers forming a path starting at
// (StartX, StartY), plus render attributes. InProgress subsumes the
// teacher-domain's TempShape/Shape split as a single tagged field rather
// than a parallel type.
type Shape struct {
	ID      id.ID // idx: this Shape version
	ShapeID id.ID // shape_id: the logical shape across morph versions

	StartX, StartY float64
	Curves         []geom.Bezier

	FillStyle   string
	FillImage   string
	StrokeStyle string
	LineWidth   float64
	Filled      bool
	Stroked     bool

	ShapeIndex int
	InProgress bool

	bbox     geom.Rect
	vertices []Vertex
	regions  [][]int
	quadtree *geom.Quadtree

	log *logx.Logger
}

// Vertex is a point shared by the endpoints of one or more curves.
type Vertex struct {
	Point       geom.Point
	StartCurves []int
	EndCurves   []int
}

// New creates an empty Shape version with a fresh idx, sharing shapeID
// across every version of the same logical shape. It registers idx in
// registry; shapeID is not registered, neither here nor by
// Layer.AddShape, which takes no registry.
func New(registry *id.Registry, shapeID id.ID, startX, startY float64) *Shape {
	s := &Shape{
		ID:      id.New(),
		ShapeID: shapeID,
		StartX:  startX,
		StartY:  startY,
		Filled:  true,
		Stroked: true,
		log:     logx.Nop,
	}
	if registry != nil {
		registry.Insert(s.ID, s)
	}
	return s
}

// SetLogger overrides the diagnostic sink (default: discard).
func (s *Shape) SetLogger(l *logx.Logger) {
	s.log = l
}

// AddCurve appends a Bezier, inserting it into the quadtree and growing the
// bounding box.
func (s *Shape) AddCurve(b geom.Bezier) {
	idx := len(s.Curves)
	s.Curves = append(s.Curves, b)
	if s.quadtree == nil {
		s.quadtree = geom.NewQuadtree(geom.EmptyRect(), 4)
	}
	s.quadtree.Insert(b.BoundingBox(), idx)
	geom.GrowBoundingBox(&s.bbox, b.BoundingBox())
}

// AddLine synthesizes a degenerate Bezier (control points at the segment
// midpoint) from the path's current endpoint to (x, y).
func (s *Shape) AddLine(x, y float64) {
	from := s.endpoint()
	to := geom.Point{X: x, Y: y}
	mid := from.Lerp(to, 0.5)
	s.AddCurve(geom.Bezier{P0: from, P1: mid, P2: mid, P3: to})
}

func (s *Shape) endpoint() geom.Point {
	if len(s.Curves) == 0 {
		return geom.Point{X: s.StartX, Y: s.StartY}
	}
	return s.Curves[len(s.Curves)-1].P3
}

// Update recomputes the bounding box, vertex graph, and regions, and syncs
// StartX/StartY to the first curve's start point.
func (s *Shape) Update() {
	s.bbox = geom.EmptyRect()
	s.quadtree = geom.NewQuadtree(geom.EmptyRect(), 4)
	for i, c := range s.Curves {
		box := c.BoundingBox()
		geom.GrowBoundingBox(&s.bbox, box)
		s.quadtree.Insert(box, i)
	}
	if len(s.Curves) > 0 {
		s.StartX = s.Curves[0].P0.X
		s.StartY = s.Curves[0].P0.Y
	}
	s.UpdateVertices()
}

// BoundingBox returns the cached bounding box over every curve.
func (s *Shape) BoundingBox() geom.Rect {
	return s.bbox
}

// Regions returns the subpaths produced by the vertex-graph region split,
// each a list of curve indices.
func (s *Shape) Regions() [][]int {
	return s.regions
}

// Vertices returns the derived vertex graph.
func (s *Shape) Vertices() []Vertex {
	return s.vertices
}

// Translate shifts every control point by (dx, dy) and rebuilds the
// quadtree and bounding box.
func (s *Shape) Translate(dx, dy float64) {
	for i := range s.Curves {
		s.Curves[i] = s.Curves[i].Translate(dx, dy)
	}
	s.StartX += dx
	s.StartY += dy
	s.Update()
}
