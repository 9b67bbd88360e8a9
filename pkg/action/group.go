package action

import (
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
)

// GroupPayload is the group action's payload: bundles selected shapes and
// child objects out of Source into a freshly created GraphicsObject
// centered on their aggregate bounding box (spec §4.I).
type GroupPayload struct {
	Registry       *id.Registry
	Framerate      float64
	TimeResolution float64
	Parent         *scene.GraphicsObject // where the group object is inserted
	Target         *layer.Layer          // layer of Parent to insert the group into
	Source         *layer.Layer          // layer the items are migrated out of
	Shapes         []*shape.Shape
	Children       []*scene.GraphicsObject
	Time           float64

	group      *scene.GraphicsObject
	groupLayer *layer.Layer
	centroid   geom.Point
}

// Group computes a bounding box over Shapes and Children, creates a new
// GraphicsObject at its centroid, migrates the shapes (translated by
// -centroid) into the group's first layer, and moves the child objects into
// the group preserving their relative position.
func Group(p *GroupPayload) Record {
	return Record{
		Name:    "group",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GroupPayload)

			bbox := geom.EmptyRect()
			for _, s := range p.Shapes {
				geom.GrowBoundingBox(&bbox, s.BoundingBox())
			}
			for _, c := range p.Children {
				if x, y, ok := childPositionAt(p.Source, c.ID, p.Time); ok {
					bbox.GrowPoint(geom.Point{X: x, Y: y})
				}
			}
			if bbox.Empty() {
				bbox = geom.Rect{}
			}
			p.centroid = geom.Point{X: (bbox.MinX + bbox.MaxX) / 2, Y: (bbox.MinY + bbox.MaxY) / 2}

			p.group = scene.New(p.Registry, "Group", p.Framerate)
			p.groupLayer = layer.NewVector("Group layer")
			p.group.AddLayer(p.groupLayer)

			for _, s := range p.Shapes {
				p.Source.RemoveShape(s)
				s.Translate(-p.centroid.X, -p.centroid.Y)
				p.groupLayer.AddShape(s, 0, p.TimeResolution)
			}
			for _, c := range p.Children {
				x, y, ok := childPositionAt(p.Source, c.ID, p.Time)
				if !ok {
					x, y = 0, 0
				}
				p.Source.RemoveChild(c.ID)
				p.group.AddObject(c, x-p.centroid.X, y-p.centroid.Y, 0, p.groupLayer)
			}

			p.Parent.AddObject(p.group, p.centroid.X, p.centroid.Y, p.Time, p.Target)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GroupPayload)
			p.Parent.RemoveChild(p.group.ID)

			for _, s := range p.Shapes {
				p.groupLayer.RemoveShape(s)
				s.Translate(p.centroid.X, p.centroid.Y)
				p.Source.AddShape(s, p.Time, p.TimeResolution)
			}
			for _, c := range p.Children {
				p.groupLayer.RemoveChild(c.ID)
				p.Source.AddChild(c)
				c.Parent = p.Parent.ID
			}
		},
	}
}
