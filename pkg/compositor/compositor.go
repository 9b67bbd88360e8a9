// Package compositor implements spec §4.H: the at-time evaluation that
// turns a GraphicsObject tree into a sequence of renderer calls.
package compositor

import (
	"math"
	"sort"

	"github.com/AureClai/scenecore/internal/logx"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
)

// shapeValueEpsilon is the "|v - prev.value| < 1e-3" tolerance spec §4.H's
// shape-morph selection uses to snap to a single version rather than
// blending two.
const shapeValueEpsilon = 1e-3

// Compositor evaluates a GraphicsObject tree at its own current time and
// issues the resulting draw calls through a Renderer.
type Compositor struct {
	registry      *id.Registry
	framerate     float64
	videoRenderer VideoRenderer
	log           *logx.Logger
}

// New returns a Compositor resolving weak references through registry.
func New(registry *id.Registry, framerate float64) *Compositor {
	return &Compositor{registry: registry, framerate: framerate, log: logx.Nop}
}

// SetLogger overrides the diagnostic sink (default: discard).
func (c *Compositor) SetLogger(l *logx.Logger) {
	c.log = l
}

// SetVideoRenderer installs the out-of-scope video-layer delegate; nil
// (the default) causes video layers to be silently skipped.
func (c *Compositor) SetVideoRenderer(v VideoRenderer) {
	c.videoRenderer = v
}

// Draw renders object and its nested tree to ctx, per spec §4.H's
// procedure: apply the transform, draw each layer's morph-selected shapes
// in ascending zOrder, then recurse into children with time remapping.
func (c *Compositor) Draw(object *scene.GraphicsObject, ctx Renderer) {
	ctx.Save()
	defer ctx.Restore()

	ctx.Translate(object.Transform.X, object.Transform.Y)
	ctx.Rotate(object.Transform.Rotation)
	ctx.Scale(object.Transform.ScaleX, object.Transform.ScaleY)

	t := object.CurrentTime

	for _, l := range object.Layers {
		if !l.Visible {
			continue
		}
		if l.Kind == layer.KindVideo {
			if c.videoRenderer != nil {
				c.videoRenderer.DrawVideoLayer(l.ID.String(), t, ctx)
			}
			continue
		}
		c.drawShapes(l, t, ctx)
		c.drawChildren(l, t, ctx)
	}
}

// drawShapes performs the shape-morph selection of spec §4.H step 2 and
// draws the resulting shapes strictly in ascending zOrder, ties broken by
// the order in which each shape_id first appears in the layer's Shapes.
func (c *Compositor) drawShapes(l *layer.Layer, t float64, ctx Renderer) {
	groups := l.VisibleShapes(t)
	if len(groups) == 0 {
		return
	}

	var order []id.ID
	seen := make(map[id.ID]bool, len(groups))
	for _, s := range l.Shapes {
		if _, visible := groups[s.ShapeID]; visible && !seen[s.ShapeID] {
			seen[s.ShapeID] = true
			order = append(order, s.ShapeID)
		}
	}

	type drawable struct {
		z float64
		s *shape.Shape
	}
	var draws []drawable

	for _, shapeID := range order {
		versions := groups[shapeID]
		z := 0.0
		if v, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ShapeZOrder, Target: shapeID}.String(), t); ok {
			if f, numeric := v.(float64); numeric {
				z = f
			}
		}

		selected := c.selectMorphedShape(l, shapeID, versions, t)
		if selected == nil {
			continue
		}
		draws = append(draws, drawable{z: z, s: selected})
	}

	sort.SliceStable(draws, func(i, j int) bool { return draws[i].z < draws[j].z })

	for _, d := range draws {
		drawShape(d.s, ctx)
	}
}

// selectMorphedShape implements spec §4.H 2.c-d: pick the single active
// version by shapeIndex, or lerp between the two bracketing versions.
func (c *Compositor) selectMorphedShape(l *layer.Layer, shapeID id.ID, versions []*shape.Shape, t float64) *shape.Shape {
	byIndex := make(map[int]*shape.Shape, len(versions))
	for _, v := range versions {
		byIndex[v.ShapeIndex] = v
	}

	curveName := paramkey.Key{Kind: paramkey.ShapeIndex, Target: shapeID}.String()
	idxCurve, ok := l.AnimationData.GetCurve(curveName)
	if !ok || idxCurve.Len() == 0 {
		if s, found := byIndex[0]; found {
			return s
		}
		return firstOf(versions)
	}

	b := idxCurve.BracketingKeyframes(t)
	v, vOK := idxCurve.Interpolate(t)
	vFloat, numeric := asFloat(v)
	if !vOK || !numeric {
		return firstOf(versions)
	}

	prevVal, prevNumeric := b.Prev.NumericValue()
	nextVal, nextNumeric := b.Next.NumericValue()
	if !prevNumeric || !nextNumeric {
		return firstOf(versions)
	}

	if math.Abs(vFloat-prevVal) < shapeValueEpsilon {
		if s, found := byIndex[int(math.Round(prevVal))]; found {
			return s
		}
		return firstOf(versions)
	}
	if math.Abs(vFloat-nextVal) < shapeValueEpsilon {
		if s, found := byIndex[int(math.Round(nextVal))]; found {
			return s
		}
		return firstOf(versions)
	}

	if prevVal == nextVal {
		if s, found := byIndex[int(math.Round(prevVal))]; found {
			return s
		}
		return firstOf(versions)
	}

	shape1, ok1 := byIndex[int(math.Round(prevVal))]
	shape2, ok2 := byIndex[int(math.Round(nextVal))]
	switch {
	case ok1 && ok2:
		blend := (vFloat - prevVal) / (nextVal - prevVal)
		return shape1.Lerp(shape2, blend)
	case ok1:
		return shape1
	case ok2:
		return shape2
	default:
		return firstOf(versions)
	}
}

func firstOf(versions []*shape.Shape) *shape.Shape {
	if len(versions) == 0 {
		return nil
	}
	return versions[0]
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// interpolateOr evaluates the named child parameter curve at t, falling
// back to def when the curve is absent or non-numeric.
func interpolateOr(l *layer.Layer, kind paramkey.Kind, target id.ID, t, def float64) float64 {
	v, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: kind, Target: target}.String(), t)
	if !ok {
		return def
	}
	f, numeric := asFloat(v)
	if !numeric {
		return def
	}
	return f
}

// drawShape issues the renderer calls for a single resolved shape.
func drawShape(s *shape.Shape, ctx Renderer) {
	if len(s.Curves) == 0 {
		return
	}
	ctx.Save()
	defer ctx.Restore()

	ctx.BeginPath()
	ctx.MoveTo(s.StartX, s.StartY)
	for _, curve := range s.Curves {
		ctx.BezierCurveTo(curve.P1.X, curve.P1.Y, curve.P2.X, curve.P2.Y, curve.P3.X, curve.P3.Y)
	}
	ctx.ClosePath()

	if s.Filled {
		ctx.SetFillStyle(s.FillStyle)
		ctx.Fill()
	}
	if s.Stroked {
		ctx.SetStrokeStyle(s.StrokeStyle)
		ctx.SetLineWidth(s.LineWidth)
		ctx.Stroke()
	}
}

// drawChildren implements spec §4.H's children-recursion step: reads each
// child's transform curves, applies the frameNumber time-remapping rule,
// writes the evaluated transform back onto the child, and recurses.
func (c *Compositor) drawChildren(l *layer.Layer, t float64, ctx Renderer) {
	for _, child := range l.Children {
		obj, ok := child.(*scene.GraphicsObject)
		if !ok {
			continue
		}

		cx, okX := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildX, Target: obj.ID}.String(), t)
		cy, okY := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildY, Target: obj.ID}.String(), t)
		if !okX || !okY {
			continue
		}
		cxF, cxNumeric := asFloat(cx)
		cyF, cyNumeric := asFloat(cy)
		if !cxNumeric || !cyNumeric {
			continue
		}

		exists, existsOK := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ObjectExists, Target: obj.ID}.String(), t)
		if existsOK {
			if e, numeric := asFloat(exists); numeric && e <= 0 {
				continue
			}
		}

		obj.Transform.X = cxF
		obj.Transform.Y = cyF
		obj.Transform.Rotation = interpolateOr(l, paramkey.ChildRotation, obj.ID, t, 0)
		obj.Transform.ScaleX = interpolateOr(l, paramkey.ChildScaleX, obj.ID, t, 1)
		obj.Transform.ScaleY = interpolateOr(l, paramkey.ChildScaleY, obj.ID, t, 1)

		if cf, ok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildFrameNumber, Target: obj.ID}.String(), t); ok {
			if cfF, numeric := asFloat(cf); numeric {
				obj.CurrentTime = (cfF - 1) / c.framerate
			}
		}

		c.Draw(obj, ctx)
	}
}
