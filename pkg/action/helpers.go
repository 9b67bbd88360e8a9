package action

import (
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/paramkey"
)

// distinctShapeIDs returns every logical shape_id currently present in l.
func distinctShapeIDs(l *layer.Layer) []id.ID {
	seen := make(map[id.ID]bool)
	var out []id.ID
	for _, s := range l.Shapes {
		if !seen[s.ShapeID] {
			seen[s.ShapeID] = true
			out = append(out, s.ShapeID)
		}
	}
	return out
}

// zOrderAt reads a shape's zOrder at time, defaulting to 0 if undefined.
func zOrderAt(l *layer.Layer, shapeID id.ID, t float64) float64 {
	key := paramkey.Key{Kind: paramkey.ShapeZOrder, Target: shapeID}.String()
	v, ok := l.AnimationData.Interpolate(key, t)
	if !ok {
		return 0
	}
	f, numeric := v.(float64)
	if !numeric {
		return 0
	}
	return f
}

// setZOrder upserts the zOrder keyframe for shapeID at time t (spec §4.I:
// sendToBack/bringToFront "recompute zOrder keyframes at the current
// time").
func setZOrder(l *layer.Layer, shapeID id.ID, t, value, timeResolution float64) {
	key := paramkey.Key{Kind: paramkey.ShapeZOrder, Target: shapeID}.String()
	l.AnimationData.AddKeyframe(key, curve.Keyframe{Time: t, Value: value, Interpolation: curve.Hold}, timeResolution)
}

// existsAt reads a shape's exists value at time, defaulting to 0.
func existsAt(l *layer.Layer, shapeID id.ID, t float64) float64 {
	key := paramkey.Key{Kind: paramkey.ShapeExists, Target: shapeID}.String()
	v, ok := l.AnimationData.Interpolate(key, t)
	if !ok {
		return 0
	}
	f, numeric := v.(float64)
	if !numeric {
		return 0
	}
	return f
}

// setExists upserts the exists keyframe for shapeID at time t.
func setExists(l *layer.Layer, shapeID id.ID, t, value, timeResolution float64) {
	key := paramkey.Key{Kind: paramkey.ShapeExists, Target: shapeID}.String()
	l.AnimationData.AddKeyframe(key, curve.Keyframe{Time: t, Value: value, Interpolation: curve.Hold}, timeResolution)
}

// setObjectExists/objectExistsAt mirror the shape helpers above for
// spec §4.I's deleteObjects ("for objects, sets object.<id>.exists = 0 at
// current time").
func setObjectExists(l *layer.Layer, objectID id.ID, t, value, timeResolution float64) {
	key := paramkey.Key{Kind: paramkey.ObjectExists, Target: objectID}.String()
	l.AnimationData.AddKeyframe(key, curve.Keyframe{Time: t, Value: value, Interpolation: curve.Hold}, timeResolution)
}

func objectExistsAt(l *layer.Layer, objectID id.ID, t float64) (float64, bool) {
	key := paramkey.Key{Kind: paramkey.ObjectExists, Target: objectID}.String()
	v, ok := l.AnimationData.Interpolate(key, t)
	if !ok {
		return 0, false
	}
	f, numeric := v.(float64)
	return f, numeric
}

// setChildPosition upserts a child's x/y keyframes at time t.
func setChildPosition(l *layer.Layer, childID id.ID, t, x, y, timeResolution float64) {
	l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ChildX, Target: childID}.String(),
		curve.Keyframe{Time: t, Value: x, Interpolation: curve.Linear}, timeResolution)
	l.AnimationData.AddKeyframe(paramkey.Key{Kind: paramkey.ChildY, Target: childID}.String(),
		curve.Keyframe{Time: t, Value: y, Interpolation: curve.Linear}, timeResolution)
}

func rotationKey(childID id.ID) string {
	return paramkey.Key{Kind: paramkey.ChildRotation, Target: childID}.String()
}
func scaleXKey(childID id.ID) string {
	return paramkey.Key{Kind: paramkey.ChildScaleX, Target: childID}.String()
}
func scaleYKey(childID id.ID) string {
	return paramkey.Key{Kind: paramkey.ChildScaleY, Target: childID}.String()
}

// setChildFloat upserts a linear-interpolated keyframe for a numeric
// (non-x/y) child parameter curve at time t.
func setChildFloat(l *layer.Layer, key string, t, value, timeResolution float64) {
	l.AnimationData.AddKeyframe(key, curve.Keyframe{Time: t, Value: value, Interpolation: curve.Linear}, timeResolution)
}

// interpolateChildFloat reads a numeric child parameter curve at time t,
// falling back to def if absent or non-numeric.
func interpolateChildFloat(l *layer.Layer, key string, t, def float64) float64 {
	v, ok := l.AnimationData.Interpolate(key, t)
	if !ok {
		return def
	}
	f, numeric := v.(float64)
	if !numeric {
		return def
	}
	return f
}

func childPositionAt(l *layer.Layer, childID id.ID, t float64) (x, y float64, ok bool) {
	xv, xok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildX, Target: childID}.String(), t)
	yv, yok := l.AnimationData.Interpolate(paramkey.Key{Kind: paramkey.ChildY, Target: childID}.String(), t)
	if !xok || !yok {
		return 0, 0, false
	}
	xf, xn := xv.(float64)
	yf, yn := yv.(float64)
	if !xn || !yn {
		return 0, 0, false
	}
	return xf, yf, true
}
