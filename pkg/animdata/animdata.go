// Package animdata implements spec §4.E: AnimationData, the named
// collection of AnimationCurves attached to a Layer, and the duration
// bookkeeping that rolls curve lengths up to their owner.
package animdata

import (
	"github.com/AureClai/scenecore/pkg/curve"
)

// Owner is the weak back-reference an AnimationData holds to whatever owns
// it (the GraphicsObject whose Layer holds it): spec §4.E's duration recomputation needs
// to notify something above AnimationData itself, and that something may in
// turn need to propagate further up a parent chain (a child's frameNumber
// curve bounding a parent's own effective duration, per spec §4.H). Callers
// that don't need upward propagation can leave this unset.
type Owner interface {
	NotifyDurationChange()
}

// AnimationData is a named set of parameter curves plus their rolled-up
// duration (the time of the latest keyframe across every curve it holds).
type AnimationData struct {
	curves   map[string]*curve.AnimationCurve
	duration float64
	owner    Owner
}

// New returns an empty AnimationData.
func New() *AnimationData {
	return &AnimationData{curves: make(map[string]*curve.AnimationCurve)}
}

// SetOwner attaches the weak back-reference used by NotifyDurationChange to
// propagate further up, if anything is listening.
func (a *AnimationData) SetOwner(owner Owner) {
	a.owner = owner
}

// GetCurve returns the named curve, if it exists.
func (a *AnimationData) GetCurve(name string) (*curve.AnimationCurve, bool) {
	c, ok := a.curves[name]
	return c, ok
}

// GetOrCreateCurve returns the named curve, creating an empty one (and
// binding its parent back-reference to this AnimationData) if absent.
func (a *AnimationData) GetOrCreateCurve(name string) *curve.AnimationCurve {
	if c, ok := a.curves[name]; ok {
		return c
	}
	c := curve.New(name)
	c.SetParent(a)
	a.curves[name] = c
	return c
}

// SetCurve installs an existing curve under name, rebinding its parent
// back-reference to this AnimationData (spec §4.E set_curve).
func (a *AnimationData) SetCurve(name string, c *curve.AnimationCurve) {
	c.SetParent(a)
	a.curves[name] = c
	a.UpdateDuration()
}

// RemoveCurve deletes the named curve entirely.
func (a *AnimationData) RemoveCurve(name string) {
	delete(a.curves, name)
	a.UpdateDuration()
}

// AddKeyframe adds a keyframe to the named curve, creating the curve first
// if it doesn't exist yet.
func (a *AnimationData) AddKeyframe(name string, kf curve.Keyframe, timeResolution float64) {
	a.GetOrCreateCurve(name).AddKeyframe(kf, timeResolution)
}

// RemoveKeyframe removes the keyframe nearest time on the named curve, if
// one exists within timeResolution.
func (a *AnimationData) RemoveKeyframe(name string, time, timeResolution float64) bool {
	c, ok := a.curves[name]
	if !ok {
		return false
	}
	removed := c.RemoveNear(time, timeResolution)
	return removed
}

// Interpolate evaluates the named curve at time. ok is false if the curve
// doesn't exist or is empty.
func (a *AnimationData) Interpolate(name string, time float64) (interface{}, bool) {
	c, ok := a.curves[name]
	if !ok {
		return nil, false
	}
	return c.Interpolate(time)
}

// ValuesAtTime evaluates every curve at time, returning a name->value map.
// Curves with no keyframes are omitted.
func (a *AnimationData) ValuesAtTime(time float64) map[string]interface{} {
	out := make(map[string]interface{}, len(a.curves))
	for name, c := range a.curves {
		if v, ok := c.Interpolate(time); ok {
			out[name] = v
		}
	}
	return out
}

// CurveNames returns the names of every curve currently held, in no
// particular order.
func (a *AnimationData) CurveNames() []string {
	names := make([]string, 0, len(a.curves))
	for name := range a.curves {
		names = append(names, name)
	}
	return names
}

// Duration is the cached rolled-up duration: the latest keyframe time
// across every curve this AnimationData holds.
func (a *AnimationData) Duration() float64 {
	return a.duration
}

// NotifyDurationChange implements curve.DurationNotifier: a child curve
// calls this whenever its own keyframe set changes, so the cached duration
// is always recomputed eagerly rather than lazily on read.
func (a *AnimationData) NotifyDurationChange() {
	a.UpdateDuration()
}

// UpdateDuration recomputes the cached duration from every curve's own
// Duration() and, if a change occurred, notifies this AnimationData's own
// owner in turn -- the non-recursive upward propagation spec §4.E and §4.H
// both rely on (a parent GraphicsObject's effective duration depends on its
// children's, which depends on their AnimationData's curves).
func (a *AnimationData) UpdateDuration() {
	max := 0.0
	for _, c := range a.curves {
		if d := c.Duration(); d > max {
			max = d
		}
	}
	changed := max != a.duration
	a.duration = max
	if changed && a.owner != nil {
		a.owner.NotifyDurationChange()
	}
}
