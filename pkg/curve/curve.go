package curve

import (
	"math"
	"sort"
)

// DurationNotifier is the weak back-reference an AnimationCurve holds to its
// owning AnimationData (spec §3: "weak back-ref to owning AnimationData").
// The curve package cannot import animdata without a cycle, so the
// dependency is inverted: animdata implements this interface and attaches
// itself when it creates or rebinds a curve (AnimationData.SetCurve, spec
// §4.E).
type DurationNotifier interface {
	NotifyDurationChange()
}

// AnimationCurve is an ordered list of Keyframes for one named parameter.
type AnimationCurve struct {
	ParameterName string
	keyframes     []Keyframe
	parent        DurationNotifier
}

// New returns an empty curve for the given parameter name.
func New(parameterName string) *AnimationCurve {
	return &AnimationCurve{ParameterName: parameterName}
}

// SetParent rebinds the curve's weak back-reference, per AnimationData's
// set_curve operation (spec §4.E).
func (c *AnimationCurve) SetParent(parent DurationNotifier) {
	c.parent = parent
}

// Keyframes returns the curve's keyframes in ascending time order. The
// returned slice must not be mutated by the caller.
func (c *AnimationCurve) Keyframes() []Keyframe {
	return c.keyframes
}

// Len reports the number of keyframes.
func (c *AnimationCurve) Len() int {
	return len(c.keyframes)
}

// Duration is the time of the last keyframe, or 0 if the curve is empty.
func (c *AnimationCurve) Duration() float64 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// AddKeyframe inserts kf in time order. If an existing keyframe lies within
// timeResolution of kf.Time, it is replaced in place (value, interpolation,
// and ease handles only -- its position in the slice, and hence its
// identity as "the keyframe at this time", is preserved) rather than a new
// one being inserted; this is the coalescing rule of spec §4.D step 2. The
// parent AnimationData, if any, is notified to recompute duration.
func (c *AnimationCurve) AddKeyframe(kf Keyframe, timeResolution float64) {
	if i, found := c.findWithin(kf.Time, timeResolution); found {
		existing := &c.keyframes[i]
		existing.Value = kf.Value
		existing.Interpolation = kf.Interpolation
		existing.EaseIn = kf.EaseIn
		existing.EaseOut = kf.EaseOut
		if !kf.ID.IsNil() {
			existing.ID = kf.ID
		}
	} else {
		idx := sort.Search(len(c.keyframes), func(i int) bool {
			return c.keyframes[i].Time >= kf.Time
		})
		c.keyframes = append(c.keyframes, Keyframe{})
		copy(c.keyframes[idx+1:], c.keyframes[idx:])
		c.keyframes[idx] = kf
	}
	c.notifyParent()
}

// findWithin binary-searches for a keyframe whose time lies within
// timeResolution of t, returning its index.
func (c *AnimationCurve) findWithin(t, timeResolution float64) (int, bool) {
	idx := sort.Search(len(c.keyframes), func(i int) bool {
		return c.keyframes[i].Time >= t
	})

	best := -1
	bestDelta := math.Inf(1)
	for _, cand := range []int{idx - 1, idx} {
		if cand < 0 || cand >= len(c.keyframes) {
			continue
		}
		delta := math.Abs(c.keyframes[cand].Time - t)
		if delta < timeResolution && delta < bestDelta {
			best = cand
			bestDelta = delta
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// RemoveAt removes the keyframe at index i.
func (c *AnimationCurve) RemoveAt(i int) {
	if i < 0 || i >= len(c.keyframes) {
		return
	}
	c.keyframes = append(c.keyframes[:i], c.keyframes[i+1:]...)
	c.notifyParent()
}

// RemoveNear removes the keyframe within timeResolution of t, if any, and
// reports whether it removed one.
func (c *AnimationCurve) RemoveNear(t, timeResolution float64) bool {
	i, ok := c.findWithin(t, timeResolution)
	if !ok {
		return false
	}
	c.RemoveAt(i)
	return true
}

// SetLastSilently overwrites the last keyframe's time and value and
// re-sorts, without notifying the parent AnimationData. It exists
// specifically for AnimationData's non-recursive duration back-propagation
// (spec §4.E): the caller has already decided a grandparent curve needs
// updating and must not re-trigger this curve's own owner's duration walk.
func (c *AnimationCurve) SetLastSilently(time float64, value interface{}) {
	if len(c.keyframes) == 0 {
		return
	}
	last := len(c.keyframes) - 1
	c.keyframes[last].Time = time
	c.keyframes[last].Value = value
	sort.SliceStable(c.keyframes, func(i, j int) bool {
		return c.keyframes[i].Time < c.keyframes[j].Time
	})
}

func (c *AnimationCurve) notifyParent() {
	if c.parent != nil {
		c.parent.NotifyDurationChange()
	}
}

// Bracket is the (prev, next, t) triple bracketing_keyframes returns.
type Bracket struct {
	Prev, Next Keyframe
	T          float64
	Empty      bool
}

// BracketingKeyframes implements spec §4.D's bracketing_keyframes: returns
// the keyframe pair straddling time, and the fractional position t between
// them.
func (c *AnimationCurve) BracketingKeyframes(time float64) Bracket {
	n := len(c.keyframes)
	if n == 0 {
		return Bracket{Empty: true}
	}
	if n == 1 {
		return Bracket{Prev: c.keyframes[0], Next: c.keyframes[0], T: 0}
	}
	if time <= c.keyframes[0].Time {
		return Bracket{Prev: c.keyframes[0], Next: c.keyframes[0], T: 0}
	}
	if time >= c.keyframes[n-1].Time {
		last := c.keyframes[n-1]
		return Bracket{Prev: last, Next: last, T: 1}
	}

	idx := sort.Search(n, func(i int) bool {
		return c.keyframes[i].Time > time
	})
	prev := c.keyframes[idx-1]
	next := c.keyframes[idx]
	t := 0.0
	if next.Time != prev.Time {
		t = (time - prev.Time) / (next.Time - prev.Time)
	}
	return Bracket{Prev: prev, Next: next, T: t}
}

// Interpolate evaluates the curve at time, per spec §4.D's dispatch table.
// The returned bool is false only when the curve has no keyframes at all
// (spec: "If empty, undefined value").
func (c *AnimationCurve) Interpolate(time float64) (interface{}, bool) {
	b := c.BracketingKeyframes(time)
	if b.Empty {
		return nil, false
	}
	if b.Prev == b.Next || sameKeyframeTime(b.Prev, b.Next) {
		return b.Prev.Value, true
	}

	switch b.Prev.Interpolation {
	case Step, Hold:
		return b.Prev.Value, true
	case Zero:
		// Literal per spec §9(b): the segment is 0 for its entire span, even
		// though some call sites (frameNumber tails) may have intended Hold.
		return 0.0, true
	case Bezier:
		prevVal, prevOK := b.Prev.NumericValue()
		nextVal, nextOK := b.Next.NumericValue()
		if !prevOK || !nextOK {
			return b.Prev.Value, true
		}
		eased := cubicEase(b.T, b.Prev.EaseOut.Y, b.Next.EaseIn.Y)
		return prevVal + (nextVal-prevVal)*eased, true
	default: // Linear
		prevVal, prevOK := b.Prev.NumericValue()
		nextVal, nextOK := b.Next.NumericValue()
		if !prevOK || !nextOK {
			return b.Prev.Value, true
		}
		return prevVal + (nextVal-prevVal)*b.T, true
	}
}

func sameKeyframeTime(a, b Keyframe) bool {
	return a.Time == b.Time && a.Value == b.Value
}

// cubicEase evaluates the cubic easing formula of spec §4.D:
// 3(1-t)^2*t*outY + 3(1-t)*t^2*inY + t^3.
func cubicEase(t, outY, inY float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*outY + 3*mt*t*t*inY + t*t*t
}
