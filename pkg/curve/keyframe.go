// Package curve implements spec §4.D: Keyframes and the AnimationCurve that
// orders and interpolates them.
package curve

import "github.com/AureClai/scenecore/pkg/id"

// Interpolation selects how a curve blends between two bracketing
// keyframes. Hold and Step are synonymous per spec §3.
type Interpolation int

const (
	Linear Interpolation = iota
	Bezier
	Step
	Zero
)

// Hold is an alias for Step; the spec treats the two names as the same
// interpolation kind.
const Hold = Step

func (k Interpolation) String() string {
	switch k {
	case Linear:
		return "linear"
	case Bezier:
		return "bezier"
	case Step:
		return "step"
	case Zero:
		return "zero"
	default:
		return "unknown"
	}
}

// EaseHandle is a Bezier easing control point, expressed in the curve's own
// normalized (x: time fraction, y: value fraction) easing space.
type EaseHandle struct {
	X, Y float64
}

// Keyframe is a single (time, value) sample plus interpolation metadata.
// Value holds a float64 for every numeric parameter curve (the overwhelming
// majority: position, rotation, scale, zOrder, exists, shapeIndex,
// frameNumber); non-numeric curves (e.g. a fillStyle swatch keyed over
// time) carry a string instead, and fall back to Step-like behavior under
// Linear interpolation per spec §4.D.
type Keyframe struct {
	ID            id.ID
	Time          float64
	Value         interface{}
	Interpolation Interpolation
	EaseIn        EaseHandle
	EaseOut       EaseHandle
}

// NumericValue returns Value as a float64, if it is one.
func (k Keyframe) NumericValue() (float64, bool) {
	f, ok := k.Value.(float64)
	return f, ok
}
