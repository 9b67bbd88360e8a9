package animdata_test

import (
	"testing"

	"github.com/AureClai/scenecore/pkg/animdata"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddKeyframeCreatesCurveLazily(t *testing.T) {
	a := animdata.New()
	a.AddKeyframe("x", curve.Keyframe{Time: 1, Value: 5.0}, 0.02)

	c, ok := a.GetCurve("x")
	require.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestInterpolateUnknownCurveIsNotOK(t *testing.T) {
	a := animdata.New()
	_, ok := a.Interpolate("missing", 0)
	assert.False(t, ok)
}

func TestValuesAtTimeCoversEveryCurve(t *testing.T) {
	a := animdata.New()
	a.AddKeyframe("x", curve.Keyframe{Time: 0, Value: 1.0, Interpolation: curve.Linear}, 0.02)
	a.AddKeyframe("y", curve.Keyframe{Time: 0, Value: 2.0, Interpolation: curve.Linear}, 0.02)

	values := a.ValuesAtTime(0)
	assert.Equal(t, 1.0, values["x"])
	assert.Equal(t, 2.0, values["y"])
}

func TestDurationTracksLatestKeyframeAcrossCurves(t *testing.T) {
	a := animdata.New()
	a.AddKeyframe("x", curve.Keyframe{Time: 1}, 0.02)
	assert.Equal(t, 1.0, a.Duration())

	a.AddKeyframe("y", curve.Keyframe{Time: 5}, 0.02)
	assert.Equal(t, 5.0, a.Duration())

	a.RemoveCurve("y")
	assert.Equal(t, 1.0, a.Duration())
}

type fakeOwner struct{ notified int }

func (f *fakeOwner) NotifyDurationChange() { f.notified++ }

func TestDurationChangePropagatesToOwner(t *testing.T) {
	a := animdata.New()
	owner := &fakeOwner{}
	a.SetOwner(owner)

	a.AddKeyframe("x", curve.Keyframe{Time: 1}, 0.02)
	assert.Equal(t, 1, owner.notified)

	// Adding a keyframe that doesn't extend the duration shouldn't renotify.
	a.AddKeyframe("x", curve.Keyframe{Time: 0.5}, 0.02)
	assert.Equal(t, 1, owner.notified)

	a.AddKeyframe("y", curve.Keyframe{Time: 9}, 0.02)
	assert.Equal(t, 2, owner.notified)
}

func TestSetCurveRebindsParentAndRecomputesDuration(t *testing.T) {
	a := animdata.New()
	c := curve.New("x")
	c.AddKeyframe(curve.Keyframe{Time: 3}, 0.02)

	a.SetCurve("x", c)
	assert.Equal(t, 3.0, a.Duration())

	// Further mutation on the curve, now parented to a, must update a's
	// cached duration through the DurationNotifier back-reference.
	c.AddKeyframe(curve.Keyframe{Time: 10}, 0.02)
	assert.Equal(t, 10.0, a.Duration())
}

func TestRemoveKeyframe(t *testing.T) {
	a := animdata.New()
	a.AddKeyframe("x", curve.Keyframe{Time: 1}, 0.02)

	assert.True(t, a.RemoveKeyframe("x", 1.0, 0.02))
	assert.False(t, a.RemoveKeyframe("x", 1.0, 0.02))
	assert.False(t, a.RemoveKeyframe("missing", 1.0, 0.02))
}
