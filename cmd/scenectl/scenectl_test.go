package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/AureClai/scenecore/pkg/compositor"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/geom"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/persist"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/AureClai/scenecore/pkg/shape"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestScene(t *testing.T) string {
	t.Helper()

	registry := id.NewRegistry()
	root := scene.New(registry, "root", 24)
	l := layer.NewVector("layer 0")
	root.AddLayer(l)

	s := shape.New(registry, id.New(), 0, 0)
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 0}, P1: geom.Point{X: 3, Y: 0}, P2: geom.Point{X: 7, Y: 0}, P3: geom.Point{X: 10, Y: 0}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 0}, P1: geom.Point{X: 10, Y: 3}, P2: geom.Point{X: 10, Y: 7}, P3: geom.Point{X: 10, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 10, Y: 10}, P1: geom.Point{X: 7, Y: 10}, P2: geom.Point{X: 3, Y: 10}, P3: geom.Point{X: 0, Y: 10}})
	s.AddCurve(geom.Bezier{P0: geom.Point{X: 0, Y: 10}, P1: geom.Point{X: 0, Y: 7}, P2: geom.Point{X: 0, Y: 3}, P3: geom.Point{X: 0, Y: 0}})
	s.Filled = true
	s.FillStyle = "red"
	s.Update()
	l.AddShape(s, 0, 0.02)

	data, err := persist.MarshalScene(root)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadSceneRoundTripsPersistedShape(t *testing.T) {
	path := writeTestScene(t)

	root, registry, err := loadScene(path)
	require.NoError(t, err)
	require.NotNil(t, registry)
	require.Len(t, root.Layers, 1)
	assert.Len(t, root.Layers[0].Shapes, 1)
}

func TestValidateAcceptsWellFormedScene(t *testing.T) {
	path := writeTestScene(t)

	cmd := &cobra.Command{}
	err := runValidate(cmd, []string{path})
	assert.NoError(t, err)
}

func TestValidateCurveAcceptsStrictlyIncreasingKeyframes(t *testing.T) {
	c := curve.New("rotation")
	c.AddKeyframe(curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Linear}, 0.02)
	c.AddKeyframe(curve.Keyframe{Time: 1, Value: 90.0, Interpolation: curve.Linear}, 0.02)

	var problems []string
	validateCurve("rotation", c, &problems)
	assert.Empty(t, problems)
}

func TestRenderDrivesCompositorAndCountsCalls(t *testing.T) {
	path := writeTestScene(t)

	root, registry, err := loadScene(path)
	require.NoError(t, err)

	comp := compositor.New(registry, 24)
	renderer := &logRenderer{}
	comp.Draw(root, renderer)

	assert.Greater(t, renderer.calls, 0)
}
