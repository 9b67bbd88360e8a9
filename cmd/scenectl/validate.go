package main

import (
	"fmt"

	"github.com/AureClai/scenecore/internal/config"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/persist"
	"github.com/AureClai/scenecore/pkg/scene"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <scene.json>",
	Short: "Round-trips a scene file and checks the core's structural invariants (spec §8).",
	Long: `Loads a persisted scene, re-marshals it, and walks the resulting tree
checking: every Shape resolves through the Registry, every AnimationCurve's
keyframes are strictly increasing in time, and every Layer's AnimationData
duration matches the latest keyframe across its curves.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	loaded, _, err := loadScene(args[0])
	if err != nil {
		return err
	}

	data, err := persist.MarshalScene(loaded)
	if err != nil {
		return fmt.Errorf("could not re-marshal scene: %w", err)
	}
	cfg := config.Default()
	registry := id.NewRegistry()
	root, err := persist.UnmarshalScene(data, registry, cfg.Framerate, cfg.TimeResolution(), false)
	if err != nil {
		return fmt.Errorf("could not unmarshal re-marshalled scene: %w", err)
	}

	var problems []string
	walkScene(root, registry, &problems)

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(cmd.ErrOrStderr(), "invalid:", p)
		}
		return fmt.Errorf("%d invariant violation(s) in %s", len(problems), args[0])
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
	return nil
}

func walkScene(g *scene.GraphicsObject, registry *id.Registry, problems *[]string) {
	for _, l := range g.Layers {
		validateLayer(l, registry, problems)
		for _, child := range l.Children {
			if obj, ok := child.(*scene.GraphicsObject); ok {
				walkScene(obj, registry, problems)
			}
		}
	}
}

func validateLayer(l *layer.Layer, registry *id.Registry, problems *[]string) {
	for _, s := range l.Shapes {
		if _, ok := registry.Get(s.ID); !ok {
			*problems = append(*problems, fmt.Sprintf("shape %s missing from registry (layer %q)", s.ID, l.Name))
		}
		if _, ok := registry.Get(s.ShapeID); !ok {
			*problems = append(*problems, fmt.Sprintf("logical shape_id %s missing from registry (layer %q)", s.ShapeID, l.Name))
		}
	}

	if l.AnimationData == nil {
		return
	}

	maxDuration := 0.0
	for _, name := range l.AnimationData.CurveNames() {
		c, ok := l.AnimationData.GetCurve(name)
		if !ok {
			continue
		}
		validateCurve(name, c, problems)
		if d := c.Duration(); d > maxDuration {
			maxDuration = d
		}
	}

	if got := l.AnimationData.Duration(); got != maxDuration {
		*problems = append(*problems, fmt.Sprintf("layer %q animationData duration %.6f does not match max curve duration %.6f", l.Name, got, maxDuration))
	}
}

func validateCurve(name string, c *curve.AnimationCurve, problems *[]string) {
	keyframes := c.Keyframes()
	for i := 1; i < len(keyframes); i++ {
		if keyframes[i].Time <= keyframes[i-1].Time {
			*problems = append(*problems, fmt.Sprintf("curve %q keyframes not strictly increasing at index %d (%.6f <= %.6f)", name, i, keyframes[i].Time, keyframes[i-1].Time))
		}
	}
}
