package main

import (
	"fmt"
	"os"

	"github.com/AureClai/scenecore/internal/config"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/persist"
	"github.com/AureClai/scenecore/pkg/scene"
)

// loadScene reads a persisted GraphicsObject tree from path per spec §6's
// JSON contract, using a fresh Registry and the default configuration's
// time resolution. It returns the registry alongside the tree so callers
// can resolve weak references the same way the rest of the core does.
func loadScene(path string) (*scene.GraphicsObject, *id.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read scene file %s: %w", path, err)
	}

	cfg := config.Default()
	registry := id.NewRegistry()
	root, err := persist.UnmarshalScene(data, registry, cfg.Framerate, cfg.TimeResolution(), false)
	if err != nil {
		return nil, nil, fmt.Errorf("could not unmarshal scene: %w", err)
	}
	return root, registry, nil
}
