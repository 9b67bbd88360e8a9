package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/AureClai/scenecore/pkg/id"
)

// Fake is an in-memory DSP implementation: no real audio graph or video
// decoding, just enough bookkeeping to exercise the async action lifecycle
// (spec §5's "reserve then complete" two-phase pattern) in tests and the
// scenectl CLI, where no real DSP/video engine is wired per spec §1's
// non-goals.
type Fake struct {
	mu    sync.Mutex
	nodes map[string]bool
}

// NewFake returns an empty Fake backend.
func NewFake() *Fake {
	return &Fake{nodes: make(map[string]bool)}
}

func (f *Fake) GraphAddNode(_ context.Context, _, _ string, _, _ float64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	nodeID := id.New().String()
	f.nodes[nodeID] = true
	return nodeID, nil
}

func (f *Fake) GraphRemoveNode(_ context.Context, _, nodeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.nodes, nodeID)
	return nil
}

func (f *Fake) GraphConnect(_ context.Context, _, fromNode, _, toNode, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.nodes[fromNode] || !f.nodes[toNode] {
		return fmt.Errorf("backend: unknown node in connection %s -> %s", fromNode, toNode)
	}
	return nil
}

func (f *Fake) GraphDisconnect(_ context.Context, _, _, _, _, _ string) error {
	return nil
}

func (f *Fake) GraphSetParameter(_ context.Context, _, nodeID, _ string, _ float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.nodes[nodeID] {
		return fmt.Errorf("backend: unknown node %s", nodeID)
	}
	return nil
}

func (f *Fake) AudioAddClip(_ context.Context, _ string, _ int, _, _, _ float64) error {
	return nil
}

// AudioLoadMIDIFile always succeeds, returning a fixed one-second, empty
// note list: the fake never touches the filesystem.
func (f *Fake) AudioLoadMIDIFile(_ context.Context, _, _ string, _ float64) (MIDIInfo, error) {
	return MIDIInfo{Duration: 1.0}, nil
}

// VideoLoadFile always succeeds, returning a fixed placeholder clip.
func (f *Fake) VideoLoadFile(_ context.Context, _ string) (VideoInfo, error) {
	return VideoInfo{PoolIndex: 0, Duration: 1.0, Width: 1920, Height: 1080}, nil
}
