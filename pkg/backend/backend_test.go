package backend_test

import (
	"context"
	"testing"

	"github.com/AureClai/scenecore/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeGraphAddNodeThenConnectSucceeds(t *testing.T) {
	f := backend.NewFake()
	ctx := context.Background()

	a, err := f.GraphAddNode(ctx, "track", "osc", 0, 0)
	require.NoError(t, err)
	b, err := f.GraphAddNode(ctx, "track", "gain", 100, 0)
	require.NoError(t, err)

	assert.NoError(t, f.GraphConnect(ctx, "track", a, "out", b, "in"))
}

func TestFakeGraphConnectUnknownNodeErrors(t *testing.T) {
	f := backend.NewFake()
	ctx := context.Background()

	err := f.GraphConnect(ctx, "track", "does-not-exist", "out", "also-missing", "in")
	assert.Error(t, err)
}

func TestFakeGraphRemoveNodeThenSetParameterErrors(t *testing.T) {
	f := backend.NewFake()
	ctx := context.Background()

	nodeID, err := f.GraphAddNode(ctx, "track", "osc", 0, 0)
	require.NoError(t, err)
	require.NoError(t, f.GraphRemoveNode(ctx, "track", nodeID))

	assert.Error(t, f.GraphSetParameter(ctx, "track", nodeID, "freq", 440))
}

func TestFakeVideoLoadFileReturnsPlaceholder(t *testing.T) {
	f := backend.NewFake()
	info, err := f.VideoLoadFile(context.Background(), "clip.mp4")
	require.NoError(t, err)
	assert.Greater(t, info.Duration, 0.0)
}

func TestFakeAudioLoadMIDIFileReturnsPlaceholder(t *testing.T) {
	f := backend.NewFake()
	info, err := f.AudioLoadMIDIFile(context.Background(), "track", "song.mid", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, info.Duration)
}
