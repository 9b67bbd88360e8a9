// Package backend defines the external DSP and media-loading contracts of
// spec §6 that the Action system calls into asynchronously, plus an
// in-memory fake implementation used by tests and the scenectl CLI (since
// the real DSP/video engines are out of scope per spec §1's non-goals).
package backend

import "context"

// VideoInfo is the result of loading a video file through VideoLoadFile,
// per spec §6's video_load_file contract.
type VideoInfo struct {
	PoolIndex       int
	Duration        float64
	Width, Height   int
	HasAudio        bool
	AudioPoolIndex  int
	AudioDuration   float64
	AudioSampleRate int
	AudioChannels   int
	AudioWaveform   []float32
}

// MIDIInfo is the result of loading a MIDI file through AudioLoadMIDIFile.
type MIDIInfo struct {
	Duration float64
	Notes    []MIDINote
}

// MIDINote is a single note event from a loaded MIDI file.
type MIDINote struct {
	Time     float64
	Duration float64
	Pitch    int
	Velocity int
}

// DSP is the graph-editing and clip-placement backend contract of spec §6,
// consumed asynchronously by the action system's graph* and addAudio/
// addMIDI/addVideo actions.
type DSP interface {
	GraphAddNode(ctx context.Context, trackID, nodeType string, x, y float64) (nodeID string, err error)
	GraphRemoveNode(ctx context.Context, trackID, nodeID string) error
	GraphConnect(ctx context.Context, trackID, fromNode, fromPort, toNode, toPort string) error
	GraphDisconnect(ctx context.Context, trackID, fromNode, fromPort, toNode, toPort string) error
	GraphSetParameter(ctx context.Context, trackID, nodeID, paramID string, value float64) error

	AudioAddClip(ctx context.Context, trackID string, poolIndex int, startTime, duration, offset float64) error
	AudioLoadMIDIFile(ctx context.Context, trackID, path string, startTime float64) (MIDIInfo, error)

	VideoLoadFile(ctx context.Context, path string) (VideoInfo, error)
}
