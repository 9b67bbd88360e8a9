package action

import (
	"context"

	"github.com/AureClai/scenecore/pkg/backend"
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/layer"
)

// AddAudioPayload is the addAudio action's payload: a reserved placeholder
// clip is inserted synchronously, then filled in once the backend finishes
// decoding, per spec §5's two-phase async action pattern.
type AddAudioPayload struct {
	DSP       backend.DSP
	Track     *layer.Layer
	Path      string
	StartTime float64

	clip      *layer.AudioClip
	cancelled bool
}

// AddAudio returns a Record whose Execute reserves an AudioClip
// synchronously (zero duration, pool index -1); call StartAudioLoad
// afterwards to run the load and fill the clip in. If Rollback runs before
// the load completes, it marks the payload cancelled so the completion is a
// no-op (spec §5: "if the action is undone before the async
// phase completes, rollback must detect the placeholder state and no-op the
// post-completion update").
func AddAudio(p *AddAudioPayload) Record {
	return Record{
		Name:    "addAudio",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddAudioPayload)
			p.cancelled = false
			p.clip = &layer.AudioClip{
				ID:              id.New(),
				StartTime:       p.StartTime,
				SourcePoolIndex: -1,
			}
			p.Track.AudioClips = append(p.Track.AudioClips, p.clip)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddAudioPayload)
			p.cancelled = true
			for i, c := range p.Track.AudioClips {
				if c == p.clip {
					p.Track.AudioClips = append(p.Track.AudioClips[:i], p.Track.AudioClips[i+1:]...)
					return
				}
			}
		},
	}
}

// StartAudioLoad kicks off the asynchronous half of AddAudio. Call this
// after Stack.Create(AddAudio(p)) has run Execute. It applies the load
// result to the clip unless the action was rolled back first.
func StartAudioLoad(ctx context.Context, p *AddAudioPayload) {
	info, err := p.DSP.AudioLoadMIDIFile(ctx, p.Track.ID.String(), p.Path, p.StartTime)
	if err != nil || p.cancelled || p.clip == nil {
		return
	}
	p.clip.Duration = info.Duration
	p.clip.SourcePoolIndex = 0
}

// AddVideoPayload is the addVideo action's payload, mirroring AddAudio for
// a VideoLayer (spec §4.I, §5).
type AddVideoPayload struct {
	DSP       backend.DSP
	Track     *layer.Layer
	Path      string
	StartTime float64
	LinkAudio *layer.Layer // optional paired AudioTrack to link mutually

	clip      *layer.VideoClip
	audioClip *layer.AudioClip
	cancelled bool
}

// AddVideo reserves a placeholder VideoClip (and, if LinkAudio is set, a
// paired placeholder AudioClip with mutual weak links established
// immediately); call StartVideoLoad afterwards to run the async decode.
func AddVideo(p *AddVideoPayload) Record {
	return Record{
		Name:    "addVideo",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddVideoPayload)
			p.cancelled = false
			p.clip = &layer.VideoClip{
				ID:              id.New(),
				StartTime:       p.StartTime,
				SourcePoolIndex: -1,
			}
			p.Track.VideoClips = append(p.Track.VideoClips, p.clip)

			if p.LinkAudio != nil {
				p.audioClip = &layer.AudioClip{
					ID:              id.New(),
					StartTime:       p.StartTime,
					SourcePoolIndex: -1,
					LinkedVideoClip: p.clip.ID,
				}
				p.clip.LinkedAudioClip = p.audioClip.ID
				p.LinkAudio.AudioClips = append(p.LinkAudio.AudioClips, p.audioClip)
				p.Track.LinkedAudio = p.LinkAudio.ID
				p.LinkAudio.LinkedVideo = p.Track.ID
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddVideoPayload)
			p.cancelled = true
			for i, c := range p.Track.VideoClips {
				if c == p.clip {
					p.Track.VideoClips = append(p.Track.VideoClips[:i], p.Track.VideoClips[i+1:]...)
					break
				}
			}
			if p.audioClip != nil {
				for i, c := range p.LinkAudio.AudioClips {
					if c == p.audioClip {
						p.LinkAudio.AudioClips = append(p.LinkAudio.AudioClips[:i], p.LinkAudio.AudioClips[i+1:]...)
						break
					}
				}
			}
		},
	}
}

// StartVideoLoad kicks off the asynchronous half of AddVideo. Once the
// backend returns, the placeholder clip (and its linked audio clip, if any)
// is filled in -- unless the action has since been rolled back.
func StartVideoLoad(ctx context.Context, p *AddVideoPayload) {
	info, err := p.DSP.VideoLoadFile(ctx, p.Path)
	if err != nil || p.cancelled || p.clip == nil {
		return
	}
	p.clip.Duration = info.Duration
	p.clip.SourcePoolIndex = info.PoolIndex
	if p.audioClip != nil && info.HasAudio {
		p.audioClip.Duration = info.AudioDuration
		p.audioClip.SourcePoolIndex = info.AudioPoolIndex
		p.audioClip.Waveform = info.AudioWaveform
	}
}

// AddMIDIPayload is the addMIDI action's payload: a placeholder MIDI clip on
// an AudioKindMIDI track, filled in from the decoded note list once the
// backend finishes.
type AddMIDIPayload struct {
	DSP       backend.DSP
	Track     *layer.Layer
	Path      string
	StartTime float64

	clip      *layer.AudioClip
	cancelled bool
}

// AddMIDI mirrors AddAudio for a MIDI track.
func AddMIDI(p *AddMIDIPayload) Record {
	return Record{
		Name:    "addMIDI",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddMIDIPayload)
			p.cancelled = false
			p.clip = &layer.AudioClip{
				ID:              id.New(),
				StartTime:       p.StartTime,
				SourcePoolIndex: -1,
			}
			p.Track.AudioClips = append(p.Track.AudioClips, p.clip)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddMIDIPayload)
			p.cancelled = true
			for i, c := range p.Track.AudioClips {
				if c == p.clip {
					p.Track.AudioClips = append(p.Track.AudioClips[:i], p.Track.AudioClips[i+1:]...)
					return
				}
			}
		},
	}
}

// StartMIDILoad kicks off the asynchronous half of AddMIDI.
func StartMIDILoad(ctx context.Context, p *AddMIDIPayload) {
	info, err := p.DSP.AudioLoadMIDIFile(ctx, p.Track.ID.String(), p.Path, p.StartTime)
	if err != nil || p.cancelled || p.clip == nil {
		return
	}
	p.clip.Duration = info.Duration
	p.clip.SourcePoolIndex = 0
}
