package action

import "github.com/AureClai/scenecore/internal/logx"

// EditFramePayload carries through whatever arguments a caller still passes
// to the deprecated editFrame entry point, purely so the warning can name
// the target it was invoked against.
type EditFramePayload struct {
	Target string
	Log    *logx.Logger
}

// EditFrame is kept as a named action purely so callers migrating off the
// legacy integer-frame model don't hit a missing symbol; it performs no
// scene mutation and its Rollback does nothing. Per the decision on
// the source's ambiguous frame-editing semantics, the re-architected
// animation model (pkg/animdata, pkg/curve) replaces per-frame edits with
// keyframe curves entirely, so there is nothing left for editFrame to do.
func EditFrame(p *EditFramePayload) Record {
	return Record{
		Name:    "editFrame",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*EditFramePayload)
			logOrNop(p.Log).Warn().Src("action").Msgf("editFrame(%s) is a no-op under the keyframe animation model", p.Target)
		},
		Rollback: func(interface{}) {},
	}
}

// LegacyFramePayload is the shared payload shape for the remaining
// legacy integer-frame bookkeeping actions (addKeyframe, addFrame,
// deleteFrame, moveFrames). None of them mutate scene state; each logs a
// migration warning naming the call it stands in for, for the same reason
// as EditFrame.
type LegacyFramePayload struct {
	Call string
	Log  *logx.Logger
}

func legacyNoop(name string) func(*LegacyFramePayload) Record {
	return func(p *LegacyFramePayload) Record {
		return Record{
			Name:    name,
			Payload: p,
			Execute: func(payload interface{}) {
				p := payload.(*LegacyFramePayload)
				logOrNop(p.Log).Warn().Src("action").Msgf("%s is deprecated frame bookkeeping with no keyframe-model equivalent; ignored", p.Call)
			},
			Rollback: func(interface{}) {},
		}
	}
}

// AddKeyframe, AddFrame, DeleteFrame, and MoveFrames are the legacy
// integer-frame actions referenced by older project files; they are
// intentionally inert under the curve-based animation model.
var (
	AddKeyframe = legacyNoop("addKeyframe")
	AddFrame    = legacyNoop("addFrame")
	DeleteFrame = legacyNoop("deleteFrame")
	MoveFrames  = legacyNoop("moveFrames")
)
