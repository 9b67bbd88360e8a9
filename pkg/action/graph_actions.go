package action

import (
	"context"

	"github.com/AureClai/scenecore/internal/logx"
	"github.com/AureClai/scenecore/pkg/backend"
	"github.com/AureClai/scenecore/pkg/curve"
	"github.com/AureClai/scenecore/pkg/layer"
)

// graphAutomationInput is the node type that, once connected, auto-seeds a
// parameter automation curve on the owning track (spec §6's "automation
// input" node behavior).
const graphAutomationInput = "automation_input"

// GraphAddNodePayload is the graphAddNode action's payload: a pass-through
// to backend.DSP that records enough state (type, position) for Rollback to
// issue the matching GraphRemoveNode.
type GraphAddNodePayload struct {
	DSP      backend.DSP
	Track    *layer.Layer
	NodeType string
	X, Y     float64
	Log      *logx.Logger

	nodeID string
}

// GraphAddNode calls DSP.GraphAddNode synchronously (the graph-editing
// calls are cheap and local to the audio engine, unlike addAudio/addVideo's
// file decode) and records the minted node id for rollback and for callers
// that need it (e.g. immediately following with GraphConnect).
func GraphAddNode(p *GraphAddNodePayload) Record {
	return Record{
		Name:    "graphAddNode",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphAddNodePayload)
			nodeID, err := p.DSP.GraphAddNode(context.Background(), p.Track.ID.String(), p.NodeType, p.X, p.Y)
			if err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphAddNode: %v", err)
				return
			}
			p.nodeID = nodeID
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphAddNodePayload)
			if p.nodeID == "" {
				return
			}
			if err := p.DSP.GraphRemoveNode(context.Background(), p.Track.ID.String(), p.nodeID); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphAddNode rollback: %v", err)
			}
		},
	}
}

// NodeID returns the id minted by a completed GraphAddNode Execute.
func (p *GraphAddNodePayload) NodeID() string { return p.nodeID }

// GraphRemoveNodePayload is the graphRemoveNode action's payload. Full
// restoration of the removed node's connections is out of scope (spec §1's
// non-goals exclude deep DSP graph state); rollback re-adds the node at its
// prior position only.
type GraphRemoveNodePayload struct {
	DSP      backend.DSP
	Track    *layer.Layer
	NodeID   string
	NodeType string
	X, Y     float64
	Log      *logx.Logger
}

// GraphRemoveNode removes a node, recreating it (without its former
// connections) on rollback.
func GraphRemoveNode(p *GraphRemoveNodePayload) Record {
	return Record{
		Name:    "graphRemoveNode",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphRemoveNodePayload)
			if err := p.DSP.GraphRemoveNode(context.Background(), p.Track.ID.String(), p.NodeID); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphRemoveNode: %v", err)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphRemoveNodePayload)
			newID, err := p.DSP.GraphAddNode(context.Background(), p.Track.ID.String(), p.NodeType, p.X, p.Y)
			if err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphRemoveNode rollback: %v", err)
				return
			}
			p.NodeID = newID
		},
	}
}

// GraphConnectionPayload is the graphAddConnection/graphRemoveConnection
// actions' shared payload: one edge between two node ports. If FromNode is
// the track's automation_input node, Execute additionally seeds a parameter
// automation curve (named by ParamCurveName) on the track so the connection
// has something to drive immediately, per spec §6.
type GraphConnectionPayload struct {
	DSP                      backend.DSP
	Track                    *layer.Layer
	FromNode, FromPort       string
	ToNode, ToPort           string
	FromNodeType             string
	ParamCurveName           string
	TimeResolution           float64
	Log                      *logx.Logger

	seededCurve bool
}

// GraphAddConnection connects two ports and, for an automation_input source,
// seeds the named parameter curve with a single identity keyframe at t=0 if
// it doesn't already exist.
func GraphAddConnection(p *GraphConnectionPayload) Record {
	return Record{
		Name:    "graphAddConnection",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphConnectionPayload)
			if err := p.DSP.GraphConnect(context.Background(), p.Track.ID.String(), p.FromNode, p.FromPort, p.ToNode, p.ToPort); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphAddConnection: %v", err)
				return
			}
			if p.FromNodeType == graphAutomationInput && p.ParamCurveName != "" {
				if _, exists := p.Track.AnimationData.GetCurve(p.ParamCurveName); !exists {
					p.Track.AnimationData.AddKeyframe(p.ParamCurveName,
						curve.Keyframe{Time: 0, Value: 0.0, Interpolation: curve.Linear}, p.TimeResolution)
					p.seededCurve = true
				}
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphConnectionPayload)
			if err := p.DSP.GraphDisconnect(context.Background(), p.Track.ID.String(), p.FromNode, p.FromPort, p.ToNode, p.ToPort); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphAddConnection rollback: %v", err)
			}
			if p.seededCurve {
				p.Track.AnimationData.RemoveCurve(p.ParamCurveName)
			}
		},
	}
}

// GraphRemoveConnection is the inverse of GraphAddConnection; it does not
// remove an automation curve the connection may have seeded, since other
// keyframes may have been authored onto it since.
func GraphRemoveConnection(p *GraphConnectionPayload) Record {
	return Record{
		Name:    "graphRemoveConnection",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphConnectionPayload)
			if err := p.DSP.GraphDisconnect(context.Background(), p.Track.ID.String(), p.FromNode, p.FromPort, p.ToNode, p.ToPort); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphRemoveConnection: %v", err)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphConnectionPayload)
			if err := p.DSP.GraphConnect(context.Background(), p.Track.ID.String(), p.FromNode, p.FromPort, p.ToNode, p.ToPort); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphRemoveConnection rollback: %v", err)
			}
		},
	}
}

// GraphSetParameterPayload is the graphSetParameter action's payload.
type GraphSetParameterPayload struct {
	DSP     backend.DSP
	Track   *layer.Layer
	NodeID  string
	ParamID string
	Value   float64
	Log     *logx.Logger

	// OldValue is the parameter's value before this action, restored by
	// Rollback.
	OldValue float64
}

// GraphSetParameter sets a node's parameter, remembering the prior value
// (passed in by the caller, since DSP exposes no getter) for rollback.
func GraphSetParameter(p *GraphSetParameterPayload) Record {
	return Record{
		Name:    "graphSetParameter",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphSetParameterPayload)
			if err := p.DSP.GraphSetParameter(context.Background(), p.Track.ID.String(), p.NodeID, p.ParamID, p.Value); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphSetParameter: %v", err)
			}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphSetParameterPayload)
			if err := p.DSP.GraphSetParameter(context.Background(), p.Track.ID.String(), p.NodeID, p.ParamID, p.OldValue); err != nil {
				logOrNop(p.Log).Error().Src("action").Msgf("graphSetParameter rollback: %v", err)
			}
		},
	}
}

// GraphMoveNodePayload is the graphMoveNode action's payload: a purely
// local position change (no DSP call -- node position is UI-only state the
// core keeps on the action's behalf).
type GraphMoveNodePayload struct {
	NodeID     string
	NewX, NewY float64
	Positions  *map[string][2]float64

	oldX, oldY float64
	hadOld     bool
}

// GraphMoveNode updates NodeID's position in Positions (a map the caller
// owns, keyed by node id), restoring the prior entry on rollback.
func GraphMoveNode(p *GraphMoveNodePayload) Record {
	return Record{
		Name:    "graphMoveNode",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*GraphMoveNodePayload)
			if old, ok := (*p.Positions)[p.NodeID]; ok {
				p.oldX, p.oldY, p.hadOld = old[0], old[1], true
			}
			(*p.Positions)[p.NodeID] = [2]float64{p.NewX, p.NewY}
		},
		Rollback: func(payload interface{}) {
			p := payload.(*GraphMoveNodePayload)
			if p.hadOld {
				(*p.Positions)[p.NodeID] = [2]float64{p.oldX, p.oldY}
			} else {
				delete(*p.Positions, p.NodeID)
			}
		},
	}
}

func logOrNop(l *logx.Logger) *logx.Logger {
	if l == nil {
		return logx.Nop
	}
	return l
}
