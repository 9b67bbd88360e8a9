package action

import (
	"fmt"

	"github.com/AureClai/scenecore/pkg/layer"
	"github.com/AureClai/scenecore/pkg/scene"
)

// AddLayerPayload is the addLayer action's payload.
type AddLayerPayload struct {
	Parent *scene.GraphicsObject
	Layer  *layer.Layer
}

// AddLayer appends Layer to Parent.
func AddLayer(p *AddLayerPayload) Record {
	return Record{
		Name:    "addLayer",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*AddLayerPayload)
			p.Parent.AddLayer(p.Layer)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*AddLayerPayload)
			p.Parent.RemoveLayer(p.Layer)
		},
	}
}

// DeleteLayerPayload is the deleteLayer action's payload. Execute is a
// no-op when Layer is Parent's only remaining layer of its kind (the record
// is still pushed, and its Rollback is then a no-op too), per spec §4.I's
// "protect against deleting the only layer".
type DeleteLayerPayload struct {
	Parent *scene.GraphicsObject
	Layer  *layer.Layer

	skipped bool
}

// DeleteLayer removes Layer from Parent, refusing (a silent no-op) if it
// is the last layer of its kind.
func DeleteLayer(p *DeleteLayerPayload) Record {
	return Record{
		Name:    "deleteLayer",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*DeleteLayerPayload)
			count := len(p.Parent.Layers)
			if p.Layer.Kind == layer.KindAudio {
				count = len(p.Parent.AudioTracks)
			}
			if count <= 1 {
				p.skipped = true
				return
			}
			p.skipped = false
			p.Parent.RemoveLayer(p.Layer)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*DeleteLayerPayload)
			if p.skipped {
				return
			}
			p.Parent.AddLayer(p.Layer)
		},
	}
}

// ChangeLayerNamePayload is the changeLayerName action's payload.
type ChangeLayerNamePayload struct {
	Layer   *layer.Layer
	NewName string

	oldName string
}

// ChangeLayerName renames Layer, storing the old name for rollback.
func ChangeLayerName(p *ChangeLayerNamePayload) Record {
	return Record{
		Name:    "changeLayerName",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*ChangeLayerNamePayload)
			p.oldName = p.Layer.Name
			p.Layer.Name = p.NewName
		},
		Rollback: func(payload interface{}) {
			p := payload.(*ChangeLayerNamePayload)
			p.Layer.Name = p.oldName
		},
	}
}

// String renders a payload for diagnostics; used by the stale-action
// logging path (spec §7).
func (p *DeleteLayerPayload) String() string {
	return fmt.Sprintf("deleteLayer(%s)", p.Layer.Name)
}
