package action

import (
	"github.com/AureClai/scenecore/pkg/id"
	"github.com/AureClai/scenecore/pkg/selection"
)

// SelectPayload is the shared payload for select/selectAll/selectNone: one
// canonical definition, per spec §9's note that the source's duplicated
// select/selectAll/selectNone modules are a refactoring artifact not to be
// reproduced.
type SelectPayload struct {
	Selection *selection.Selection
	Objects   []id.ID
	Shapes    []id.ID
}

// Select replaces the current selection with Objects/Shapes.
func Select(p *SelectPayload) Record {
	return Record{
		Name:    "select",
		Payload: p,
		Execute: func(payload interface{}) {
			p := payload.(*SelectPayload)
			p.Selection.Select(p.Objects, p.Shapes)
		},
		Rollback: func(payload interface{}) {
			p := payload.(*SelectPayload)
			p.Selection.RestorePrior()
		},
	}
}

// SelectAll selects every id in Objects and Shapes.
func SelectAll(p *SelectPayload) Record {
	r := Select(p)
	r.Name = "selectAll"
	return r
}

// SelectNone clears the selection (Objects/Shapes on p are ignored).
func SelectNone(p *SelectPayload) Record {
	p.Objects = nil
	p.Shapes = nil
	r := Select(p)
	r.Name = "selectNone"
	return r
}
