// Package paramkey canonicalizes the dynamic "child.<id>.x"-style parameter
// names animation curves are keyed by into a typed {kind, target} pair, per
// the redesign note on dynamic property access: callers build a Key and
// format it once when they need the string AnimationData stores curves
// under, rather than hand-assembling format strings at every call site (and
// never need to parse one back apart in a hot path).
package paramkey

import (
	"fmt"
	"strings"

	"github.com/AureClai/scenecore/pkg/id"
)

// Kind is the fixed set of parameter kinds the core ever keys a curve by.
type Kind int

const (
	ShapeExists Kind = iota
	ShapeZOrder
	ShapeIndex
	ObjectExists
	ChildX
	ChildY
	ChildRotation
	ChildScaleX
	ChildScaleY
	ChildFrameNumber
)

// Key is a canonical (kind, target identifier) pair identifying one
// parameter curve.
type Key struct {
	Kind   Kind
	Target id.ID
}

// String renders the Key in the dotted-string form spec.md names
// explicitly (e.g. "shape.<shape_id>.exists", "child.<id>.frameNumber"),
// which is also the form persisted to JSON (spec §6).
func (k Key) String() string {
	switch k.Kind {
	case ShapeExists:
		return fmt.Sprintf("shape.%s.exists", k.Target)
	case ShapeZOrder:
		return fmt.Sprintf("shape.%s.zOrder", k.Target)
	case ShapeIndex:
		return fmt.Sprintf("shape.%s.shapeIndex", k.Target)
	case ObjectExists:
		return fmt.Sprintf("object.%s.exists", k.Target)
	case ChildX:
		return fmt.Sprintf("child.%s.x", k.Target)
	case ChildY:
		return fmt.Sprintf("child.%s.y", k.Target)
	case ChildRotation:
		return fmt.Sprintf("child.%s.rotation", k.Target)
	case ChildScaleX:
		return fmt.Sprintf("child.%s.scale_x", k.Target)
	case ChildScaleY:
		return fmt.Sprintf("child.%s.scale_y", k.Target)
	case ChildFrameNumber:
		return fmt.Sprintf("child.%s.frameNumber", k.Target)
	default:
		return fmt.Sprintf("unknown.%s", k.Target)
	}
}

// ParseKey reverses String: it recovers the (kind, target) pair from a
// dotted curve name. This is the one place the core does parse a
// dynamic-property-style string -- needed only by cold paths that must
// rewrite an id embedded in a curve name (duplicateObject's UUID remap,
// persisted-JSON id-randomization on paste) rather than by the compositor's
// hot path, which only ever builds these strings, never parses them back
// apart (per the redesign note on dynamic property access).
func ParseKey(s string) (Key, bool) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) != 3 {
		return Key{}, false
	}
	target, err := id.Parse(parts[1])
	if err != nil {
		return Key{}, false
	}
	kind, ok := kindFromParts(parts[0], parts[2])
	if !ok {
		return Key{}, false
	}
	return Key{Kind: kind, Target: target}, true
}

func kindFromParts(prefix, suffix string) (Kind, bool) {
	switch prefix {
	case "shape":
		switch suffix {
		case "exists":
			return ShapeExists, true
		case "zOrder":
			return ShapeZOrder, true
		case "shapeIndex":
			return ShapeIndex, true
		}
	case "object":
		if suffix == "exists" {
			return ObjectExists, true
		}
	case "child":
		switch suffix {
		case "x":
			return ChildX, true
		case "y":
			return ChildY, true
		case "rotation":
			return ChildRotation, true
		case "scale_x":
			return ChildScaleX, true
		case "scale_y":
			return ChildScaleY, true
		case "frameNumber":
			return ChildFrameNumber, true
		}
	}
	return 0, false
}
