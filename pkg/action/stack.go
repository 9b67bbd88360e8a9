// Package action implements spec §4.I: the transactional action system --
// paired undo/redo stacks over immutable action records, continuous
// (drag) actions, and the concrete action catalog of §4.I's representative
// set.
package action

import "github.com/AureClai/scenecore/internal/logx"

// Record is an immutable action value: a name plus a payload, and the pure
// execute/rollback functions that are exact inverses of one another over
// that payload (spec §3's Action entity). Concrete action constructors
// (AddShape, MoveObjects, ...) build a Record closing over the scene state
// they mutate.
type Record struct {
	Name     string
	Payload  interface{}
	Execute  func(payload interface{})
	Rollback func(payload interface{})
}

// Stack holds the paired undo/redo stacks spec §4.I describes. The zero
// value is ready to use.
type Stack struct {
	undo []Record
	redo []Record
	log  *logx.Logger
}

// NewStack returns an empty Stack.
func NewStack() *Stack {
	return &Stack{log: logx.Nop}
}

// SetLogger overrides the diagnostic sink (default: discard).
func (s *Stack) SetLogger(l *logx.Logger) {
	s.log = l
}

// Create clears the redo stack, pushes r onto the undo stack, and calls
// r.Execute(r.Payload), per spec §4.I's create lifecycle verb.
func (s *Stack) Create(r Record) {
	s.redo = nil
	s.undo = append(s.undo, r)
	r.Execute(r.Payload)
}

// Undo pops the undo stack, rolls it back, and pushes it onto the redo
// stack. Reports false if there was nothing to undo.
func (s *Stack) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	r := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	r.Rollback(r.Payload)
	s.redo = append(s.redo, r)
	return true
}

// Redo pops the redo stack, re-executes it, and pushes it back onto the
// undo stack. Reports false if there was nothing to redo.
func (s *Stack) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	r := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	r.Execute(r.Payload)
	s.undo = append(s.undo, r)
	return true
}

// UndoLen and RedoLen report stack depth, mostly for tests and UI state.
func (s *Stack) UndoLen() int { return len(s.undo) }
func (s *Stack) RedoLen() int { return len(s.redo) }

// PeekUndo returns the name of the action that would be undone next.
func (s *Stack) PeekUndo() (string, bool) {
	if len(s.undo) == 0 {
		return "", false
	}
	return s.undo[len(s.undo)-1].Name, true
}

// Continuous is the lifecycle for a drag-driven action (spec §4.I:
// "Continuous actions additionally define initialize, update, render,
// finalize -- the first three run during a drag; finalize pushes the final
// payload and calls execute"). Payload is opaque to the Stack; Render is
// the caller's responsibility (a live preview), not stored here.
type Continuous struct {
	Name       string
	payload    interface{}
	executeFn  func(payload interface{})
	rollbackFn func(payload interface{})
}

// NewContinuous begins a continuous action with its initial payload.
func NewContinuous(name string, payload interface{}, execute, rollback func(interface{})) *Continuous {
	return &Continuous{Name: name, payload: payload, executeFn: execute, rollbackFn: rollback}
}

// Update replaces the in-flight payload (spec's update(payload, input) ->
// payload), without touching the undo stack.
func (c *Continuous) Update(payload interface{}) {
	c.payload = payload
}

// Finalize pushes the final payload onto stack as a completed Create, per
// spec §4.I. If payload is nil, the action is dropped entirely (an
// accumulated error aborted the drag into a no-op, per spec §7's
// propagation policy for continuous actions).
func (c *Continuous) Finalize(stack *Stack, payload interface{}) {
	if payload == nil {
		return
	}
	c.payload = payload
	stack.Create(Record{
		Name:     c.Name,
		Payload:  c.payload,
		Execute:  c.executeFn,
		Rollback: c.rollbackFn,
	})
}
