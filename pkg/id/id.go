// Package id provides the stable 128-bit identifiers and the global
// id-to-handle Registry described in spec §4.A. Ownership is modeled
// strictly downward (GraphicsObject -> Layer -> Shape / child
// GraphicsObject); every upward or cross-tree reference is a weak ID
// resolved through a Registry lookup instead of a pointer, so the scene
// graph never needs to reason about reference cycles.
package id

import "github.com/google/uuid"

// ID is an opaque, process-wide-unique identifier.
type ID uuid.UUID

// Nil is the zero ID, used as a sentinel for "no reference".
var Nil ID

// New generates a fresh identifier using cryptographically strong
// randomness (UUIDv4).
func New() ID {
	return ID(uuid.New())
}

// String renders the canonical hyphenated form.
func (i ID) String() string {
	return uuid.UUID(i).String()
}

// IsNil reports whether this is the zero ID.
func (i ID) IsNil() bool {
	return i == Nil
}

// MarshalText implements encoding.TextMarshaler so an ID serializes as its
// canonical string form in JSON, matching spec §6's persisted-state schema.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (i *ID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*i = ID(u)
	return nil
}

// Parse parses a canonical ID string, e.g. when resolving a
// "child.<id>.x" parameter-name reference (spec §9: canonicalize into an
// enum-plus-id key; the string form remains the wire representation).
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return ID(u), nil
}

// Handle is anything a Registry entry can point to. It is intentionally
// opaque (an interface{}) since the Registry holds shapes, layers,
// GraphicsObjects and clips side by side; callers type-assert after Get.
type Handle = interface{}

// Registry is the single source of truth for entity liveness: entities
// register on construction and deregister on destruction. A lookup that
// finds nothing is a normal condition -- it is how undo of a
// delete-then-recreate chain stays correct (spec §4.A, §7) -- so Get
// returns a boolean rather than an error.
type Registry struct {
	entries map[ID]Handle
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[ID]Handle)}
}

// Insert registers handle under id, overwriting any previous entry. Safe to
// call reentrantly (e.g. from inside an execute() that triggers a redraw
// which itself reads the Registry): map mutation and lookup never block.
func (r *Registry) Insert(i ID, handle Handle) {
	r.entries[i] = handle
}

// Get resolves an ID to its handle. The boolean is false when the id is not
// currently live -- callers must degrade gracefully (skip, not panic).
func (r *Registry) Get(i ID) (Handle, bool) {
	h, ok := r.entries[i]
	return h, ok
}

// Remove deregisters an id. Removing an id that isn't present is a no-op.
func (r *Registry) Remove(i ID) {
	delete(r.entries, i)
}

// Len reports the number of live entries, mostly useful for tests.
func (r *Registry) Len() int {
	return len(r.entries)
}
