package collision

import (
	"fmt"

	"github.com/arloliu/cdr/errs"
)

// Tracker maps schema ids to schema names and detects two names sharing
// one id. It keeps the order in which names were first seen.
type Tracker struct {
	names map[uint64]string // id → name
	order []string          // first-seen order
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
		order: make([]string, 0),
	}
}

// Track records name under id.
//
// Returns:
//   - bool: true the first time name is seen, false for a repeat
//   - error: ErrHashCollision if id is already held by a different name,
//     ErrInvalidSchemaName for an empty name
func (t *Tracker) Track(name string, id uint64) (bool, error) {
	if name == "" {
		return false, errs.ErrInvalidSchemaName
	}

	existing, ok := t.names[id]
	if !ok {
		t.names[id] = name
		t.order = append(t.order, name)

		return true, nil
	}

	if existing != name {
		return false, fmt.Errorf("%w: %q and %q share id %#x", errs.ErrHashCollision, existing, name, id)
	}

	return false, nil
}

// Name returns the name tracked under id.
func (t *Tracker) Name(id uint64) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// Names returns the tracked names in first-seen order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears the tracker, keeping its capacity.
func (t *Tracker) Reset() {
	clear(t.names)
	t.order = t.order[:0]
}
