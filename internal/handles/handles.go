// Package handles keeps the Go values that foreign callers refer to by opaque
// handle. A handle is a registry id, never a Go pointer, so it can cross the
// cgo boundary without violating the pointer passing rules.
package handles

import (
	"errors"
	"sync"
)

// Handle is an opaque, non-zero identifier for a registered value.
type Handle uintptr

// Kind tags what a handle refers to so a builder handle cannot be released
// as a product or finalized as the wrong builder.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAttributeSetBuilder
	KindAttributeSet
	KindAttributeValueMapBuilder
	KindAttributeValueMap
)

func (k Kind) String() string {
	switch k {
	case KindAttributeSetBuilder:
		return "attribute_set_builder"
	case KindAttributeSet:
		return "attribute_set"
	case KindAttributeValueMapBuilder:
		return "attribute_value_map_builder"
	case KindAttributeValueMap:
		return "attribute_value_map"
	default:
		return "invalid"
	}
}

// DefaultCapacity bounds the number of live handles in a Registry.
const DefaultCapacity = 1 << 20

var (
	// ErrUnknown reports a handle that was never issued, was already taken
	// or was released.
	ErrUnknown = errors.New("handles: unknown handle")

	// ErrWrongKind reports a live handle of a different kind than expected.
	ErrWrongKind = errors.New("handles: wrong handle kind")

	// ErrFull reports that the registry is at capacity.
	ErrFull = errors.New("handles: registry full")
)

type entry struct {
	kind  Kind
	value any
}

// Registry maps handles to values. All methods are safe for concurrent use;
// Take and Delete are atomic, so of two racing consumers of one handle exactly
// one succeeds.
type Registry struct {
	mu       sync.Mutex
	next     Handle
	capacity int
	reg      map[Handle]entry
}

// NewRegistry returns an empty registry holding at most capacity live
// handles. A non-positive capacity selects DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{next: 1, capacity: capacity, reg: map[Handle]entry{}}
}

// Put registers v under a fresh handle.
func (r *Registry) Put(kind Kind, v any) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reg) >= r.capacity {
		return 0, ErrFull
	}
	h := r.next
	r.next++
	if r.next == 0 {
		r.next = 1
	}
	r.reg[h] = entry{kind: kind, value: v}
	return h, nil
}

// Get returns the value registered under h without removing it.
func (r *Registry) Get(h Handle, kind Kind) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.reg[h]
	if !ok {
		return nil, ErrUnknown
	}
	if e.kind != kind {
		return nil, ErrWrongKind
	}
	return e.value, nil
}

// Take removes h and returns its value, transferring ownership to the caller.
// A handle of the wrong kind is left registered.
func (r *Registry) Take(h Handle, kind Kind) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.reg[h]
	if !ok {
		return nil, ErrUnknown
	}
	if e.kind != kind {
		return nil, ErrWrongKind
	}
	delete(r.reg, h)
	return e.value, nil
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reg)
}

// LenKind returns the number of live handles of the given kind.
func (r *Registry) LenKind(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.reg {
		if e.kind == kind {
			n++
		}
	}
	return n
}

// SetCapacity changes the live-handle limit. Handles already issued stay
// valid even if the new limit is lower.
func (r *Registry) SetCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	r.mu.Lock()
	r.capacity = capacity
	r.mu.Unlock()
}
