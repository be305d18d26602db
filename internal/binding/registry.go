package binding

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"fieldpath/internal/diagnostic"
	"fieldpath/internal/members"
)

var (
	ErrDuplicateBindingName = errors.New("name already used")
	ErrObjectAlreadyBound   = errors.New("object already connected")
	ErrBindingNotFound      = errors.New("binding not found")
)

// Options configure a Registry and the connectors it creates.
type Options struct {
	// Members controls member naming for attribute-bearing objects.
	Members members.Options
	// TypeCheck enables type-mismatch warnings on UpdateInView.
	TypeCheck bool
	// Sink receives warnings. Nil discards them.
	Sink diagnostic.Sink
}

// DefaultOptions enables type checks with default member naming and discards
// diagnostics.
func DefaultOptions() Options {
	return Options{Members: members.DefaultOptions(), TypeCheck: true}
}

// Registry maps binding names to connectors. It is safe for concurrent use;
// the linked objects themselves are not protected.
type Registry struct {
	mu         sync.RWMutex
	connectors map[string]*Connector
	opts       Options
}

// NewRegistry creates an empty registry.
func NewRegistry(opts Options) *Registry {
	if opts.Sink == nil {
		opts.Sink = diagnostic.Discard
	}

	return &Registry{
		connectors: make(map[string]*Connector),
		opts:       opts,
	}
}

// Check reports whether linked can be bound under name. It fails when name
// is taken or when linked is already the object of another binding. The
// registry is not modified.
func (r *Registry) Check(linked any, name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.check(linked, name)
}

func (r *Registry) check(linked any, name string) error {
	if _, ok := r.connectors[name]; ok {
		return fmt.Errorf("cannot connect to binding %s: %w", name, ErrDuplicateBindingName)
	}

	for _, c := range r.connectors {
		if sameObject(c.linked, linked) {
			return fmt.Errorf("cannot connect to binding %s: %w", name, ErrObjectAlreadyBound)
		}
	}

	return nil
}

// Connect checks and registers a new binding. linked may be nil for bindings
// that are not backed by an object.
func (r *Registry) Connect(linked any, name string) (*Connector, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.check(linked, name); err != nil {
		return nil, err
	}

	c := newConnector(name, linked, r.opts)
	r.connectors[name] = c

	return c, nil
}

// Disconnect removes a binding, freeing its name and object.
func (r *Registry) Disconnect(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connectors[name]; !ok {
		return fmt.Errorf("%w: %s", ErrBindingNotFound, name)
	}

	delete(r.connectors, name)

	return nil
}

// Lookup returns the connector registered under name.
func (r *Registry) Lookup(name string) (*Connector, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.connectors[name]

	return c, ok
}

// Names returns the registered binding names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.connectors))
}

// sameObject reports whether a and b are the same non-empty reference value.
// Values without identity (structs, scalars) never match.
func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return !va.IsNil() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Slice:
		// empty containers are never considered linked
		return va.Len() > 0 && va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	default:
		return false
	}
}
