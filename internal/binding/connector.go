package binding

import (
	"errors"

	"fieldpath/internal/accessor"
	"fieldpath/internal/diagnostic"
	"fieldpath/internal/enumerate"
	"fieldpath/internal/pathexpr"
)

// ErrNotLinked is returned when a connector without a linked object is asked
// to read or write a field.
var ErrNotLinked = errors.New("binding has no linked object")

// Connector is a named binding to a view-model object.
type Connector struct {
	name      string
	linked    any
	accessor  accessor.PathAccessor
	paths     *enumerate.Enumerator
	typeCheck bool
	sink      diagnostic.Sink
}

func newConnector(name string, linked any, opts Options) *Connector {
	c := &Connector{
		name:      name,
		linked:    linked,
		paths:     enumerate.New(opts.Members),
		typeCheck: opts.TypeCheck,
		sink:      opts.Sink,
	}

	if linked != nil {
		c.accessor = accessor.ForOptions(linked, opts.Members)
	}

	return c
}

// Name returns the binding name.
func (c *Connector) Name() string { return c.name }

// Linked returns the linked view-model object.
func (c *Connector) Linked() any { return c.linked }

// Paths enumerates the leaf paths of the linked object as it is now.
func (c *Connector) Paths() []string {
	if c.linked == nil {
		return nil
	}

	return c.paths.LeafPaths(c.linked)
}

// SyntheticName derives a flat identifier for a field of this binding,
// e.g. "order_items_0__name" for binding "order" and path "items[0].name".
func (c *Connector) SyntheticName(path string) string {
	return c.name + "_" + pathexpr.Normalize(path)
}

// Get reads the field at path.
func (c *Connector) Get(path string) (any, error) {
	if c.accessor == nil {
		return nil, ErrNotLinked
	}

	return c.accessor.Get(c.linked, path)
}

// UpdateInView writes value to the field at path. When type checks are
// enabled and the current value has a different dynamic type, a warning is
// emitted first; the write is attempted regardless.
func (c *Connector) UpdateInView(path string, value any) error {
	return c.update(path, value, c.sink)
}

// Update is a pending write of Value to the field at Path.
type Update struct {
	Path  string
	Value any
}

// CodeUpdateFailed identifies errors recorded for rejected writes.
const CodeUpdateFailed = "update-failed"

// Apply performs updates in order and returns what happened. Type-mismatch
// warnings and rejected writes are collected instead of sent to the sink;
// a rejected write does not stop the ones after it.
func (c *Connector) Apply(updates []Update) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics

	for _, u := range updates {
		var step diagnostic.Diagnostics

		if err := c.update(u.Path, u.Value, &step); err != nil {
			step.AddError(CodeUpdateFailed, err.Error(), u.Path)
			step.Errors[len(step.Errors)-1].Binding = c.name
		}

		all.Merge(step)
	}

	return all
}

// update reports type mismatches at the caller of its exported caller.
func (c *Connector) update(path string, value any, sink diagnostic.Sink) error {
	if c.accessor == nil {
		return ErrNotLinked
	}

	old, err := c.accessor.Get(c.linked, path)
	if err != nil {
		return err
	}

	if c.typeCheck {
		named := diagnostic.SinkFunc(func(d diagnostic.Diagnostic) {
			d.Binding = c.name
			d.FieldPath = path
			sink.Emit(d)
		})
		CheckModelType(old, value, 2, named)
	}

	return c.accessor.Set(c.linked, path, value)
}
