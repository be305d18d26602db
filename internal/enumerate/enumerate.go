// Package enumerate lists every field path that reaches a leaf value inside a
// view-model object graph.
package enumerate

import (
	"reflect"

	"fieldpath/internal/members"
	"fieldpath/internal/pathexpr"
)

// Enumerator walks object graphs and produces leaf paths.
type Enumerator struct {
	opts members.Options
}

// New creates an Enumerator using the given member options.
func New(opts members.Options) *Enumerator {
	return &Enumerator{opts: opts}
}

// LeafPaths enumerates root with the default member options.
func LeafPaths(root any) []string {
	return New(members.DefaultOptions()).LeafPaths(root)
}

// LeafPaths returns the paths of all leaves reachable from root, in member
// declaration order. A root that is not member-bearing is itself the leaf and
// yields [""].
//
// Sequences whose elements are member-bearing are expanded element by element
// ("items[0].id", "items[1].id", ...); any other sequence is a single leaf.
// Members whose name is private by convention are skipped.
func (e *Enumerator) LeafPaths(root any) []string {
	return e.LeafPathsWithPrefix(root, "")
}

// LeafPathsWithPrefix is LeafPaths with every path rooted at prefix.
func (e *Enumerator) LeafPathsWithPrefix(root any, prefix string) []string {
	return e.walk(reflect.ValueOf(root), prefix, map[visit]struct{}{}, nil)
}

// visit identifies an object already on the current walk.
type visit struct {
	ptr uintptr
	typ reflect.Type
}

func (e *Enumerator) walk(v reflect.Value, prefix string, onPath map[visit]struct{}, out []string) []string {
	if !members.IsMemberBearing(v) {
		return append(out, prefix)
	}

	if key, ok := pointerKey(v); ok {
		// a cycle back to an object being walked is reported as a leaf
		if _, seen := onPath[key]; seen {
			return append(out, prefix)
		}

		onPath[key] = struct{}{}
		defer delete(onPath, key)
	}

	for _, m := range members.List(v, e.opts) {
		if e.opts.IsPrivate(m.Name) {
			continue
		}

		fullKey := pathexpr.Child(prefix, m.Name)

		switch {
		case members.Classify(m.Value) == members.KindSequence && members.IsComposite(m.Value):
			seq := members.Indirect(m.Value)
			for i := range seq.Len() {
				out = e.walk(seq.Index(i), pathexpr.Element(fullKey, i), onPath, out)
			}
		case members.IsMemberBearing(m.Value):
			out = e.walk(m.Value, fullKey, onPath, out)
		default:
			out = append(out, fullKey)
		}
	}

	return out
}

func pointerKey(v reflect.Value) (visit, bool) {
	for v.Kind() == reflect.Interface && !v.IsNil() {
		v = v.Elem()
	}

	if v.Kind() != reflect.Pointer || v.IsNil() {
		return visit{}, false
	}

	return visit{ptr: v.Pointer(), typ: v.Type()}, true
}
