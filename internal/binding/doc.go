// Package binding connects view-model objects to named bindings.
//
// A Registry owns the bindings of one session. It rejects a binding name that
// is already taken and an object that is already linked to another binding.
// Each Connector reads and writes fields of its linked object by path, and
// reports type mismatches on update as warnings through a diagnostic.Sink.
package binding
