// Package members discovers the public named members of arbitrary Go values
// and classifies values as composite or leaf for path enumeration.
//
// Key capabilities:
//   - Reflection over structs: exported fields in declaration order, embedded
//     structs flattened, names taken from the `bind` tag when present
//   - FieldLister / FieldGetter / FieldSetter for types that expose members
//     without reflection
//   - IsComposite: the sequence classification used by the enumerator
package members
