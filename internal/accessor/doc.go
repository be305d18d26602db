// Package accessor reads and writes values addressed by dotted/bracketed
// paths such as "orders[2].customer.name".
//
// Two implementations share the PathAccessor interface:
//   - Attr walks attribute-bearing values (structs and FieldLister types)
//     and sequences
//   - Mapping walks string-keyed maps and sequences
//
// For picks the implementation that matches a root value. Neither accessor
// creates missing intermediate containers: every member, key and index on
// the way to the target must already exist.
package accessor
