// Package pathexpr parses and builds the dotted/bracketed field paths used to
// address values inside nested view-model structures.
//
// # Path Syntax
//
// A path is a list of dot-separated segments. Each segment has a base name
// followed by zero or more bracketed, non-negative indices:
//   - Simple fields: "name"
//   - Nested fields: "customer.name"
//   - Sequence elements: "items[2]"
//   - Nested sequences: "grid[0][1].value"
//
// The empty path addresses the root itself.
//
// Normalize flattens a path into a single identifier-like token. It is meant
// for synthetic names only; traversal always works on the original path.
package pathexpr
