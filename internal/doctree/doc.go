// Package doctree provides the read-only document tree that rule compilation
// works on.
//
// A document is parsed once (YAML or CUE) into a closed set of node types:
//
//	Null      - an explicit null or an empty value
//	Scalar    - any scalar, kept as its source text
//	Mapping   - ordered key/value entries with unique keys
//	Sequence  - ordered items
//
// Every node carries the position it was read from so that compile errors
// can point back at the offending line. Nodes are never mutated after
// parsing; compilers copy what they need into their own tables.
package doctree
