// Package ir holds the compiled rule tables and the values they resolve to.
//
// Everything here is built once from a configuration document and then only
// read. ir depends on the leaf packages doctree (positions) and pattern
// (compiled patterns) and nothing else internal.
//
// Key design constraints:
//   - Rule tables are ordered slices, never maps: the first match wins and
//     duplicate patterns are allowed
//   - A TypeUsage handed to a caller is always a deep copy
//   - Canonical JSON (sorted keys, NFC strings) is the only serialization
//     used for fingerprints and golden snapshots
package ir
