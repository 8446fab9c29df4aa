// Package ir provides the tree representation used by dotpath together with
// the path engine operating on it.
//
// # Node Structure
//
// A Node is a recursive tagged union; the Type field says which fields are
// in use:
//
//   - NullType, BoolType (Bool), NumberType (Int64, Float64 or Number),
//     StringType (String): scalars
//   - ObjectType: Fields[i] is the key for Values[i], in insertion order
//   - ArrayType: Values, indexed from 0
//
// Object keys are String nodes or integer Number nodes. The integer key 0
// and the string key "0" are different keys.
//
// # Path Operations
//
// Get, Has, Fetch, Set and Delete take a root node and a key, either a
// dotted path string (see package kpath) or a kpath.Path:
//
//	root, _ := ir.Decode([]byte(`{"c": ["d", "e", "f"]}`))
//	last, _ := ir.Get(root, "c[last]")        // "f"
//	_, err := ir.Set(root, "n.o[+]", ir.FromString("p"))
//	removed, _ := ir.Delete(root, "c[0]")      // "d"
//
// The same operations are available as methods, so a caller's own tree can
// be addressed directly:
//
//	ok, _ := root.Has("n.o[0]")
//
// Missing paths are not errors: Get and Delete return nil, Has false.
// Fetch reports a *KeyNotFoundError unless a Default or OnMissing option is
// given.
//
// # Flattening
//
// Flatten returns one Entry per leaf keyed by its path, in depth first
// order; Keys returns just the keys.
//
// # Codec
//
// Decode reads JSON or YAML keeping key order; Encode writes YAML or JSON.
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
//
// # Related Packages
//
//   - github.com/signadot/dotpath/ir/kpath - path syntax
//   - github.com/signadot/dotpath - wrapper routing plain and path keys
package ir
