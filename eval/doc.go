// Package eval evaluates expr-lang expressions against a tree.
//
// The expression environment holds the tree as plain Go values under doc,
// and the functions
//
//	get(path)   the value at a dotted path, or nil
//	has(path)   whether the path exists
//	keys()      the flattened keys of the tree
//	flatten()   the flattened leaves as a map
//
// Example:
//
//	res, err := eval.Eval(root, `get("spec.replicas") * 2`)
//
// # Related Packages
//
//   - github.com/signadot/dotpath/ir - trees and paths
package eval
