// Package dotpath wraps a JSON or YAML shaped tree so that it can be read
// and written with dotted key paths as well as with plain keys.
//
// A key that looks like a path (a string containing '.' or '[', or a
// kpath.Path) is resolved by the path engine in package ir; any other key
// is a plain single-level lookup on the wrapped object or array.
//
//	d, _ := dotpath.New(map[string]any{"a": "b"})
//	d.Set("n.o", ir.FromString("p"))  // {"a": "b", "n": {"o": "p"}}
//	v, _ := d.Get("a")                // plain key
//	v, _ = d.Get("n.o")               // path
//
// A Doc shares the wrapped tree: changes made through it are visible to
// anyone holding the node, and changes made to the node are visible through
// the Doc. To use paths on a tree without a wrapper, call the methods of
// *ir.Node directly.
package dotpath
