package ir

import (
	"strconv"

	"github.com/signadot/dotpath/debug"
	"github.com/signadot/dotpath/ir/kpath"
)

// Entry is one flattened key path and the node found there.
type Entry struct {
	Key   string
	Value *Node
}

type flattenOpts struct {
	keysOnly     bool
	intermediate bool
}

type FlattenOption func(*flattenOpts)

// KeysOnly leaves Entry.Value nil.
func KeysOnly(v bool) FlattenOption {
	return func(o *flattenOpts) { o.keysOnly = v }
}

// Intermediate also records object and array nodes, before their children.
func Intermediate(v bool) FlattenOption {
	return func(o *flattenOpts) { o.intermediate = v }
}

// Flatten walks root depth first and returns an entry per leaf, keyed by
// its path: object children in key order, array children by ascending
// index.
//
// Example:
//
//	{"a":"b","c":{"d":["e","f"]}} → a: b, c.d[0]: e, c.d[1]: f
func Flatten(root *Node, opts ...FlattenOption) []Entry {
	o := &flattenOpts{}
	for _, opt := range opts {
		opt(o)
	}
	res := flatten(nil, root, "", true, o)
	if debug.Flatten() {
		debug.Logf("flattened into %d entries\n", len(res))
	}
	return res
}

// flatten appends the entries below node. Keys of the root object carry
// no leading '.', so an empty key below the root still renders as ".x".
func flatten(dst []Entry, node *Node, path string, atRoot bool, o *flattenOpts) []Entry {
	if node == nil {
		return dst
	}
	switch node.Type {
	case ObjectType:
		for i, f := range node.Fields {
			key := KeyText(f)
			if !atRoot {
				key = path + "." + key
			}
			dst = flattenChild(dst, node.Values[i], key, o)
		}
	case ArrayType:
		for i, v := range node.Values {
			dst = flattenChild(dst, v, path+"["+strconv.Itoa(i)+"]", o)
		}
	}
	return dst
}

func flattenChild(dst []Entry, v *Node, key string, o *flattenOpts) []Entry {
	e := Entry{Key: key}
	if !o.keysOnly {
		e.Value = v
	}
	if !v.IsContainer() {
		return append(dst, e)
	}
	if o.intermediate {
		dst = append(dst, e)
	}
	return flatten(dst, v, key, false, o)
}

// Keys returns the keys Flatten would produce, in the same order.
func Keys(root *Node, opts ...FlattenOption) []string {
	entries := Flatten(root, append(opts, KeysOnly(true))...)
	res := make([]string, len(entries))
	for i := range entries {
		res[i] = entries[i].Key
	}
	return res
}

// Unflatten rebuilds a tree from flattened entries by setting each entry
// in order. The root is an array when the first key starts with '[',
// otherwise an object. Field names containing '.', '[' or ']', integer
// keys and empty containers do not survive a flatten/unflatten round trip.
func Unflatten(entries []Entry) (*Node, error) {
	root := Object()
	if len(entries) > 0 && len(entries[0].Key) > 0 && entries[0].Key[0] == '[' {
		root = Array()
	}
	for _, e := range entries {
		if _, err := Set(root, kpath.ParseString(e.Key), e.Value.Clone()); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (node *Node) Flatten(opts ...FlattenOption) []Entry {
	return Flatten(node, opts...)
}

func (node *Node) Keys(opts ...FlattenOption) []string {
	return Keys(node, opts...)
}
