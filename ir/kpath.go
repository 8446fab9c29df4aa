package ir

import (
	"fmt"
	"slices"

	"github.com/signadot/dotpath/debug"
	"github.com/signadot/dotpath/ir/kpath"
)

// Get returns the node at key, a path string or kpath.Path. Missing keys,
// out of range indices and scalars along the way yield nil without error;
// the only error is kpath.ErrInvalidKeyType.
//
// On an array, a field segment holding a decimal integer ("0", "-1") is
// treated as an index.
//
// Example:
//
//	Get(root, "c.d[last]") returns root.c.d[len(root.c.d)-1]
func Get(root *Node, key any) (*Node, error) {
	p, err := kpath.Parse(key)
	if err != nil {
		return nil, err
	}
	res := getPath(root, p)
	if debug.Get() {
		debug.Logf("get %s found=%t\n", p, res != nil)
	}
	return res, nil
}

func getPath(node *Node, p kpath.Path) *Node {
	for _, seg := range p {
		if node == nil {
			return nil
		}
		node = node.child(seg)
	}
	return node
}

// child returns the child addressed by seg, or nil.
func (node *Node) child(seg kpath.Segment) *Node {
	switch node.Type {
	case ObjectType:
		i := node.fieldIndex(seg)
		if i < 0 {
			return nil
		}
		return node.Values[i]
	case ArrayType:
		i, ok := node.arrayIndex(seg)
		if !ok {
			return nil
		}
		return node.Values[i]
	default:
		return nil
	}
}

// arrayIndex resolves seg to a position within the array, applying lax
// coercion and offsets from the end.
func (node *Node) arrayIndex(seg kpath.Segment) (int, bool) {
	i, ok := seg.LaxIndex()
	if !ok {
		return 0, false
	}
	return normIndex(i, len(node.Values))
}

func normIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// Has reports whether key addresses an existing node. Negative indices are
// bounds checked against the array length, so Has(root, "a[-5]") is false
// for an array of 4 elements. The empty path addresses root.
func Has(root *Node, key any) (bool, error) {
	p, err := kpath.Parse(key)
	if err != nil {
		return false, err
	}
	return hasPath(root, p), nil
}

func hasPath(root *Node, p kpath.Path) bool {
	if len(p) == 0 {
		return root != nil
	}
	parent := getPath(root, p[:len(p)-1])
	if parent == nil {
		return false
	}
	last := p.Last()
	switch parent.Type {
	case ObjectType:
		return parent.fieldIndex(last) >= 0
	case ArrayType:
		_, ok := parent.arrayIndex(last)
		return ok
	default:
		return false
	}
}

type fetchOpts struct {
	def       *Node
	hasDef    bool
	onMissing func(path string) (*Node, error)
}

type FetchOption func(*fetchOpts)

// Default makes Fetch return def, which may be nil, for missing keys.
func Default(def *Node) FetchOption {
	return func(o *fetchOpts) {
		o.def = def
		o.hasDef = true
	}
}

// OnMissing makes Fetch call f with the path for missing keys. It takes
// precedence over Default.
func OnMissing(f func(path string) (*Node, error)) FetchOption {
	return func(o *fetchOpts) { o.onMissing = f }
}

// Fetch is like Get but distinguishes a missing key: it returns the result
// of OnMissing, else the Default, else a *KeyNotFoundError.
func Fetch(root *Node, key any, opts ...FetchOption) (*Node, error) {
	p, err := kpath.Parse(key)
	if err != nil {
		return nil, err
	}
	if hasPath(root, p) {
		return getPath(root, p), nil
	}
	o := &fetchOpts{}
	for _, opt := range opts {
		opt(o)
	}
	path := keyString(key, p)
	switch {
	case o.onMissing != nil:
		return o.onMissing(path)
	case o.hasDef:
		return o.def, nil
	}
	return nil, &KeyNotFoundError{Path: path}
}

func keyString(key any, p kpath.Path) string {
	if s, ok := key.(string); ok {
		return s
	}
	return p.String()
}

// Set assigns value at key and returns it, creating missing containers
// along the way. Whether a created container is an object or an array is
// decided by the segment that follows it: an index or an array operator
// (-, prepend, >>, +, append, <<) makes an array, anything else an object.
// Null values along the path are replaced the same way.
//
// At the final segment:
//   - objects are assigned by key; an index segment assigns an integer key
//   - arrays take prepend and append operators, or an index, growing the
//     array with null elements when the index is past the end
//
// Descending into or assigning onto a scalar fails with a
// *TypeMismatchError. Containers created before a failure are kept.
func Set(root *Node, key any, value *Node) (*Node, error) {
	p, err := kpath.Parse(key)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, ErrEmptyPath
	}
	if value == nil {
		value = Null()
	}
	node := root
	for i := range len(p) - 1 {
		node, err = descend(node, p[:i], p[i], p[i+1])
		if err != nil {
			return nil, err
		}
	}
	if err := assign(node, p.Parent(), p.Last(), value); err != nil {
		return nil, err
	}
	if debug.Set() {
		debug.Logf("set %s to %v\n", p, value)
	}
	return value, nil
}

// newContainer returns an empty container suited to hold next.
func newContainer(next kpath.Segment) *Node {
	if next.WantsArray() {
		return Array()
	}
	return Object()
}

func vacant(node *Node) bool {
	return node == nil || node.Type == NullType
}

// descend returns the child of node at seg, creating it when vacant.
func descend(node *Node, at kpath.Path, seg, next kpath.Segment) (*Node, error) {
	if node == nil {
		return nil, &TypeMismatchError{Path: at.String(), Want: "Object or Array", Got: typeName(node)}
	}
	switch node.Type {
	case ObjectType:
		i := node.fieldIndex(seg)
		if i >= 0 && !vacant(node.Values[i]) {
			return node.Values[i], nil
		}
		c := newContainer(next)
		if debug.Set() {
			debug.Logf("set: creating %s at %s\n", c.Type, at.Append(seg))
		}
		if i >= 0 {
			node.Values[i] = c
		} else {
			node.appendField(KeyNode(seg), c)
		}
		return c, nil

	case ArrayType:
		switch seg.ListOp() {
		case kpath.OpPrepend:
			c := newContainer(next)
			node.Values = slices.Insert(node.Values, 0, c)
			return c, nil
		case kpath.OpAppend:
			c := newContainer(next)
			node.Values = append(node.Values, c)
			return c, nil
		}
		j, err := node.writeIndex(at, seg)
		if err != nil {
			return nil, err
		}
		if !vacant(node.Values[j]) {
			return node.Values[j], nil
		}
		c := newContainer(next)
		if debug.Set() {
			debug.Logf("set: creating %s at %s\n", c.Type, at.Append(seg))
		}
		node.Values[j] = c
		return c, nil

	default:
		return nil, &TypeMismatchError{Path: at.String(), Want: "Object or Array", Got: typeName(node)}
	}
}

// writeIndex resolves seg to a position in the array for writing, growing
// the array with nulls when the position is past the end.
func (node *Node) writeIndex(at kpath.Path, seg kpath.Segment) (int, error) {
	i, ok := seg.LaxIndex()
	if !ok {
		return 0, &TypeMismatchError{Path: at.String(), Want: fmt.Sprintf("Object for field %q", seg.Name()), Got: "Array"}
	}
	n := len(node.Values)
	if i < 0 {
		if i+n < 0 {
			return 0, fmt.Errorf("%w: index %d at %q (len %d)", ErrIndexOutOfRange, i, at.String(), n)
		}
		return i + n, nil
	}
	for len(node.Values) <= i {
		node.Values = append(node.Values, Null())
	}
	return i, nil
}

func assign(node *Node, at kpath.Path, seg kpath.Segment, value *Node) error {
	if node == nil {
		return &TypeMismatchError{Path: at.String(), Want: "Object or Array", Got: typeName(node)}
	}
	switch node.Type {
	case ObjectType:
		if i := node.fieldIndex(seg); i >= 0 {
			node.Values[i] = value
			return nil
		}
		node.appendField(KeyNode(seg), value)
		return nil
	case ArrayType:
		switch seg.ListOp() {
		case kpath.OpPrepend:
			node.Values = slices.Insert(node.Values, 0, value)
			return nil
		case kpath.OpAppend:
			node.Values = append(node.Values, value)
			return nil
		}
		j, err := node.writeIndex(at, seg)
		if err != nil {
			return err
		}
		node.Values[j] = value
		return nil
	default:
		return &TypeMismatchError{Path: at.String(), Want: "Object or Array", Got: typeName(node)}
	}
}

// Delete removes the node at key and returns it. A missing key deletes
// nothing and returns nil without error. Array elements after the removed
// one shift down; remaining object keys keep their order.
func Delete(root *Node, key any) (*Node, error) {
	p, err := kpath.Parse(key)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 || !hasPath(root, p) {
		return nil, nil
	}
	parent := getPath(root, p.Parent())
	last := p.Last()
	var res *Node
	switch parent.Type {
	case ObjectType:
		i := parent.fieldIndex(last)
		res = parent.Values[i]
		parent.Fields = slices.Delete(parent.Fields, i, i+1)
		parent.Values = slices.Delete(parent.Values, i, i+1)
	case ArrayType:
		i, _ := parent.arrayIndex(last)
		res = parent.Values[i]
		parent.Values = slices.Delete(parent.Values, i, i+1)
	}
	if debug.Delete() {
		debug.Logf("delete %s removed %v\n", p, res)
	}
	return res, nil
}

func (node *Node) Get(key any) (*Node, error) {
	return Get(node, key)
}

func (node *Node) Has(key any) (bool, error) {
	return Has(node, key)
}

func (node *Node) Fetch(key any, opts ...FetchOption) (*Node, error) {
	return Fetch(node, key, opts...)
}

func (node *Node) Set(key any, value *Node) (*Node, error) {
	return Set(node, key, value)
}

func (node *Node) Delete(key any) (*Node, error) {
	return Delete(node, key)
}
