package dotpath

import (
	"bytes"
	"fmt"
	"io"
	"iter"

	"github.com/signadot/dotpath/ir"
	"github.com/signadot/dotpath/ir/kpath"
)

// Doc wraps an object or array node.
type Doc struct {
	node *ir.Node
}

// New wraps v, which must be an object or array: either an *ir.Node or a
// Go value accepted by ir.FromAny. A *Doc is returned unchanged. Go values
// are converted, so only *ir.Node values are shared with the caller.
func New(v any) (*Doc, error) {
	if d, ok := v.(*Doc); ok {
		return d, nil
	}
	node, err := ir.FromAny(v)
	if err != nil {
		return nil, err
	}
	if !node.IsContainer() {
		return nil, &ir.TypeMismatchError{Want: "Object or Array", Got: node.Type.String()}
	}
	return &Doc{node: node}, nil
}

// MustNew is like New but panics on error.
func MustNew(v any) *Doc {
	d, err := New(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Node returns the wrapped node.
func (d *Doc) Node() *ir.Node {
	return d.node
}

// Type returns ir.ObjectType or ir.ArrayType.
func (d *Doc) Type() ir.Type {
	return d.node.Type
}

// Object returns the wrapped node if it is an object.
func (d *Doc) Object() (*ir.Node, error) {
	return d.wrapped(ir.ObjectType)
}

// Array returns the wrapped node if it is an array.
func (d *Doc) Array() (*ir.Node, error) {
	return d.wrapped(ir.ArrayType)
}

func (d *Doc) wrapped(t ir.Type) (*ir.Node, error) {
	if d.node.Type != t {
		return nil, &ir.TypeMismatchError{Want: t.String(), Got: d.node.Type.String()}
	}
	return d.node, nil
}

// Len returns the number of entries of the wrapped container.
func (d *Doc) Len() int {
	return d.node.Len()
}

// All iterates the wrapped container's direct children. Object keys are
// yielded as string or int64, array positions as int.
func (d *Doc) All() iter.Seq2[any, *ir.Node] {
	return func(yield func(any, *ir.Node) bool) {
		for i, v := range d.node.Values {
			var k any = i
			if d.node.Type == ir.ObjectType {
				f := d.node.Fields[i]
				k = f.String
				if f.Type == ir.NumberType && f.Int64 != nil {
					k = *f.Int64
				}
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// plainKey converts a non path key into the segment addressing it.
func plainKey(key any) (kpath.Path, error) {
	switch k := key.(type) {
	case string:
		return kpath.Path{kpath.Field(k)}, nil
	case int:
		return kpath.Path{kpath.Index(k)}, nil
	case int64:
		return kpath.Path{kpath.Index(int(k))}, nil
	}
	return nil, fmt.Errorf("%w: expected string, int or path but got %T", kpath.ErrInvalidKeyType, key)
}

// route returns the path for key, and whether a plain key on an array
// should be treated as absent. Plain string keys never address array
// elements.
func (d *Doc) route(key any) (kpath.Path, bool, error) {
	if kpath.IsPathLike(key) {
		p, err := kpath.Parse(key)
		return p, false, err
	}
	p, err := plainKey(key)
	if err != nil {
		return nil, false, err
	}
	return p, d.node.Type == ir.ArrayType && p[0].IsField(), nil
}

func (d *Doc) Get(key any) (*ir.Node, error) {
	p, absent, err := d.route(key)
	if err != nil || absent {
		return nil, err
	}
	return ir.Get(d.node, p)
}

func (d *Doc) Has(key any) (bool, error) {
	p, absent, err := d.route(key)
	if err != nil || absent {
		return false, err
	}
	return ir.Has(d.node, p)
}

func (d *Doc) Fetch(key any, opts ...ir.FetchOption) (*ir.Node, error) {
	p, absent, err := d.route(key)
	if err != nil {
		return nil, err
	}
	if absent {
		// an empty object never has the key, giving the same fallbacks
		return ir.Fetch(ir.Object(), p, opts...)
	}
	if s, ok := key.(string); ok && kpath.IsPathLike(s) {
		// keep the caller's spelling in KeyNotFoundError
		return ir.Fetch(d.node, s, opts...)
	}
	return ir.Fetch(d.node, p, opts...)
}

func (d *Doc) Set(key any, value *ir.Node) (*ir.Node, error) {
	p, absent, err := d.route(key)
	if err != nil {
		return nil, err
	}
	if absent {
		return nil, &ir.TypeMismatchError{Want: fmt.Sprintf("Object for key %q", key), Got: "Array"}
	}
	return ir.Set(d.node, p, value)
}

func (d *Doc) Delete(key any) (*ir.Node, error) {
	p, absent, err := d.route(key)
	if err != nil || absent {
		return nil, err
	}
	return ir.Delete(d.node, p)
}

func (d *Doc) Flatten(opts ...ir.FlattenOption) []ir.Entry {
	return ir.Flatten(d.node, opts...)
}

func (d *Doc) Keys(opts ...ir.FlattenOption) []string {
	return ir.Keys(d.node, opts...)
}

func (d *Doc) Encode(w io.Writer, opts ...ir.EncodeOption) error {
	return ir.Encode(d.node, w, opts...)
}

// String renders the wrapped tree as YAML.
func (d *Doc) String() string {
	buf := bytes.NewBuffer(nil)
	if err := d.Encode(buf); err != nil {
		return fmt.Sprintf("<dotpath.Doc: %v>", err)
	}
	return buf.String()
}
