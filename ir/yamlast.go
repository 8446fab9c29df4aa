package ir

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml/ast"
)

// astDecoder builds a tree from a parsed YAML document. Working from the
// syntax tree keeps integer map keys, which the value decoder turns into
// strings once key order is requested.
type astDecoder struct {
	anchors map[string]*Node
}

func (d *astDecoder) node(n ast.Node) (*Node, error) {
	if n == nil {
		return Null(), nil
	}
	switch x := n.(type) {
	case *ast.NullNode:
		return Null(), nil
	case *ast.BoolNode:
		return FromBool(x.Value), nil
	case *ast.StringNode:
		return FromString(x.Value), nil
	case *ast.LiteralNode:
		if x.Value == nil {
			return FromString(""), nil
		}
		return FromString(x.Value.Value), nil
	case *ast.IntegerNode:
		switch v := x.Value.(type) {
		case int64:
			return FromInt(v), nil
		case uint64:
			return fromUint(v), nil
		}
		return nil, fmt.Errorf("integer %q out of range", x.GetToken().Value)
	case *ast.FloatNode:
		return FromFloat(x.Value), nil
	case *ast.InfinityNode:
		return FromFloat(x.Value), nil
	case *ast.NanNode:
		return FromFloat(math.NaN()), nil
	case *ast.TagNode:
		return d.tagged(x)
	case *ast.AnchorNode:
		val, err := d.node(x.Value)
		if err != nil {
			return nil, err
		}
		d.anchors[x.Name.GetToken().Value] = val
		return val, nil
	case *ast.AliasNode:
		name := x.Value.GetToken().Value
		val, ok := d.anchors[name]
		if !ok {
			return nil, fmt.Errorf("undefined alias %q", name)
		}
		return val.Clone(), nil
	case *ast.MappingValueNode:
		obj := Object()
		if err := d.mapping(obj, []*ast.MappingValueNode{x}); err != nil {
			return nil, err
		}
		return obj, nil
	case *ast.MappingNode:
		obj := Object()
		if err := d.mapping(obj, x.Values); err != nil {
			return nil, err
		}
		return obj, nil
	case *ast.SequenceNode:
		arr := Array()
		for _, v := range x.Values {
			val, err := d.node(v)
			if err != nil {
				return nil, err
			}
			arr.Values = append(arr.Values, val)
		}
		return arr, nil
	case *ast.MappingKeyNode:
		return d.node(x.Value)
	case *ast.CommentGroupNode, *ast.CommentNode:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unsupported yaml node %s", n.Type())
	}
}

func (d *astDecoder) tagged(x *ast.TagNode) (*Node, error) {
	switch x.Start.Value {
	case "!!str":
		if _, ok := x.Value.(ast.ScalarNode); ok && x.Value.GetToken() != nil {
			return FromString(x.Value.GetToken().Value), nil
		}
	case "!!null":
		return Null(), nil
	}
	return d.node(x.Value)
}

// mapping appends the pairs to obj. Explicit keys replace merged ones.
func (d *astDecoder) mapping(obj *Node, pairs []*ast.MappingValueNode) error {
	merged := map[int]bool{}
	for _, p := range pairs {
		if _, ok := p.Key.(*ast.MergeKeyNode); ok {
			n := len(obj.Fields)
			if err := d.merge(obj, p.Value); err != nil {
				return err
			}
			for i := n; i < len(obj.Fields); i++ {
				merged[i] = true
			}
			continue
		}
		k, err := d.node(p.Key)
		if err != nil {
			return err
		}
		key, err := mapKey(k)
		if err != nil {
			return err
		}
		i := obj.keyIndex(key)
		if i >= 0 && !merged[i] {
			return fmt.Errorf("mapping key %q already defined", KeyText(key))
		}
		val, err := d.node(p.Value)
		if err != nil {
			return err
		}
		if i >= 0 {
			delete(merged, i)
			obj.Values[i] = val
			continue
		}
		obj.appendField(key, val)
	}
	return nil
}

// merge handles the "<<" key: fields of the merged objects are added
// unless the mapping already has them.
func (d *astDecoder) merge(obj *Node, n ast.Node) error {
	src, err := d.node(n)
	if err != nil {
		return err
	}
	var srcs []*Node
	switch src.Type {
	case ObjectType:
		srcs = []*Node{src}
	case ArrayType:
		srcs = src.Values
	default:
		return fmt.Errorf("%w: cannot merge %s", ErrTypeMismatch, src.Type)
	}
	for _, s := range srcs {
		if s.Type != ObjectType {
			return fmt.Errorf("%w: cannot merge %s", ErrTypeMismatch, s.Type)
		}
		for i, f := range s.Fields {
			if obj.keyIndex(f) < 0 {
				obj.appendField(f.Clone(), s.Values[i].Clone())
			}
		}
	}
	return nil
}
