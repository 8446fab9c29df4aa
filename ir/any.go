package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// FromAny converts a Go value, as produced by JSON or YAML decoders, into
// a tree. yaml.MapSlice keeps its key order; Go maps are sorted by key.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return FromInt(i), nil
		}
		if f, err := x.Float64(); err == nil {
			return FromFloat(f), nil
		}
		return &Node{Type: NumberType, Number: x.String()}, nil
	case yaml.MapSlice:
		res := Object()
		for _, item := range x {
			if err := addAnyField(res, item.Key, item.Value); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[string]any:
		res := Object()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			if err := addAnyField(res, k, x[k]); err != nil {
				return nil, err
			}
		}
		return res, nil
	case map[string]*Node:
		return FromMap(x), nil
	case []any:
		res := Array()
		for _, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			res.Values = append(res.Values, n)
		}
		return res, nil
	case []*Node:
		return FromSlice(x), nil
	case []string:
		res := Array()
		for _, e := range x {
			res.Values = append(res.Values, FromString(e))
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T to a node", ErrTypeMismatch, v)
	}
}

func fromUint(u uint64) *Node {
	if u > 1<<63-1 {
		return &Node{Type: NumberType, Number: strconv.FormatUint(u, 10)}
	}
	return FromInt(int64(u))
}

func addAnyField(obj *Node, k, v any) error {
	key, err := anyKey(k)
	if err != nil {
		return err
	}
	val, err := FromAny(v)
	if err != nil {
		return err
	}
	obj.appendField(key, val)
	return nil
}

// anyKey converts a decoded map key: integers stay integer keys, anything
// else becomes a String key holding its text.
func anyKey(k any) (*Node, error) {
	n, err := FromAny(k)
	if err != nil {
		return nil, err
	}
	return mapKey(n)
}

func mapKey(n *Node) (*Node, error) {
	switch {
	case n.Type == StringType:
		return n, nil
	case n.Type == NumberType && n.Int64 != nil:
		return n, nil
	case n.IsContainer():
		return nil, fmt.Errorf("%w: %s map key", ErrTypeMismatch, n.Type)
	default:
		return FromString(KeyText(n)), nil
	}
}

// ToAny converts a tree into plain Go values: map[string]any, []any,
// string, bool, int64, float64 and nil. Integer keys become their decimal
// text and key order is lost; use the codec for ordered output.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		res := make(map[string]any, len(node.Fields))
		for i, f := range node.Fields {
			res[KeyText(f)] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = ToAny(v)
		}
		return res
	case StringType:
		return node.String
	case BoolType:
		return node.Bool
	case NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64
		case node.Float64 != nil:
			return *node.Float64
		default:
			return json.Number(node.Number)
		}
	default:
		return nil
	}
}
