package ir

import (
	"maps"
	"slices"
	"strconv"

	"github.com/signadot/dotpath/ir/kpath"
)

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.Float64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	dst.Int64 = nil
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// IsContainer reports whether y is an object or an array.
func (y *Node) IsContainer() bool {
	return y != nil && (y.Type == ObjectType || y.Type == ArrayType)
}

// Len returns the number of children of a container, 0 otherwise.
func (y *Node) Len() int {
	if !y.IsContainer() {
		return 0
	}
	return len(y.Values)
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// Object returns an empty object.
func Object() *Node {
	return &Node{Type: ObjectType, Fields: []*Node{}, Values: []*Node{}}
}

// Array returns an empty array.
func Array() *Node {
	return &Node{Type: ArrayType, Values: []*Node{}}
}

// KeyNode returns the object key node for a path segment: a String node
// for a field, an integer Number node for an index.
func KeyNode(seg kpath.Segment) *Node {
	if seg.Index != nil {
		return FromInt(int64(*seg.Index))
	}
	return FromString(seg.Name())
}

// KeyText renders an object key node as it appears in flattened paths.
func KeyText(field *Node) string {
	switch field.Type {
	case StringType:
		return field.String
	case NumberType:
		if field.Int64 != nil {
			return strconv.FormatInt(*field.Int64, 10)
		}
		if field.Float64 != nil {
			return strconv.FormatFloat(*field.Float64, 'g', -1, 64)
		}
		return field.Number
	case BoolType:
		return strconv.FormatBool(field.Bool)
	default:
		return "null"
	}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := Object()
	for _, kv := range kvs {
		key := kv.Key
		if key == nil {
			key = FromString("")
		}
		res.Fields = append(res.Fields, key)
		res.Values = append(res.Values, orNull(kv.Val))
	}
	return res
}

// FromMap builds an object from a Go map; keys are sorted since Go maps
// have no order.
func FromMap(yMap map[string]*Node) *Node {
	res := Object()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.Fields = append(res.Fields, FromString(key))
		res.Values = append(res.Values, orNull(yMap[key]))
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := Array()
	for _, y := range ySlice {
		res.Values = append(res.Values, orNull(y))
	}
	return res
}

func orNull(y *Node) *Node {
	if y == nil {
		return Null()
	}
	return y
}

// Field returns the value under the string key field of an object, or nil.
func (y *Node) Field(field string) *Node {
	i := y.fieldIndex(kpath.Field(field))
	if i < 0 {
		return nil
	}
	return y.Values[i]
}

// fieldIndex finds the key addressed by seg in an object: a field segment
// matches String keys, an index segment matches integer keys.
func (y *Node) fieldIndex(seg kpath.Segment) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	for i, f := range y.Fields {
		switch {
		case seg.Field != nil:
			if f.Type == StringType && f.String == *seg.Field {
				return i
			}
		case seg.Index != nil:
			if f.Type == NumberType && f.Int64 != nil && *f.Int64 == int64(*seg.Index) {
				return i
			}
		}
	}
	return -1
}

func (y *Node) appendField(key, val *Node) {
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// keyIndex finds an existing key equal to key, comparing type and value.
func (y *Node) keyIndex(key *Node) int {
	for i, f := range y.Fields {
		if f.Type != key.Type {
			continue
		}
		switch {
		case f.Type == StringType && f.String == key.String:
			return i
		case f.Type == NumberType && f.Int64 != nil && key.Int64 != nil && *f.Int64 == *key.Int64:
			return i
		}
	}
	return -1
}
