package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"

	"github.com/signadot/dotpath/format"
)

// Decode decodes a JSON or YAML document, keeping object key order.
// Unquoted integer YAML keys decode to integer keys. Only the first
// document of a stream is decoded.
func Decode(data []byte) (*Node, error) {
	f, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if len(f.Docs) == 0 {
		return Null(), nil
	}
	d := &astDecoder{anchors: map[string]*Node{}}
	node, err := d.node(f.Docs[0].Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return node, nil
}

type encState struct {
	format format.Format
	indent int
}

type EncodeOption func(*encState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

// EncodeIndent sets the indentation width; 0 encodes JSON compactly.
func EncodeIndent(n int) EncodeOption {
	return func(es *encState) { es.indent = n }
}

// Encode writes node to w, YAML by default.
func Encode(node *Node, w io.Writer, opts ...EncodeOption) error {
	es := &encState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		buf := bytes.NewBuffer(nil)
		if err := appendJSON(buf, node, strings.Repeat(" ", es.indent), 0); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	case format.YAMLFormat:
		d, err := yaml.MarshalWithOptions(toYAML(node), yaml.Indent(es.indent))
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	default:
		return fmt.Errorf("%w: %d", ErrBadFormat, es.format)
	}
}

// ToJSON returns node as compact JSON, keeping key order.
func ToJSON(node *Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := appendJSON(buf, node, "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) MarshalJSON() ([]byte, error) {
	return ToJSON(y)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	node, err := Decode(d)
	if err != nil {
		return err
	}
	*y = *node
	return nil
}

func toYAML(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: KeyText(f), Value: toYAML(node.Values[i])}
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	default:
		return ToAny(node)
	}
}

func appendJSON(buf *bytes.Buffer, node *Node, indent string, depth int) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}
	switch node.Type {
	case ObjectType, ArrayType:
		lb, rb := byte('{'), byte('}')
		if node.Type == ArrayType {
			lb, rb = '[', ']'
		}
		buf.WriteByte(lb)
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			if node.Type == ObjectType {
				if err := appendScalarJSON(buf, KeyText(node.Fields[i])); err != nil {
					return err
				}
				buf.WriteByte(':')
				if indent != "" {
					buf.WriteByte(' ')
				}
			}
			if err := appendJSON(buf, v, indent, depth+1); err != nil {
				return err
			}
		}
		if len(node.Values) > 0 {
			newline(buf, indent, depth)
		}
		buf.WriteByte(rb)
		return nil
	case NumberType:
		if node.Int64 == nil && node.Float64 == nil {
			buf.WriteString(node.Number)
			return nil
		}
		return appendScalarJSON(buf, ToAny(node))
	default:
		return appendScalarJSON(buf, ToAny(node))
	}
}

func appendScalarJSON(buf *bytes.Buffer, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(d)
	return nil
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for range depth {
		buf.WriteString(indent)
	}
}
