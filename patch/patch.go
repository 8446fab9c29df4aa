// Package patch applies RFC 6902 JSON patches whose "path" and "from"
// members are dotted paths rather than JSON pointers.
//
//	- op: add
//	  path: spec.containers[+]
//	  value: {name: sidecar}
//	- op: remove
//	  path: metadata.annotations[kubectl.kubernetes.io/last-applied]
//
// Paths are converted with kpath.Pointer; the patch is then applied by
// github.com/evanphx/json-patch. Objects touched by the patch come back
// with their keys sorted.
package patch

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/dotpath/debug"
	"github.com/signadot/dotpath/ir"
	"github.com/signadot/dotpath/ir/kpath"
)

// Op is one patch operation.
type Op struct {
	Op    string
	Path  kpath.Path
	From  kpath.Path
	Value *ir.Node
}

type Patch struct {
	Ops []Op
	ops jsonpatch.Patch
}

var validOps = map[string]bool{
	"add":     true,
	"remove":  true,
	"replace": true,
	"move":    true,
	"copy":    true,
	"test":    true,
}

// Decode decodes a JSON or YAML list of operations.
func Decode(data []byte) (*Patch, error) {
	node, err := ir.Decode(data)
	if err != nil {
		return nil, err
	}
	return FromNode(node)
}

// FromNode builds a patch from an array of operation objects.
func FromNode(node *ir.Node) (*Patch, error) {
	if node.Type != ir.ArrayType {
		return nil, &ir.TypeMismatchError{Want: "Array of operations", Got: node.Type.String()}
	}
	res := &Patch{}
	for i, v := range node.Values {
		op, err := decodeOp(v)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		res.Ops = append(res.Ops, op)
	}
	if err := res.compile(); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeOp(v *ir.Node) (Op, error) {
	res := Op{}
	if v.Type != ir.ObjectType {
		return res, &ir.TypeMismatchError{Want: "Object", Got: v.Type.String()}
	}
	name, err := stringField(v, "op")
	if err != nil {
		return res, err
	}
	if !validOps[name] {
		return res, fmt.Errorf("unknown op %q", name)
	}
	res.Op = name
	path, err := stringField(v, "path")
	if err != nil {
		return res, err
	}
	if res.Path, err = kpath.ParseStrict(path); err != nil {
		return res, err
	}
	if name == "move" || name == "copy" {
		from, err := stringField(v, "from")
		if err != nil {
			return res, err
		}
		if res.From, err = kpath.ParseStrict(from); err != nil {
			return res, err
		}
	}
	switch name {
	case "add", "replace", "test":
		res.Value, err = v.Fetch("value")
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func stringField(v *ir.Node, name string) (string, error) {
	f, err := v.Fetch(name)
	if err != nil {
		return "", err
	}
	if f.Type != ir.StringType {
		return "", &ir.TypeMismatchError{Path: name, Want: "String", Got: f.Type.String()}
	}
	return f.String, nil
}

// compile renders the operations with JSON pointers and decodes them with
// jsonpatch.
func (p *Patch) compile() error {
	doc := ir.Array()
	for _, op := range p.Ops {
		o := ir.Object()
		o.Set("op", ir.FromString(op.Op))
		ptr, err := kpath.Pointer(op.Path)
		if err != nil {
			return err
		}
		o.Set("path", ir.FromString(ptr))
		if op.From != nil {
			from, err := kpath.Pointer(op.From)
			if err != nil {
				return err
			}
			o.Set("from", ir.FromString(from))
		}
		if op.Value != nil {
			o.Set("value", op.Value)
		}
		doc.Values = append(doc.Values, o)
	}
	d, err := ir.ToJSON(doc)
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("json patch %s\n", d)
	}
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return err
	}
	p.ops = ops
	return nil
}

// Apply returns the result of applying the patch to doc; doc is not
// modified.
func (p *Patch) Apply(doc *ir.Node) (*ir.Node, error) {
	d, err := ir.ToJSON(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.ops.Apply(d)
	if err != nil {
		return nil, err
	}
	return ir.Decode(out)
}
