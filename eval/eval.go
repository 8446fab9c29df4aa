package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/dotpath/debug"
	"github.com/signadot/dotpath/ir"
)

// Env is the variable environment of an expression.
type Env map[string]any

// Program is an expression compiled against one tree.
type Program struct {
	doc *ir.Node
	prg *vm.Program
}

// Compile compiles src with the path functions bound to doc.
func Compile(doc *ir.Node, src string) (*Program, error) {
	prg, err := expr.Compile(src, exprOpts(doc)...)
	if err != nil {
		return nil, err
	}
	return &Program{doc: doc, prg: prg}, nil
}

// Run runs the program; env is merged over the default environment,
// which holds the tree under doc.
func (p *Program) Run(env Env) (*ir.Node, error) {
	full := Env{"doc": ir.ToAny(p.doc)}
	for k, v := range env {
		full[k] = v
	}
	res, err := expr.Run(p.prg, full)
	if err != nil {
		return nil, err
	}
	if debug.Eval() {
		debug.Logf("eval result %T %v\n", res, res)
	}
	node, err := ir.FromAny(res)
	if err != nil {
		return nil, fmt.Errorf("expression result: %w", err)
	}
	return node, nil
}

// Eval compiles and runs src against doc.
func Eval(doc *ir.Node, src string) (*ir.Node, error) {
	p, err := Compile(doc, src)
	if err != nil {
		return nil, err
	}
	return p.Run(nil)
}

// EvalBool evaluates src and reports whether the result is truthy.
func EvalBool(doc *ir.Node, src string) (bool, error) {
	res, err := Eval(doc, src)
	if err != nil {
		return false, err
	}
	return ir.Truth(res), nil
}

func exprOpts(doc *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("get", func(params ...any) (any, error) {
			node, err := doc.Get(params[0].(string))
			if err != nil {
				return nil, err
			}
			return ir.ToAny(node), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			return doc.Has(params[0].(string))
		},
			new(func(string) bool)),
		expr.Function("keys", func(params ...any) (any, error) {
			return doc.Keys(), nil
		},
			new(func() []string)),
		expr.Function("flatten", func(params ...any) (any, error) {
			entries := doc.Flatten()
			res := make(map[string]any, len(entries))
			for _, e := range entries {
				res[e.Key] = ir.ToAny(e.Value)
			}
			return res, nil
		},
			new(func() map[string]any)),
	}
}
