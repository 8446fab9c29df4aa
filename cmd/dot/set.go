package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/eval"
	"github.com/signadot/dotpath/ir"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.String && cfg.Expr {
		return fmt.Errorf("%w: -s and -e are exclusive", cli.ErrUsage)
	}
	p, args, err := pathArg("set", args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: set requires a value argument", cli.ErrUsage)
	}
	arg, files := args[0], args[1:]

	var value func(doc *ir.Node) (*ir.Node, error)
	switch {
	case cfg.String:
		value = func(*ir.Node) (*ir.Node, error) { return ir.FromString(arg), nil }
	case cfg.Expr:
		value = func(doc *ir.Node) (*ir.Node, error) { return eval.Eval(doc, arg) }
	default:
		v, err := ir.Decode([]byte(arg))
		if err != nil {
			return fmt.Errorf("%w: value: %w", cli.ErrUsage, err)
		}
		value = func(*ir.Node) (*ir.Node, error) { return v.Clone(), nil }
	}
	theLog.Debug("set", "path", p.String(), "string", cfg.String, "expr", cfg.Expr)

	o := editOpts{diff: cfg.Diff, write: cfg.Write}
	return cfg.edit(cc, files, o, func(doc *ir.Node) (*ir.Node, error) {
		v, err := value(doc)
		if err != nil {
			return nil, err
		}
		if _, err := ir.Set(doc, p, v); err != nil {
			return nil, err
		}
		return doc, nil
	})
}
