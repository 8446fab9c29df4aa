package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/eval"
	"github.com/signadot/dotpath/ir"
)

func evalDocs(cfg *EvalConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Eval.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: eval requires an expression argument", cli.ErrUsage)
	}
	src, files := args[0], args[1:]
	srcs, err := readSources(cc.In, files)
	if err != nil {
		return err
	}
	var (
		res []*ir.Node
		all = true
	)
	for _, s := range srcs {
		for i, doc := range s.docs {
			prg, err := eval.Compile(doc, src)
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrUsage, err)
			}
			v, err := prg.Run(nil)
			if err != nil {
				return fmt.Errorf("error evaluating %s document %d: %w", s.name, i, err)
			}
			all = all && ir.Truth(v)
			res = append(res, v)
		}
	}
	if cfg.Bool {
		for _, v := range res {
			fmt.Fprintln(cc.Out, ir.Truth(v))
		}
		if !all {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	return cfg.writeDocs(cc.Out, res)
}
