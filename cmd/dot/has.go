package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
)

func has(cfg *HasConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Has.Parse(cc, args)
	if err != nil {
		return err
	}
	p, files, err := pathArg("has", args)
	if err != nil {
		return err
	}
	srcs, err := readSources(cc.In, files)
	if err != nil {
		return err
	}
	all := true
	for _, src := range srcs {
		for _, doc := range src.docs {
			ok, err := ir.Has(doc, p)
			if err != nil {
				return err
			}
			all = all && ok
			if !cfg.Quiet {
				fmt.Fprintln(cc.Out, ok)
			}
		}
	}
	if !all {
		return cli.ExitCodeErr(1)
	}
	return nil
}
