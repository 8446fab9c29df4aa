package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
)

func del(cfg *DeleteConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Delete.Parse(cc, args)
	if err != nil {
		return err
	}
	p, files, err := pathArg("delete", args)
	if err != nil {
		return err
	}
	o := editOpts{diff: cfg.Diff, write: cfg.Write}
	return cfg.edit(cc, files, o, func(doc *ir.Node) (*ir.Node, error) {
		removed, err := ir.Delete(doc, p)
		if err != nil {
			return nil, err
		}
		if removed == nil {
			theLog.Debug("nothing to delete", "path", p.String())
		}
		return doc, nil
	})
}
