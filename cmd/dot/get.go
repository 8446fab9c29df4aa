package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
	"github.com/signadot/dotpath/ir/kpath"
)

// pathArg parses the leading path argument of cmd.
func pathArg(cmd string, args []string) (kpath.Path, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%w: %s requires a path argument", cli.ErrUsage, cmd)
	}
	p, err := kpath.ParseStrict(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return p, args[1:], nil
}

func optSet(cmd *cli.Command, name string) bool {
	for _, opt := range cmd.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	p, files, err := pathArg("get", args)
	if err != nil {
		return err
	}
	var opts []ir.FetchOption
	if optSet(cfg.Get, "d") {
		def, err := ir.Decode([]byte(cfg.Default))
		if err != nil {
			return fmt.Errorf("%w: default: %w", cli.ErrUsage, err)
		}
		opts = append(opts, ir.Default(def))
	}
	srcs, err := readSources(cc.In, files)
	if err != nil {
		return err
	}
	var res []*ir.Node
	for _, src := range srcs {
		for _, doc := range src.docs {
			v, err := ir.Fetch(doc, p, opts...)
			if err != nil {
				return fmt.Errorf("error getting %s from %s: %w", p, src.name, err)
			}
			res = append(res, v)
		}
	}
	return cfg.writeDocs(cc.Out, res)
}
