package main

import (
	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		return err
	}
	srcs, err := readSources(cc.In, args)
	if err != nil {
		return err
	}
	c := newColors(cfg.colors(cc.Out))
	var docs []*ir.Node
	for _, src := range srcs {
		for _, doc := range src.docs {
			entries := ir.Flatten(doc, ir.KeysOnly(true), ir.Intermediate(cfg.Intermediate))
			if cfg.structured() {
				docs = append(docs, entriesNode(entries, true))
				continue
			}
			if err := writeEntries(cc.Out, c, entries, true); err != nil {
				return err
			}
		}
	}
	if !cfg.structured() {
		return nil
	}
	return cfg.writeDocs(cc.Out, docs)
}
