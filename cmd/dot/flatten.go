package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		return err
	}
	srcs, err := readSources(cc.In, args)
	if err != nil {
		return err
	}
	opts := []ir.FlattenOption{ir.Intermediate(cfg.Intermediate), ir.KeysOnly(cfg.KeysOnly)}
	c := newColors(cfg.colors(cc.Out))
	var docs []*ir.Node
	for _, src := range srcs {
		for _, doc := range src.docs {
			entries := ir.Flatten(doc, opts...)
			if !cfg.structured() {
				if err := writeEntries(cc.Out, c, entries, cfg.KeysOnly); err != nil {
					return err
				}
				continue
			}
			docs = append(docs, entriesNode(entries, cfg.KeysOnly))
		}
	}
	if !cfg.structured() {
		return nil
	}
	return cfg.writeDocs(cc.Out, docs)
}

// structured reports whether an output format was asked for explicitly.
func (cfg *MainConfig) structured() bool {
	return cfg.J || cfg.Y || cfg.OutFormat != nil
}

// writeEntries writes one "key: value" line per entry, values as compact
// JSON.
func writeEntries(w io.Writer, c *colors, entries []ir.Entry, keysOnly bool) error {
	for _, e := range entries {
		if keysOnly {
			if _, err := fmt.Fprintln(w, c.key("%s", e.Key)); err != nil {
				return err
			}
			continue
		}
		d, err := ir.ToJSON(e.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", c.key("%s", e.Key), c.value(e.Value.Type)("%s", d)); err != nil {
			return err
		}
	}
	return nil
}

// entriesNode is entries as an object from key to value, or as an array of
// keys when keysOnly.
func entriesNode(entries []ir.Entry, keysOnly bool) *ir.Node {
	if keysOnly {
		res := ir.Array()
		for _, e := range entries {
			res.Values = append(res.Values, ir.FromString(e.Key))
		}
		return res
	}
	kvs := make([]ir.KeyVal, len(entries))
	for i, e := range entries {
		kvs[i] = ir.KeyVal{Key: ir.FromString(e.Key), Val: e.Value}
	}
	return ir.FromKeyVals(kvs)
}
