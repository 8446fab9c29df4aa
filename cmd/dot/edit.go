package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/ir"
)

type editOpts struct {
	diff  bool
	write bool
}

// edit applies f to every document of every source. The results are
// written back to their files with -w, shown as diffs with -diff, and
// otherwise written to the output. Files whose documents are all unchanged
// are not rewritten.
func (cfg *MainConfig) edit(cc *cli.Context, files []string, o editOpts, f func(doc *ir.Node) (*ir.Node, error)) error {
	srcs, err := readSources(cc.In, files)
	if err != nil {
		return err
	}
	c := newColors(cfg.colors(cc.Out))
	var all []*ir.Node
	for _, src := range srcs {
		changed := false
		for i, doc := range src.docs {
			var before *ir.Node
			if o.diff || o.write {
				before = doc.Clone()
			}
			res, err := f(doc)
			if err != nil {
				return fmt.Errorf("error editing %s document %d: %w", src.name, i, err)
			}
			src.docs[i] = res
			if before != nil && !ir.Equal(before, res) {
				changed = true
			}
			if o.diff {
				name := src.name
				if len(src.docs) > 1 {
					name = fmt.Sprintf("%s[%d]", src.name, i)
				}
				if err := writeDiff(cc.Out, c, name, before, res, cfg.outFormat()); err != nil {
					return err
				}
			}
		}
		if o.write {
			if !changed && src.name != "-" {
				theLog.Debug("unchanged", "file", src.name)
				continue
			}
			if err := cfg.writeBack(src); err != nil {
				return err
			}
			continue
		}
		all = append(all, src.docs...)
	}
	if o.diff || o.write {
		return nil
	}
	return cfg.writeDocs(cc.Out, all)
}
