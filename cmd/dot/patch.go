package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/patch"
)

func patchDocs(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch argument", cli.ErrUsage)
	}
	d := []byte(args[0])
	if cfg.File {
		d, err = os.ReadFile(args[0])
		if err != nil {
			return err
		}
	}
	p, err := patch.Decode(d)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	theLog.Debug("patch", "ops", len(p.Ops))
	o := editOpts{diff: cfg.Diff, write: cfg.Write}
	return cfg.edit(cc, args[1:], o, p.Apply)
}
