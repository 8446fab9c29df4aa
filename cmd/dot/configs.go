package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/format"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='output with color'"`
	J       bool `cli:"name=j aliases=json desc='output json'"`
	Y       bool `cli:"name=y aliases=yaml desc='output yaml'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.J:
		return format.JSONFormat
	default:
		return format.YAMLFormat
	}
}

// colors reports whether output to w should be colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil && optSet(cfg.Main, "color") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type GetConfig struct {
	*MainConfig
	Default string `cli:"name=d aliases=default desc='value to output when the path is missing'"`

	Get *cli.Command
}

type HasConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q desc='only set the exit code'"`

	Has *cli.Command
}

type SetConfig struct {
	*MainConfig
	String bool `cli:"name=s desc='value is a string, not a document'"`
	Expr   bool `cli:"name=e desc='value is an expression evaluated against the document'"`
	Diff   bool `cli:"name=diff desc='show a diff of each changed document'"`
	Write  bool `cli:"name=w desc='write results back to the files'"`

	Set *cli.Command
}

type DeleteConfig struct {
	*MainConfig
	Diff  bool `cli:"name=diff desc='show a diff of each changed document'"`
	Write bool `cli:"name=w desc='write results back to the files'"`

	Delete *cli.Command
}

type FlattenConfig struct {
	*MainConfig
	Intermediate bool `cli:"name=i desc='include objects and arrays'"`
	KeysOnly     bool `cli:"name=k desc='omit values'"`

	Flatten *cli.Command
}

type KeysConfig struct {
	*MainConfig
	Intermediate bool `cli:"name=i desc='include keys of objects and arrays'"`

	Keys *cli.Command
}

type EvalConfig struct {
	*MainConfig
	Bool bool `cli:"name=b desc='exit with status 1 when the result is falsy'"`

	Eval *cli.Command
}

type PatchConfig struct {
	*MainConfig
	File  bool `cli:"name=f desc='patch arg is a file path'"`
	Diff  bool `cli:"name=diff desc='show a diff of each changed document'"`
	Write bool `cli:"name=w desc='write results back to the files'"`

	Patch *cli.Command
}
