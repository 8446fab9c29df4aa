package main

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/signadot/dotpath/ir"
)

type colorFunc func(string, ...any) string

// colors holds the sprintf functions used for flattened keys, values by
// type and diff lines.
type colors struct {
	key     colorFunc
	values  map[ir.Type]colorFunc
	added   colorFunc
	removed colorFunc
}

func plain(f string, args ...any) string {
	return fmt.Sprintf(f, args...)
}

func newColors(enabled bool) *colors {
	if !enabled {
		return &colors{key: plain, added: plain, removed: plain}
	}
	mk := func(c *color.Color) colorFunc {
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &colors{
		key: mk(color.RGB(128, 168, 196)),
		values: map[ir.Type]colorFunc{
			ir.NumberType: mk(color.RGB(128, 216, 236)),
			ir.NullType:   mk(color.RGB(168, 0, 196)),
			ir.BoolType:   mk(color.New(color.FgCyan)),
			ir.StringType: mk(color.RGB(8, 196, 16)),
		},
		added:   mk(color.New(color.FgGreen)),
		removed: mk(color.New(color.FgRed)),
	}
}

func (c *colors) value(t ir.Type) colorFunc {
	if f, ok := c.values[t]; ok {
		return f
	}
	return plain
}
