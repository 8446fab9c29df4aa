package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/dotpath/format"
	"github.com/signadot/dotpath/ir"
)

// writeDiff writes a line diff of the encodings of from and to, prefixing
// removed lines with "-" and added lines with "+". Nothing is written when
// the encodings are equal.
func writeDiff(w io.Writer, c *colors, name string, from, to *ir.Node, f format.Format) error {
	a, err := encodeString(from, f)
	if err != nil {
		return err
	}
	b, err := encodeString(to, f)
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}
	dmp := diffpatch.New()
	ac, bc, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ac, bc, false), lines)

	fmt.Fprintf(w, "%s\n%s\n", c.removed("--- %s", name), c.added("+++ %s", name))
	for _, d := range diffs {
		var prefix string
		cf := plain
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, cf = "-", c.removed
		case diffpatch.DiffInsert:
			prefix, cf = "+", c.added
		default:
			prefix = " "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			if _, err := fmt.Fprintln(w, cf("%s%s", prefix, line)); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeString(node *ir.Node, f format.Format) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := ir.Encode(node, buf, ir.EncodeFormat(f)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
