package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/dotpath/format"
	"github.com/signadot/dotpath/ir"
)

// source is a file, or stdin when name is "-", and the documents read
// from it.
type source struct {
	name string
	docs []*ir.Node
}

var docSep = []byte("\n---\n")

func readSources(in io.Reader, files []string) ([]*source, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]*source, 0, len(files))
	for _, file := range files {
		src, err := readSource(in, file)
		if err != nil {
			return nil, err
		}
		res = append(res, src)
	}
	return res, nil
}

func readSource(in io.Reader, file string) (*source, error) {
	var (
		d   []byte
		err error
	)
	if file == "-" {
		d, err = io.ReadAll(in)
	} else {
		d, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", file, err)
	}
	src := &source{name: file}
	for _, part := range splitDocs(d) {
		doc, err := ir.Decode(part)
		if err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", file, err)
		}
		src.docs = append(src.docs, doc)
	}
	theLog.Debug("read", "file", file, "docs", len(src.docs))
	return src, nil
}

// splitDocs splits a YAML stream on "---" lines. Blank documents are
// dropped.
func splitDocs(d []byte) [][]byte {
	d = append([]byte{'\n'}, d...)
	var res [][]byte
	for _, part := range bytes.Split(d, docSep) {
		part = bytes.TrimPrefix(part, []byte("---\n"))
		if len(bytes.TrimSpace(part)) == 0 {
			continue
		}
		res = append(res, part)
	}
	return res
}

func (cfg *MainConfig) writeDocs(w io.Writer, docs []*ir.Node) error {
	return writeDocs(w, docs, cfg.outFormat())
}

// writeDocs encodes docs to w, separated by "---" lines in YAML.
func writeDocs(w io.Writer, docs []*ir.Node, f format.Format) error {
	for i, doc := range docs {
		if i > 0 && f.IsYAML() {
			if _, err := w.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := ir.Encode(doc, w, ir.EncodeFormat(f)); err != nil {
			return err
		}
	}
	return nil
}

// writeBack replaces the file src was read from, in the format its name
// suggests.
func (cfg *MainConfig) writeBack(src *source) error {
	if src.name == "-" {
		return fmt.Errorf("%w: cannot write back to stdin", cli.ErrUsage)
	}
	f, ok := format.FromFilename(src.name)
	if !ok {
		f = cfg.outFormat()
	}
	buf := bytes.NewBuffer(nil)
	if err := writeDocs(buf, src.docs, f); err != nil {
		return err
	}
	fi, err := os.Stat(src.name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(src.name, buf.Bytes(), fi.Mode().Perm()); err != nil {
		return err
	}
	theLog.Debug("wrote", "file", src.name, "format", f)
	return nil
}
