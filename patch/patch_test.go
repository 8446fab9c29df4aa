package patch

import (
	"errors"
	"testing"

	"github.com/signadot/dotpath/ir"
	"github.com/signadot/dotpath/ir/kpath"
)

func mustDecode(t *testing.T, s string) *ir.Node {
	t.Helper()
	node, err := ir.Decode([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return node
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		patch string
		want  string
	}{
		{
			name:  "add field",
			doc:   `{"a":1}`,
			patch: `[{"op":"add","path":"b","value":{"c":2}}]`,
			want:  `{"a":1,"b":{"c":2}}`,
		},
		{
			name:  "append",
			doc:   `{"c":["g","h"]}`,
			patch: "- op: add\n  path: c[+]\n  value: i\n",
			want:  `{"c":["g","h","i"]}`,
		},
		{
			name:  "prepend",
			doc:   `{"c":["g","h"]}`,
			patch: `[{"op":"add","path":"c[-]","value":"f"}]`,
			want:  `{"c":["f","g","h"]}`,
		},
		{
			name:  "remove bracketed key",
			doc:   `{"m":{"a.b/c":1,"d":2}}`,
			patch: `[{"op":"remove","path":"m[a.b/c]"}]`,
			want:  `{"m":{"d":2}}`,
		},
		{
			name:  "replace index",
			doc:   `{"c":[{"n":1},{"n":2}]}`,
			patch: `[{"op":"replace","path":"c[1].n","value":{"x":true}}]`,
			want:  `{"c":[{"n":1},{"n":{"x":true}}]}`,
		},
		{
			name:  "move and copy",
			doc:   `{"a":{"b":1},"c":{}}`,
			patch: `[{"op":"copy","from":"a.b","path":"c.d"},{"op":"move","from":"a","path":"e"}]`,
			want:  `{"c":{"d":1},"e":{"b":1}}`,
		},
		{
			name:  "test passes",
			doc:   `{"a":"x"}`,
			patch: `[{"op":"test","path":"a","value":"x"},{"op":"add","path":"b","value":null}]`,
			want:  `{"a":"x","b":null}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Decode([]byte(tt.patch))
			if err != nil {
				t.Fatal(err)
			}
			doc := mustDecode(t, tt.doc)
			before, _ := ir.ToJSON(doc)
			res, err := p.Apply(doc)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(res, mustDecode(t, tt.want)) {
				d, _ := ir.ToJSON(res)
				t.Errorf("got %s, want %s", d, tt.want)
			}
			after, _ := ir.ToJSON(doc)
			if string(before) != string(after) {
				t.Errorf("Apply modified its input")
			}
		})
	}
}

func TestApplyFails(t *testing.T) {
	for _, src := range []string{
		`[{"op":"test","path":"a","value":"y"}]`,
		`[{"op":"add","path":"b.c","value":2}]`,
	} {
		p, err := Decode([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := p.Apply(mustDecode(t, `{"a":"x"}`)); err == nil {
			t.Errorf("%s: expected Apply to fail", src)
		}
	}
}

func TestDecodeOps(t *testing.T) {
	p, err := Decode([]byte(`[{"op":"move","from":"a[0]","path":"b[+]"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Ops) != 1 {
		t.Fatalf("got %d ops", len(p.Ops))
	}
	op := p.Ops[0]
	if op.Op != "move" || op.From.String() != "a[0]" || op.Path.String() != "b.+" {
		t.Errorf("op = %+v", op)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  error
	}{
		{"not a list", `{"op":"add"}`, ir.ErrTypeMismatch},
		{"op not an object", `["add"]`, ir.ErrTypeMismatch},
		{"missing path", `[{"op":"remove"}]`, ir.ErrKeyNotFound},
		{"missing value", `[{"op":"add","path":"a"}]`, ir.ErrKeyNotFound},
		{"path not a string", `[{"op":"remove","path":1}]`, ir.ErrTypeMismatch},
		{"bad path", `[{"op":"remove","path":"a[0"}]`, kpath.ErrSyntax},
		{"negative index", `[{"op":"remove","path":"a[-1]"}]`, kpath.ErrSyntax},
		{"bad yaml", `[{`, ir.ErrDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.patch)); !errors.Is(err, tt.want) {
				t.Errorf("Decode = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := Decode([]byte(`[{"op":"frob","path":"a"}]`)); err == nil {
		t.Errorf("expected an error for an unknown op")
	}
}
