package ir

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/signadot/dotpath/ir/kpath"
)

func mustDecode(t *testing.T, s string) *Node {
	t.Helper()
	node, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return node
}

func jsonString(t *testing.T, node *Node) string {
	t.Helper()
	d, err := ToJSON(node)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestGet(t *testing.T) {
	tests := []struct {
		doc  string
		path string
		want string // "" for absent
	}{
		{`{"a":"b","c":{"d":"e"}}`, "c.d", `"e"`},
		{`{"c":["d","e","f"]}`, "c[last]", `"f"`},
		{`{"c":["d","e","f"]}`, "c[-1]", `"f"`},
		{`{"c":["d","e","f"]}`, "c[first]", `"d"`},
		{`{"c":["d","e","f"]}`, "c[-3]", `"d"`},
		{`{"c":["d","e","f"]}`, "c[-4]", ``},
		{`{"c":["d","e","f"]}`, "c[3]", ``},
		{`{"c":["d","e","f"]}`, "c.1", `"e"`},
		{`{"c":["d","e","f"]}`, "c.01", ``},
		{`{"c":["d","e","f"]}`, "c.x", ``},
		{`{"a":{"b.c":1}}`, "a[b.c]", `1`},
		{`{"a":"b"}`, "a.b", ``},
		{`{"a":"b"}`, "x.y.z", ``},
		{`{"a":null}`, "a", `null`},
		{`{"a":null}`, "a.b", ``},
		{`[{"x":1},{"x":2}]`, "[1].x", `2`},
		{`{"a":"b"}`, "", `{"a":"b"}`},
	}
	for _, tt := range tests {
		t.Run(tt.doc+" "+tt.path, func(t *testing.T) {
			got, err := Get(mustDecode(t, tt.doc), tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if tt.want == "" {
				if got != nil {
					t.Errorf("got %s, want absent", jsonString(t, got))
				}
				return
			}
			if got == nil {
				t.Fatalf("got absent, want %s", tt.want)
			}
			if s := jsonString(t, got); s != tt.want {
				t.Errorf("got %s, want %s", s, tt.want)
			}
		})
	}
	if _, err := Get(Object(), 3); !errors.Is(err, kpath.ErrInvalidKeyType) {
		t.Errorf("Get with int key = %v, want ErrInvalidKeyType", err)
	}
}

func TestGetMatchesGJSON(t *testing.T) {
	doc := `{"name":{"first":"Tom","last":"Anderson"},"age":37,"children":["Sara","Alex","Jack"],"friends":[{"first":"Dale","nets":["ig","fb"]},{"first":"Roger","nets":["fb","tw"]}]}`
	root := mustDecode(t, doc)
	tests := []struct{ path, gpath string }{
		{"name.last", "name.last"},
		{"age", "age"},
		{"children[1]", "children.1"},
		{"children.2", "children.2"},
		{"friends[1].first", "friends.1.first"},
		{"friends[0].nets[1]", "friends.0.nets.1"},
		{"friends", "friends"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Get(root, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			want := gjson.Get(doc, tt.gpath)
			if !want.Exists() {
				t.Fatalf("gjson found nothing at %s", tt.gpath)
			}
			if s := jsonString(t, got); s != want.Raw {
				t.Errorf("got %s, gjson has %s", s, want.Raw)
			}
		})
	}
}

func TestHas(t *testing.T) {
	root := mustDecode(t, `{"a":null,"c":["d","e","f","g"],"s":"x"}`)
	tests := []struct {
		path string
		want bool
	}{
		{"", true},
		{"a", true},
		{"a.b", false},
		{"b", false},
		{"c[0]", true},
		{"c[3]", true},
		{"c[4]", false},
		{"c[-1]", true},
		{"c[-4]", true},
		{"c[-5]", false},
		{"c.2", true},
		{"c.x", false},
		{"s.t", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Has(root, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Has(%q) = %t, want %t", tt.path, got, tt.want)
			}
			v, _ := Get(root, tt.path)
			if got != (v != nil) {
				t.Errorf("Has and Get disagree at %q", tt.path)
			}
		})
	}
	if ok, _ := Has(nil, ""); ok {
		t.Errorf("Has(nil, \"\") = true")
	}
}

func TestFetch(t *testing.T) {
	root := mustDecode(t, `{"a":{"b":1}}`)

	got, err := Fetch(root, "a.b")
	if err != nil || jsonString(t, got) != "1" {
		t.Fatalf("Fetch(a.b) = %v, %v", got, err)
	}

	_, err = Fetch(root, "a.c[0]")
	var knf *KeyNotFoundError
	if !errors.As(err, &knf) {
		t.Fatalf("Fetch of missing key = %v, want *KeyNotFoundError", err)
	}
	if knf.Path != "a.c[0]" || !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("KeyNotFoundError = %+v", knf)
	}

	got, err = Fetch(root, "x", Default(FromString("dflt")))
	if err != nil || got.String != "dflt" {
		t.Errorf("Fetch with default = %v, %v", got, err)
	}
	got, err = Fetch(root, "x", Default(nil))
	if err != nil || got != nil {
		t.Errorf("Fetch with nil default = %v, %v", got, err)
	}

	var seen string
	got, err = Fetch(root, "a[last]", Default(Null()), OnMissing(func(path string) (*Node, error) {
		seen = path
		return FromInt(7), nil
	}))
	if err != nil || seen != "a[last]" || *got.Int64 != 7 {
		t.Errorf("Fetch with OnMissing = %v, %v, seen %q", got, err, seen)
	}

	got, err = Fetch(root, kpath.Path{kpath.Field("a"), kpath.Field("z")}, Default(FromBool(true)))
	if err != nil || !got.Bool {
		t.Errorf("Fetch by segments = %v, %v", got, err)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		path  string
		value *Node
		want  string
	}{
		{"new nested object", `{"a":"b"}`, "n.o", FromString("p"), `{"a":"b","n":{"o":"p"}}`},
		{"append", `{"c":["g","h","i"]}`, "c[+]", FromString("j"), `{"c":["g","h","i","j"]}`},
		{"prepend", `{"c":["g","h","i"]}`, "c[-]", FromString("f"), `{"c":["f","g","h","i"]}`},
		{"append word", `{"c":[]}`, "c.append", FromInt(1), `{"c":[1]}`},
		{"prepend chevrons", `{"c":[2]}`, "c[>>]", FromInt(1), `{"c":[1,2]}`},
		{"replace", `{"a":"b"}`, "a", FromInt(3), `{"a":3}`},
		{"keeps order", `{"z":1,"a":2}`, "z", FromInt(0), `{"z":0,"a":2}`},
		{"new array", `{}`, "c[0]", FromString("x"), `{"c":["x"]}`},
		{"grow with nulls", `{"c":["x"]}`, "c[3]", FromString("y"), `{"c":["x",null,null,"y"]}`},
		{"negative index", `{"c":[1,2,3]}`, "c[-1]", FromInt(9), `{"c":[1,2,9]}`},
		{"lax index", `{"c":[1,2]}`, "c.0", FromInt(0), `{"c":[0,2]}`},
		{"lax intermediate", `{"c":[{"x":1}]}`, "c.0.x", FromInt(2), `{"c":[{"x":2}]}`},
		{"append intermediate", `{"c":[]}`, "c[+].name", FromString("s"), `{"c":[{"name":"s"}]}`},
		{"append array intermediate", `{}`, "c[+][+]", FromInt(1), `{"c":[[1]]}`},
		{"null replaced", `{"a":null}`, "a.b", FromInt(1), `{"a":{"b":1}}`},
		{"null element replaced", `{"a":[null]}`, "a[0][0]", FromInt(1), `{"a":[[1]]}`},
		{"nil value", `{}`, "a", nil, `{"a":null}`},
		{"root array", `[1]`, "[+]", FromInt(2), `[1,2]`},
		{"bracketed dot", `{}`, "a[b.c]", FromInt(1), `{"a":{"b.c":1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustDecode(t, tt.doc)
			if _, err := Set(root, tt.path, tt.value); err != nil {
				t.Fatal(err)
			}
			if got := jsonString(t, root); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetIntegerKey(t *testing.T) {
	root := Object()
	if _, err := Set(root, "[1]", FromString("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := Set(root, "1", FromString("str")); err != nil {
		t.Fatal(err)
	}
	if len(root.Fields) != 2 {
		t.Fatalf("want an integer key and a string key, got %d keys", len(root.Fields))
	}
	if root.Fields[0].Type != NumberType || root.Fields[1].Type != StringType {
		t.Errorf("key types = %s, %s", root.Fields[0].Type, root.Fields[1].Type)
	}
	v, _ := Get(root, "[1]")
	if v.String != "one" {
		t.Errorf("Get([1]) = %q", v.String)
	}
	v, _ = Get(root, "1")
	if v.String != "str" {
		t.Errorf("Get(1) = %q", v.String)
	}
}

func TestSetGetConsistency(t *testing.T) {
	paths := []string{"a", "a.b", "x[0]", "x[2].y", "m[k.l]", "q[-1]", "deep.er.still[1][0]"}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			root := mustDecode(t, `{"q":[1,2]}`)
			v := FromString("v-" + p)
			if _, err := Set(root, p, v); err != nil {
				t.Fatal(err)
			}
			got, err := Get(root, p)
			if err != nil {
				t.Fatal(err)
			}
			if got != v {
				t.Errorf("Get after Set returned %v", got)
			}
		})
	}
}

func TestSetErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		want error
	}{
		{"into scalar", `{"a":"b"}`, "a.c", ErrTypeMismatch},
		{"into false", `{"a":false}`, "a.c", ErrTypeMismatch},
		{"field on array", `{"a":[1]}`, "a.x", ErrTypeMismatch},
		{"field on array intermediate", `{"a":[1]}`, "a.x.y", ErrTypeMismatch},
		{"onto scalar root", `"s"`, "a", ErrTypeMismatch},
		{"negative out of range", `{"a":[1]}`, "a[-2]", ErrIndexOutOfRange},
		{"empty", `{}`, "", ErrEmptyPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Set(mustDecode(t, tt.doc), tt.path, FromInt(1))
			if !errors.Is(err, tt.want) {
				t.Errorf("Set = %v, want %v", err, tt.want)
			}
		})
	}

	var tm *TypeMismatchError
	_, err := Set(mustDecode(t, `{"a":"b"}`), "a.b.c", nil)
	if !errors.As(err, &tm) || tm.Path != "a" || tm.Got != "String" {
		t.Errorf("TypeMismatchError = %+v", tm)
	}
}

func TestSetKeepsCreatedContainers(t *testing.T) {
	root := mustDecode(t, `{"a":{"b":[1]}}`)
	_, err := Set(root, "t.u[-3]", FromInt(1))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("Set = %v, want ErrIndexOutOfRange", err)
	}
	if got := jsonString(t, root); got != `{"a":{"b":[1]},"t":{"u":[]}}` {
		t.Errorf("got %s", got)
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		removed string // "" for nothing
		want    string
	}{
		{"array element", `{"c":[{"d":"e","f":"g"},{"h":"i"}]}`, "c[0]", `{"d":"e","f":"g"}`, `{"c":[{"h":"i"}]}`},
		{"last element", `{"c":[1,2,3]}`, "c[last]", `3`, `{"c":[1,2]}`},
		{"lax element", `{"c":[1,2,3]}`, "c.1", `2`, `{"c":[1,3]}`},
		{"object key", `{"a":1,"b":2,"c":3}`, "b", `2`, `{"a":1,"c":3}`},
		{"nested", `{"a":{"b":{"c":1,"d":2}}}`, "a.b.c", `1`, `{"a":{"b":{"d":2}}}`},
		{"absent", `{"a":1}`, "b", ``, `{"a":1}`},
		{"absent nested", `{"a":1}`, "a.b.c", ``, `{"a":1}`},
		{"out of range", `{"c":[1]}`, "c[-2]", ``, `{"c":[1]}`},
		{"empty", `{"a":1}`, "", ``, `{"a":1}`},
		{"integer key", `{"1":"s"}`, "[1]", ``, `{"1":"s"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustDecode(t, tt.doc)
			removed, err := Delete(root, tt.path)
			if err != nil {
				t.Fatal(err)
			}
			switch {
			case tt.removed == "" && removed != nil:
				t.Errorf("removed %s, want nothing", jsonString(t, removed))
			case tt.removed != "" && removed == nil:
				t.Errorf("removed nothing, want %s", tt.removed)
			case removed != nil && jsonString(t, removed) != tt.removed:
				t.Errorf("removed %s, want %s", jsonString(t, removed), tt.removed)
			}
			if got := jsonString(t, root); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNodeMethods(t *testing.T) {
	root := Object()
	if _, err := root.Set("a.b[+]", FromInt(1)); err != nil {
		t.Fatal(err)
	}
	if ok, _ := root.Has("a.b[0]"); !ok {
		t.Errorf("Has after Set is false")
	}
	if v, _ := root.Fetch("a.b[0]"); v == nil || *v.Int64 != 1 {
		t.Errorf("Fetch = %v", v)
	}
	if v, _ := root.Delete("a.b"); v == nil || v.Type != ArrayType {
		t.Errorf("Delete = %v", v)
	}
	if v, _ := root.Get("a"); jsonString(t, v) != "{}" {
		t.Errorf("Get = %s", jsonString(t, v))
	}
}
