package jsoncodec

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/ir"
)

func compact(t *testing.T, n *ir.Node, cfg *config.Config) string {
	t.Helper()
	v := Encode(n, cfg)
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func flat() *config.Config {
	c := config.Default()
	c.Pretty = false
	return c
}

func TestDecodeNatural(t *testing.T) {
	root, err := DecodeBytes([]byte(`{"user":{"@attrs":{"id":"7"},"name":"Ann"}}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "user" {
		t.Errorf("root %q", root.Name)
	}
	id, ok := root.GetAttr("id")
	if !ok || id != "7" {
		t.Errorf("id attr %v %v", id, ok)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "name" {
		t.Fatalf("children %v", root.Children)
	}
	if root.Children[0].Value != "Ann" {
		t.Errorf("name value %v", root.Children[0].Value)
	}
}

func TestEncodeNatural(t *testing.T) {
	user := ir.NewElement("user")
	user.SetAttr("id", "7")
	name := ir.NewElement("name")
	name.Value = "Ann"
	user.AddChild(name)

	got := compact(t, user, flat())
	want := `{"user":{"@attrs":{"id":"7"},"name":"Ann"}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDecodeNaturalRoots(t *testing.T) {
	for _, in := range []string{`"x"`, `7`, `true`, `null`, `{"a":1,"b":2}`} {
		if _, err := DecodeBytes([]byte(in), nil); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", in, err)
		}
	}
	root, err := DecodeBytes([]byte(`[1,2]`), nil)
	if err != nil {
		t.Fatal(err)
	}
	if root.Name != "array" || len(root.Children) != 2 {
		t.Errorf("array root %v", root)
	}
	if root.Children[0].Name != "item" {
		t.Errorf("item name %q", root.Children[0].Name)
	}
}

func TestAttrStrategies(t *testing.T) {
	el := ir.NewElement("a")
	el.SetAttr("id", "1")
	el.SetAttr("lang", "en")
	b := ir.NewElement("b")
	b.Value = "x"
	el.AddChild(b)

	tests := []struct {
		strategy config.AttributeStrategy
		want     string
	}{
		{config.AttrProperty, `{"a":{"@attrs":{"id":"1","lang":"en"},"b":"x"}}`},
		{config.AttrPrefix, `{"a":{"@id":"1","@lang":"en","b":"x"}}`},
		{config.AttrMerge, `{"a":{"id":"1","lang":"en","b":"x"}}`},
	}
	for _, tt := range tests {
		cfg := flat()
		cfg.Attributes = tt.strategy
		got := compact(t, el, cfg)
		if got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.strategy, got, tt.want)
		}
		back, err := Decode(mustParse(t, tt.want), cfg)
		if err != nil {
			t.Fatalf("%v: %v", tt.strategy, err)
		}
		if cfg.Attributes == config.AttrMerge {
			// merge demotes the scalar child to an attribute too
			if _, ok := back.GetAttr("b"); !ok {
				t.Errorf("merge: b not demoted to attribute")
			}
			continue
		}
		if !ir.Equal(el, back) {
			t.Errorf("%v: round trip diverged", tt.strategy)
		}
	}
}

func TestTextStrategies(t *testing.T) {
	el := ir.NewElement("note")
	el.Value = "hello"

	cfg := flat()
	if got := compact(t, el, cfg); got != `{"note":"hello"}` {
		t.Errorf("direct: %s", got)
	}
	cfg.Text = config.TextProperty
	if got := compact(t, el, cfg); got != `{"note":{"#text":"hello"}}` {
		t.Errorf("property: %s", got)
	}

	// direct text falls back to the text property when attributes are
	// present
	el.SetAttr("id", "1")
	cfg.Text = config.TextDirect
	want := `{"note":{"@attrs":{"id":"1"},"#text":"hello"}}`
	if got := compact(t, el, cfg); got != want {
		t.Errorf("fallback: got %s, want %s", got, want)
	}

	// the text property is always recognized on decode
	back, err := Decode(mustParse(t, want), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(el, back) {
		t.Errorf("round trip diverged")
	}
}

func TestArrayMultiple(t *testing.T) {
	r := ir.NewElement("r")
	for _, v := range []string{"1", "2", "3"} {
		i := ir.NewElement("i")
		i.Value = v
		r.AddChild(i)
	}
	got := compact(t, r, flat())
	want := `{"r":{"i":["1","2","3"]}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	back, err := Decode(mustParse(t, want), flat())
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(r, back) {
		t.Errorf("round trip diverged")
	}
}

func TestArrayMultipleAnchor(t *testing.T) {
	// non-contiguous repeats collapse into one array anchored at the
	// first occurrence
	r := ir.NewElement("r")
	for _, nv := range [][2]string{{"a", "1"}, {"b", "2"}, {"a", "3"}} {
		c := ir.NewElement(nv[0])
		c.Value = nv[1]
		r.AddChild(c)
	}
	got := compact(t, r, flat())
	want := `{"r":{"a":["1","3"],"b":"2"}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestArrayWrapped(t *testing.T) {
	cfg := flat()
	cfg.Arrays = config.ArrayWrapped
	cfg.ItemNames = map[string]string{"list": "entry"}

	root, err := Decode(mustParse(t, `{"list":[1,2]}`), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 2 || root.Children[0].Name != "entry" {
		t.Fatalf("wrapped decode %v", root.Children)
	}
	if got := compact(t, root, cfg); got != `{"list":[1,2]}` {
		t.Errorf("wrapped encode: %s", got)
	}

	// single-key object items keep their own names
	root, err = Decode(mustParse(t, `{"list":[{"a":1},{"b":2}]}`), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if root.Children[0].Name != "a" || root.Children[1].Name != "b" {
		t.Errorf("item names %q %q", root.Children[0].Name, root.Children[1].Name)
	}
}

func TestArrayWrappedRepeats(t *testing.T) {
	// repeated siblings that do not match the wrapper item name still
	// collapse into an array instead of overwriting each other
	cfg := flat()
	cfg.Arrays = config.ArrayWrapped
	cfg.ItemNames = map[string]string{"list": "entry"}

	r := ir.NewElement("r")
	for _, v := range []string{"1", "2"} {
		a := ir.NewElement("a")
		a.Value = v
		r.AddChild(a)
	}
	if got := compact(t, r, cfg); got != `{"r":{"a":["1","2"]}}` {
		t.Errorf("got %s", got)
	}

	root, err := Decode(mustParse(t, `{"list":[{"a":"1"},{"a":"2"}]}`), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := compact(t, root, cfg); got != `{"list":{"a":["1","2"]}}` {
		t.Errorf("got %s", got)
	}
}

func TestEmptyStrategies(t *testing.T) {
	r := ir.NewElement("r")
	r.AddChild(ir.NewElement("e"))

	tests := []struct {
		strategy config.EmptyStrategy
		want     string
	}{
		{config.EmptyObject, `{"r":{"e":{}}}`},
		{config.EmptyNull, `{"r":{"e":null}}`},
		{config.EmptyString, `{"r":{"e":""}}`},
		{config.EmptyRemove, `{"r":{}}`},
	}
	for _, tt := range tests {
		cfg := flat()
		cfg.Empty = tt.strategy
		if got := compact(t, r, cfg); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.strategy, got, tt.want)
		}
	}
}

func TestDecodeNull(t *testing.T) {
	cfg := flat()
	cfg.Empty = config.EmptyRemove
	root, err := Decode(mustParse(t, `{"r":{"a":null,"b":1}}`), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "b" {
		t.Errorf("null not removed: %v", root.Children)
	}

	cfg.Empty = config.EmptyString
	root, err = Decode(mustParse(t, `{"r":{"a":null}}`), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if root.Children[0].Value != "" {
		t.Errorf("null value %v", root.Children[0].Value)
	}
}

func TestDecodeNamespaces(t *testing.T) {
	in := `{"m:doc":{"@attrs":{"xmlns:m":"urn:m","m:id":"1"},"m:name":"x"}}`
	root, err := Decode(mustParse(t, in), nil)
	if err != nil {
		t.Fatal(err)
	}
	if root.Prefix != "m" || root.Name != "doc" {
		t.Errorf("root %q:%q", root.Prefix, root.Name)
	}
	if len(root.NSDecls) != 1 || root.NSDecls[0].Prefix != "m" || root.NSDecls[0].URI != "urn:m" {
		t.Errorf("nsdecls %v", root.NSDecls)
	}
	if _, ok := root.GetAttr("m:id"); !ok {
		t.Errorf("prefixed attribute lost")
	}
	if got := compact(t, root, flat()); got != in {
		t.Errorf("got %s, want %s", got, in)
	}
}

func TestDecodeValidation(t *testing.T) {
	cfg := flat()
	for _, in := range []string{
		`{"a":{"@attrs":"x"}}`,
		`{"a":{"@attrs":{"id":{"x":1}}}}`,
		`{"a":{"#text":{"x":1}}}`,
	} {
		if _, err := Decode(mustParse(t, in), cfg); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: got %v, want ErrValidation", in, err)
		}
	}
}

func TestMixedText(t *testing.T) {
	p := ir.NewElement("p")
	p.AddChild(ir.NewText("see "))
	b := ir.NewElement("b")
	b.Value = "this"
	p.AddChild(b)

	// character content concatenates under the text property next to
	// element children
	got := compact(t, p, flat())
	want := `{"p":{"b":"this","#text":"see "}}`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func mustParse(t *testing.T, s string) any {
	t.Helper()
	v, err := ParseValue([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}
