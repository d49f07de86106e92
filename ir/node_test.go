package ir

import (
	"encoding/json"
	"testing"
)

func TestAddChildReparents(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	c := NewElement("c")
	a.AddChild(c)
	if c.Parent != a || c.ParentIndex != 0 {
		t.Fatalf("child not owned by a")
	}
	b.AddChild(c)
	if c.Parent != b {
		t.Fatalf("child not reparented to b")
	}
	if len(a.Children) != 0 {
		t.Fatalf("a still holds the child: %d", len(a.Children))
	}
}

func TestRemoveChildReindexes(t *testing.T) {
	p := NewElement("p")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")
	p.AddChild(a).AddChild(b).AddChild(c)
	if !p.RemoveChild(b) {
		t.Fatalf("remove failed")
	}
	if p.RemoveChild(b) {
		t.Fatalf("second remove should report false")
	}
	if len(p.Children) != 2 {
		t.Fatalf("want 2 children, got %d", len(p.Children))
	}
	if c.ParentIndex != 1 {
		t.Fatalf("want ParentIndex 1, got %d", c.ParentIndex)
	}
	if b.Parent != nil {
		t.Fatalf("removed child keeps parent")
	}
}

func TestCloneShallow(t *testing.T) {
	el := NewElement("user")
	el.SetAttr("id", "7")
	el.SetNSDecl("p", "urn:p")
	el.AddChild(NewText("Ann"))
	cp := el.Clone(false)
	if cp.Parent != nil || len(cp.Children) != 0 {
		t.Fatalf("shallow clone must drop parent and children")
	}
	if v, ok := cp.GetAttr("id"); !ok || v != "7" {
		t.Fatalf("attrs not copied")
	}
	cp.SetAttr("id", "8")
	if v, _ := el.GetAttr("id"); v != "7" {
		t.Fatalf("clone aliases attribute storage")
	}
}

func TestCloneDeep(t *testing.T) {
	el := NewElement("user")
	el.SetAttr("id", "7")
	name := NewElement("name")
	name.Value = "Ann"
	el.AddChild(name)

	cp := el.Clone(true)
	if !Equal(el, cp) {
		t.Fatalf("deep clone not equal to original")
	}
	if cp.Children[0] == el.Children[0] {
		t.Fatalf("deep clone aliases children")
	}
	if cp.Children[0].Parent != cp {
		t.Fatalf("deep clone children not re-parented")
	}
}

func TestLookupNamespace(t *testing.T) {
	root := NewElement("root")
	root.SetNSDecl("", "urn:default")
	root.SetNSDecl("a", "urn:a")
	mid := NewElement("mid")
	mid.SetNSDecl("a", "urn:a2")
	leaf := NewElement("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	tests := []struct {
		name   string
		node   *Node
		prefix string
		uri    string
		ok     bool
	}{
		{"own decl", root, "a", "urn:a", true},
		{"shadowed", leaf, "a", "urn:a2", true},
		{"inherited default", leaf, "", "urn:default", true},
		{"absent", leaf, "zz", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uri, ok := tt.node.LookupNamespace(tt.prefix)
			if ok != tt.ok || uri != tt.uri {
				t.Errorf("LookupNamespace(%q) = %q, %v; want %q, %v", tt.prefix, uri, ok, tt.uri, tt.ok)
			}
		})
	}

	if p, ok := leaf.LookupPrefix("urn:a2"); !ok || p != "a" {
		t.Errorf("LookupPrefix(urn:a2) = %q, %v", p, ok)
	}
}

func TestPath(t *testing.T) {
	root := NewElement("user")
	name := NewElement("name")
	root.AddChild(name)
	txt := NewText("Ann")
	name.AddChild(txt)

	if got := root.Path(); got != "user" {
		t.Errorf("root path = %q", got)
	}
	if got := name.Path(); got != "user.name[0]" {
		t.Errorf("name path = %q", got)
	}
	if got := txt.Path(); got != "user.name[0].#text[0]" {
		t.Errorf("text path = %q", got)
	}
}

func TestNodeJSONRoundTrip(t *testing.T) {
	el := NewElement("user")
	el.Prefix = "p"
	el.Namespace = "urn:p"
	el.SetNSDecl("p", "urn:p")
	el.SetAttr("id", "7")
	el.AddChild(NewComment(" note "))
	child := NewElement("name")
	child.Value = "Ann"
	el.AddChild(child)

	d, err := json.Marshal(el)
	if err != nil {
		t.Fatal(err)
	}
	got := &Node{}
	if err := json.Unmarshal(d, got); err != nil {
		t.Fatal(err)
	}
	if !Equal(el, got) {
		t.Fatalf("round trip mismatch:\n%s", d)
	}
	if got.Children[1].Parent != got {
		t.Fatalf("parents not restored")
	}
}

func TestScalarString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{int64(42), "42"},
		{3.5, "3.5"},
		{json.Number("1e3"), "1e3"},
	}
	for _, tt := range tests {
		if got := ScalarString(tt.in); got != tt.want {
			t.Errorf("ScalarString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
