package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/ir"
)

func document() *ir.Node {
	root := ir.NewElement("doc")
	root.SetNSDecl("m", "urn:m")
	user := ir.NewElement("user")
	user.SetAttr("id", "7")
	user.SetAttr("role", "admin")
	root.AddChild(user)
	name := ir.NewElement("name")
	name.Value = "Ann"
	user.AddChild(name)
	secret := ir.NewElement("secret")
	secret.Value = "hunter2"
	user.AddChild(secret)
	note := ir.NewElement("note")
	note.AddChild(ir.NewText("see "))
	note.AddChild(ir.NewCDATA("x"))
	user.AddChild(note)
	return root
}

func upper(on Target) Func {
	return Func{On: on, F: func(v any, ctx *Context) (any, bool, error) {
		if s, ok := v.(string); ok {
			return strings.ToUpper(s), true, nil
		}
		return v, true, nil
	}}
}

func TestTargetIsolation(t *testing.T) {
	src := document()
	snapshot := src.Clone(true)

	out := Apply(src, []Transform{upper(Attribute)}, format.XMLFormat, nil)

	if !ir.Equal(src, snapshot) {
		t.Fatal("input tree mutated")
	}
	user := out.Children[0]
	if v, _ := user.GetAttr("role"); v != "ADMIN" {
		t.Errorf("role = %v", v)
	}
	// every non-attribute value is untouched
	if user.Children[0].Value != "Ann" {
		t.Errorf("name = %v", user.Children[0].Value)
	}
	note := user.Children[2]
	if note.Children[0].Value != "see " || note.Children[1].Value != "x" {
		t.Errorf("character content altered: %v %v", note.Children[0].Value, note.Children[1].Value)
	}
	if out.NSDecls[0].URI != "urn:m" {
		t.Errorf("namespace altered: %v", out.NSDecls[0])
	}
}

func TestRemove(t *testing.T) {
	drop := Func{On: Element, F: func(v any, ctx *Context) (any, bool, error) {
		if v == "secret" {
			return nil, false, nil
		}
		return v, true, nil
	}}
	out := Apply(document(), []Transform{drop}, format.JSONFormat, nil)

	found := false
	_ = out.Visit(func(n *ir.Node, post bool) (bool, error) {
		if !post && n.Name == "secret" {
			found = true
		}
		return true, nil
	})
	if found {
		t.Error("secret survived")
	}
	user := out.Children[0]
	if len(user.Children) != 2 {
		t.Errorf("user has %d children, want 2", len(user.Children))
	}
	for i, c := range user.Children {
		if c.ParentIndex != i {
			t.Errorf("child %d has index %d", i, c.ParentIndex)
		}
	}
}

func TestRemoveKeepsEmptyAncestors(t *testing.T) {
	root := ir.NewElement("r")
	box := ir.NewElement("box")
	secret := ir.NewElement("secret")
	box.AddChild(secret)
	root.AddChild(box)

	drop := Func{On: Element, F: func(v any, ctx *Context) (any, bool, error) {
		return v, v != "secret", nil
	}}
	out := Apply(root, []Transform{drop}, format.XMLFormat, nil)
	if len(out.Children) != 1 || out.Children[0].Name != "box" {
		t.Fatalf("box removed: %v", out.Children)
	}
	if len(out.Children[0].Children) != 0 {
		t.Errorf("box not emptied")
	}
}

func TestGracefulDegradation(t *testing.T) {
	bad := Func{On: Value | Text, F: func(v any, ctx *Context) (any, bool, error) {
		if v == "x" {
			return nil, false, errors.New("cannot handle x")
		}
		return "ok", true, nil
	}}
	root := ir.NewElement("r")
	for _, v := range []string{"a", "x", "b"} {
		c := ir.NewElement("c")
		c.Value = v
		root.AddChild(c)
	}
	out := Apply(root, []Transform{bad}, format.JSONFormat, nil)
	got := []any{out.Children[0].Value, out.Children[1].Value, out.Children[2].Value}
	want := []any{"ok", "x", "ok"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values (-want +got):\n%s", diff)
	}
}

func TestRegistrationOrder(t *testing.T) {
	appendRule := func(s string) Func {
		return Func{On: Value, F: func(v any, ctx *Context) (any, bool, error) {
			return v.(string) + s, true, nil
		}}
	}
	el := ir.NewElement("e")
	el.Value = "_"
	out := Apply(el, []Transform{appendRule("1"), appendRule("2")}, format.XMLFormat, nil)
	if out.Value != "_12" {
		t.Errorf("got %v, want _12", out.Value)
	}
}

func TestRename(t *testing.T) {
	rename := Func{On: Element, F: func(v any, ctx *Context) (any, bool, error) {
		if v == "user" {
			return "account", true, nil
		}
		return v, true, nil
	}}
	out := Apply(document(), []Transform{rename}, format.XMLFormat, nil)
	if out.Children[0].Name != "account" {
		t.Errorf("name %q", out.Children[0].Name)
	}
	// attributes and children carry over
	if _, ok := out.Children[0].GetAttr("id"); !ok {
		t.Error("attributes lost in rename")
	}
}

func TestContextPath(t *testing.T) {
	var paths []string
	spy := Func{On: All, F: func(v any, ctx *Context) (any, bool, error) {
		paths = append(paths, ctx.Path)
		return v, true, nil
	}}
	Apply(document(), []Transform{spy}, format.XMLFormat, nil)

	want := map[string]bool{
		"doc":                           true,
		"doc.@xmlns:m":                  true,
		"doc.user[0].@id":               true,
		"doc.user[0].name[0]":           true,
		"doc.user[0].note[2].#text[0]":  true,
		"doc.user[0].note[2].#cdata[1]": true,
	}
	seen := map[string]bool{}
	for _, p := range paths {
		seen[p] = true
	}
	for p := range want {
		if !seen[p] {
			t.Errorf("missing path %s in %v", p, paths)
		}
	}
}

func TestContextAncestry(t *testing.T) {
	var names []string
	spy := Func{On: Value, F: func(v any, ctx *Context) (any, bool, error) {
		for c := ctx; c != nil; c = c.Parent {
			names = append(names, c.Name)
		}
		return v, true, nil
	}}
	root := ir.NewElement("a")
	b := ir.NewElement("b")
	c := ir.NewElement("c")
	c.Value = "v"
	b.AddChild(c)
	root.AddChild(b)
	Apply(root, []Transform{spy}, format.JSONFormat, nil)

	if diff := cmp.Diff([]string{"c", "b", "a"}, names); diff != "" {
		t.Errorf("ancestry (-want +got):\n%s", diff)
	}
}

func TestDirection(t *testing.T) {
	dir := Func{On: Value, F: func(v any, ctx *Context) (any, bool, error) {
		if ctx.Format.IsXML() {
			return ir.ScalarString(v), true, nil
		}
		return v, true, nil
	}}
	el := ir.NewElement("n")
	el.Value = true

	toXML := Apply(el, []Transform{dir}, format.XMLFormat, nil)
	if toXML.Value != "true" {
		t.Errorf("xml direction: %v", toXML.Value)
	}
	toJSON := Apply(el, []Transform{dir}, format.JSONFormat, nil)
	if toJSON.Value != true {
		t.Errorf("json direction: %v", toJSON.Value)
	}
}
