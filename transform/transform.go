// Package transform applies ordered rewrite rules to a node tree before
// it is re-encoded. A rule declares which tree positions it targets and
// a function over the value at each such position; application walks
// the tree depth-first and rebuilds it, so the input tree is never
// mutated.
//
// There is no rule registry. Callers collect an ordered []Transform and
// hand it to Apply; package rules provides ready-made implementations.
package transform

import (
	"strconv"

	"github.com/xj-format/go-xj/config"
	"github.com/xj-format/go-xj/format"
	"github.com/xj-format/go-xj/ir"
)

// Transform is a single rewrite rule.
//
// Apply receives the value at a matched position: the element name for
// Element, the scalar content for Value, the attribute value for
// Attribute, the payload for Text, CDATA, Comment and ProcInst, and the
// URI for Namespace. It returns the replacement value and whether to
// keep the position; returning keep=false removes the node, attribute
// or declaration. An error leaves the position unchanged.
type Transform interface {
	Targets() Target
	Apply(value any, ctx *Context) (any, bool, error)
}

// Context describes the position a rule is applied at. Contexts chain
// through Parent, mirroring the tree's ancestry.
type Context struct {
	// Name is the element name, attribute name, namespace prefix or
	// processing instruction target at this position.
	Name string
	// Kind is the node kind the position belongs to.
	Kind ir.Kind
	// IsAttribute marks attribute and namespace declaration positions.
	IsAttribute bool
	// Attribute is the attribute name when IsAttribute is set.
	Attribute string
	// Path locates the position, dotted, with sibling indexes.
	Path string

	Parent *Context
	Config *config.Config
	// Format is the output format the traversal is heading toward, so
	// a rule can branch on direction.
	Format format.Format
}

// child derives the context for the i-th child node. Path segments
// follow ir.Path: element name, or #text, #cdata, #comment, #pi.
func (c *Context) child(n *ir.Node, i int) *Context {
	return &Context{
		Name:   n.Name,
		Kind:   n.Kind,
		Path:   c.Path + "." + pathSegment(n) + "[" + strconv.Itoa(i) + "]",
		Parent: c,
		Config: c.Config,
		Format: c.Format,
	}
}

func pathSegment(n *ir.Node) string {
	switch n.Kind {
	case ir.TextKind:
		return "#text"
	case ir.CDATAKind:
		return "#cdata"
	case ir.CommentKind:
		return "#comment"
	case ir.ProcInstKind:
		return "#pi"
	}
	return n.Name
}

// attr derives the context for an attribute of the current element.
func (c *Context) attr(name string) *Context {
	return &Context{
		Name:        name,
		Kind:        c.Kind,
		IsAttribute: true,
		Attribute:   name,
		Path:        c.Path + ".@" + name,
		Parent:      c,
		Config:      c.Config,
		Format:      c.Format,
	}
}

// Func adapts a function to the Transform interface.
type Func struct {
	On Target
	F  func(value any, ctx *Context) (any, bool, error)
}

func (f Func) Targets() Target { return f.On }

func (f Func) Apply(value any, ctx *Context) (any, bool, error) {
	return f.F(value, ctx)
}
