package ir

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Attr is a single attribute. Attribute order is significant and is
// preserved through every codec.
type Attr struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// NSDecl is a namespace declaration introduced at a node. The empty
// prefix denotes the default namespace.
type NSDecl struct {
	Prefix string `json:"prefix"`
	URI    string `json:"uri"`
}

type Node struct {
	Kind        Kind
	Parent      *Node
	ParentIndex int

	Name      string
	Value     any
	Prefix    string
	Namespace string

	Attrs    []Attr
	NSDecls  []NSDecl
	Children []*Node
}

func NewElement(name string) *Node {
	return &Node{Kind: ElementKind, Name: name}
}

func NewText(v string) *Node {
	return &Node{Kind: TextKind, Value: v}
}

func NewCDATA(v string) *Node {
	return &Node{Kind: CDATAKind, Value: v}
}

func NewComment(v string) *Node {
	return &Node{Kind: CommentKind, Value: v}
}

func NewProcInst(target, data string) *Node {
	return &Node{Kind: ProcInstKind, Name: target, Value: data}
}

// AddChild appends child to n, detaching it from any previous parent
// first so the child is owned by exactly one tree.
func (n *Node) AddChild(child *Node) *Node {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	child.ParentIndex = len(n.Children)
	n.Children = append(n.Children, child)
	return n
}

// RemoveChild removes child from n by identity and reindexes the
// remaining children. It reports whether child was found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c != child {
			continue
		}
		n.Children = append(n.Children[:i], n.Children[i+1:]...)
		for j := i; j < len(n.Children); j++ {
			n.Children[j].ParentIndex = j
		}
		child.Parent = nil
		child.ParentIndex = 0
		return true
	}
	return false
}

// Detach removes n from its parent, if any.
func (n *Node) Detach() *Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}

// Clone copies n. A shallow clone copies scalar fields, attributes and
// namespace declarations and drops children and parent. A deep clone
// additionally clones the full subtree, re-parenting every copy.
func (n *Node) Clone(deep bool) *Node {
	res := &Node{}
	if deep {
		return n.CloneTo(res)
	}
	res.Kind = n.Kind
	res.Name = n.Name
	res.Value = n.Value
	res.Prefix = n.Prefix
	res.Namespace = n.Namespace
	res.Attrs = append([]Attr(nil), n.Attrs...)
	res.NSDecls = append([]NSDecl(nil), n.NSDecls...)
	return res
}

// CloneTo deep-copies n into dst and returns dst. Parent and ParentIndex
// of dst are left untouched; every copied child is re-parented to its
// copied container.
func (n *Node) CloneTo(dst *Node) *Node {
	dst.Kind = n.Kind
	dst.Name = n.Name
	dst.Value = n.Value
	dst.Prefix = n.Prefix
	dst.Namespace = n.Namespace
	dst.Attrs = append([]Attr(nil), n.Attrs...)
	dst.NSDecls = append([]NSDecl(nil), n.NSDecls...)
	if n.Children == nil {
		dst.Children = nil
		return dst
	}
	dst.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		dstC := &Node{}
		c.CloneTo(dstC)
		dstC.Parent = dst
		dstC.ParentIndex = i
		dst.Children[i] = dstC
	}
	return dst
}

// GetAttr returns the value of the named attribute.
func (n *Node) GetAttr(name string) (any, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return nil, false
}

// SetAttr sets the named attribute, replacing an existing value in place
// or appending a new attribute at the end.
func (n *Node) SetAttr(name string, value any) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// RemoveAttr removes the named attribute, reporting whether it existed.
func (n *Node) RemoveAttr(name string) bool {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// SetNSDecl records a namespace declaration at n, replacing any existing
// declaration for the same prefix.
func (n *Node) SetNSDecl(prefix, uri string) *Node {
	for i := range n.NSDecls {
		if n.NSDecls[i].Prefix == prefix {
			n.NSDecls[i].URI = uri
			return n
		}
	}
	n.NSDecls = append(n.NSDecls, NSDecl{Prefix: prefix, URI: uri})
	return n
}

// QName returns the qualified tag name, prefix:name or name.
func (n *Node) QName() string {
	if n.Prefix == "" {
		return n.Name
	}
	return n.Prefix + ":" + n.Name
}

// Text returns the concatenated character content of n: its own scalar
// value followed by the payloads of Text and CDATA children, in order.
func (n *Node) Text() string {
	var b strings.Builder
	if n.Value != nil {
		b.WriteString(ScalarString(n.Value))
	}
	for _, c := range n.Children {
		if c.Kind.IsCharData() {
			b.WriteString(ScalarString(c.Value))
		}
	}
	return b.String()
}

// Visit walks the subtree rooted at n. f is called before and after each
// node's children; returning false from the pre call skips the children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range n.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

// ScalarString renders a scalar value as text. nil renders as the empty
// string.
func ScalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
