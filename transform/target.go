package transform

import "strings"

// Target classifies a tree position a rule may act on. Targets combine
// as a bit set.
type Target uint

const (
	// Value is an element's collapsed scalar content.
	Value Target = 1 << iota
	// Attribute is a single attribute's value.
	Attribute
	// Element is the element itself; the value seen is its name.
	Element
	// Text is a standalone text node's payload.
	Text
	// CDATA is a CDATA section's payload.
	CDATA
	// Comment is a comment's payload.
	Comment
	// ProcInst is a processing instruction's data.
	ProcInst
	// Namespace is a namespace declaration's URI.
	Namespace

	All = Value | Attribute | Element | Text | CDATA | Comment | ProcInst | Namespace
)

var targetNames = []struct {
	t Target
	s string
}{
	{Value, "value"},
	{Attribute, "attribute"},
	{Element, "element"},
	{Text, "text"},
	{CDATA, "cdata"},
	{Comment, "comment"},
	{ProcInst, "procinst"},
	{Namespace, "namespace"},
}

// Has reports whether t includes every bit of u.
func (t Target) Has(u Target) bool {
	return t&u == u
}

func (t Target) String() string {
	var parts []string
	for _, n := range targetNames {
		if t.Has(n.t) {
			parts = append(parts, n.s)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
