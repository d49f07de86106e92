package ir

import "strconv"

// Path returns a dotted path locating n in its tree, used for
// diagnostics. The root contributes its segment bare; every other node
// contributes "seg[i]" where i is its index among the parent's children.
//
// Examples:
//   - root element "user" -> "user"
//   - its first child "name" -> "user.name[0]"
//   - a text node under that -> "user.name[0].#text[0]"
func (n *Node) Path() string {
	seg := n.pathSegment()
	if n.Parent == nil {
		return seg
	}
	return n.Parent.Path() + "." + seg + "[" + strconv.Itoa(n.ParentIndex) + "]"
}

func (n *Node) pathSegment() string {
	switch n.Kind {
	case ElementKind:
		return n.Name
	case TextKind:
		return "#text"
	case CDATAKind:
		return "#cdata"
	case CommentKind:
		return "#comment"
	case ProcInstKind:
		return "#pi"
	default:
		return "#node"
	}
}
