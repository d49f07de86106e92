package ir

// LookupNamespace resolves a prefix to a namespace URI by searching the
// node's own declarations and then each ancestor's, returning the first
// match. The empty prefix resolves the default namespace. Absence is a
// normal outcome at this layer; callers decide whether an unresolved
// prefix is fatal.
func (n *Node) LookupNamespace(prefix string) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		for i := range cur.NSDecls {
			if cur.NSDecls[i].Prefix == prefix {
				return cur.NSDecls[i].URI, true
			}
		}
	}
	return "", false
}

// LookupPrefix resolves a namespace URI back to a prefix, preferring the
// nearest declaration. Multiple prefixes may be bound to one URI; the
// innermost, last-declared binding wins.
func (n *Node) LookupPrefix(uri string) (string, bool) {
	for cur := n; cur != nil; cur = cur.Parent {
		for i := len(cur.NSDecls) - 1; i >= 0; i-- {
			if cur.NSDecls[i].URI == uri {
				return cur.NSDecls[i].Prefix, true
			}
		}
	}
	return "", false
}
