package ir

import (
	"cmp"
	"encoding/json"
	"strings"
)

// Compare returns an integer comparing two nodes structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Attribute order and namespace declaration order are significant.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(rank(a.Kind), rank(b.Kind)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	if c := strings.Compare(a.Prefix, b.Prefix); c != 0 {
		return c
	}
	if c := strings.Compare(a.Namespace, b.Namespace); c != 0 {
		return c
	}
	if c := CompareScalar(a.Value, b.Value); c != 0 {
		return c
	}
	if c := compareNSDecls(a.NSDecls, b.NSDecls); c != 0 {
		return c
	}
	if c := compareAttrs(a.Attrs, b.Attrs); c != 0 {
		return c
	}
	return compareChildren(a.Children, b.Children)
}

// Equal reports structural equality of two trees.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a kind.
// Order: Comment < ProcInst < Text < CDATA < Element
func rank(k Kind) int {
	switch k {
	case CommentKind:
		return 0
	case ProcInstKind:
		return 1
	case TextKind:
		return 2
	case CDATAKind:
		return 3
	case ElementKind:
		return 4
	}
	return 100
}

// CompareScalar compares two scalar values.
// Scalar rank: nil < bool < number < string.
func CompareScalar(a, b any) int {
	ra, rb := scalarRank(a), scalarRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0: // nil
		return 0
	case 1: // bool
		av, bv := a.(bool), b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case 2: // number
		af, aok := scalarFloat(a)
		bf, bok := scalarFloat(b)
		if aok && bok {
			if c := cmp.Compare(af, bf); c != 0 {
				return c
			}
		}
		return strings.Compare(ScalarString(a), ScalarString(b))
	default: // string
		return strings.Compare(a.(string), b.(string))
	}
}

func scalarRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case int, int64, float64, json.Number:
		return 2
	case string:
		return 3
	}
	return 4
}

func scalarFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

func compareAttrs(a, b []Attr) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := strings.Compare(a[i].Name, b[i].Name); c != 0 {
			return c
		}
		if c := CompareScalar(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}
	return 0
}

func compareNSDecls(a, b []NSDecl) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := strings.Compare(a[i].Prefix, b[i].Prefix); c != 0 {
			return c
		}
		if c := strings.Compare(a[i].URI, b[i].URI); c != 0 {
			return c
		}
	}
	return 0
}

func compareChildren(a, b []*Node) int {
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	for i := range a {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}
